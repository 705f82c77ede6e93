package logging

import (
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

type retryableLogger struct {
	component string
}

// RetryableLogger adapts the global logger to retryablehttp's leveled
// logger interface.
func RetryableLogger(component string) retryablehttp.LeveledLogger {
	return retryableLogger{component: component}
}

func (r retryableLogger) Error(msg string, keysAndValues ...interface{}) {
	r.emit(Error(), msg, keysAndValues)
}

func (r retryableLogger) Info(msg string, keysAndValues ...interface{}) {
	r.emit(Debug(), msg, keysAndValues)
}

func (r retryableLogger) Debug(msg string, keysAndValues ...interface{}) {
	r.emit(Debug(), msg, keysAndValues)
}

func (r retryableLogger) Warn(msg string, keysAndValues ...interface{}) {
	r.emit(Warn(), msg, keysAndValues)
}

func (r retryableLogger) emit(ev *zerolog.Event, msg string, kv []interface{}) {
	ev = ev.Str("component", r.component)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
