package config

import (
	"errors"
	"fmt"
	"net/url"

	"college-predictor/logging"
)

func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	switch {
	case c.API.BaseURL == "":
		errs = append(errs, errors.New("api.base_url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api.base_url must be http or https, got %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, errors.New("api.base_url has no host"))
	}

	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.RetryMax < 0 {
		errs = append(errs, errors.New("api.retry_max cannot be negative"))
	}
	if c.Breaker.ConsecutiveFailures == 0 {
		errs = append(errs, errors.New("breaker.consecutive_failures must be at least 1"))
	}
	if c.Breaker.Timeout <= 0 {
		errs = append(errs, errors.New("breaker.timeout must be positive"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RateLimit <= 0 || c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("server.rate_limit and server.rate_window must be positive"))
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level %q is not recognised", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}
