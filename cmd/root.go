package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"college-predictor/config"
	"college-predictor/logging"
)

var (
	cfg         *config.Config
	configPath  string
	logLevelArg string
)

var rootCmd = &cobra.Command{
	Use:   "college-predictor",
	Short: "JEE college recommendations",
	Long: `college-predictor asks a recommendation backend which colleges a JEE rank
can get into, and falls back to a small synthetic list when the backend
cannot be reached.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: $CONFIG_PATH, config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelArg, "log-level", "", "override logging.level")
}

func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	var (
		c   *config.Config
		err error
	)
	if configPath != "" {
		c, err = config.LoadFrom(configPath)
	} else {
		c, err = config.Load()
	}
	if err != nil {
		return err
	}

	if logLevelArg != "" {
		c.Logging.Level = logLevelArg
	}
	logging.Init(logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Caller: c.Logging.Caller,
		Output: cmd.ErrOrStderr(),
	})

	cfg = c
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
