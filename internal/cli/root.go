// Package cli implements the carbsmart command line.
//
// Running the binary without a subcommand starts the HTTP server. The other
// commands reuse the server's configuration so they operate on the same
// pan store.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/brandonleon/carbsmart/config"
	"github.com/brandonleon/carbsmart/internal/app"
)

// Execute runs the root command with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree around a fresh configuration.
func NewRootCommand() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "carbsmart",
		Short:         "Serving planner for home-cooked dishes",
		Long:          "carbsmart divides a cooked dish into servings of a target weight and reports the carbohydrates in each one.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	pf := root.PersistentFlags()
	pf.String("db-driver", "", "pan store driver: sqlite, postgres or mongodb")
	pf.String("db-url", "", "SQL connection string (sqlite file or postgres DSN)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.Bool("log-pretty", false, "human readable logs")
	bindFlags(v, pf, map[string]string{
		"db-driver":  "DATABASE_DRIVER",
		"db-url":     "DATABASE_URL",
		"log-level":  "LOG_LEVEL",
		"log-pretty": "LOG_PRETTY",
	})

	root.AddCommand(
		newServeCommand(v),
		newPlanCommand(v),
		newPansCommand(v),
		newTokenCommand(v),
		newKeysCommand(),
		newLogsCommand(v),
	)
	return root
}

// bindFlags maps flag names to configuration keys.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for flag, key := range keys {
		_ = v.BindPFlag(key, fs.Lookup(flag))
	}
}

// loadConfig reads the configuration and initialises logging.
func loadConfig(v *viper.Viper) config.Config {
	cfg := config.FromViper(v)
	app.InitializeLogger(cfg)
	return cfg
}

func writeJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
