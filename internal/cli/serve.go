package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandonleon/carbsmart/internal/app"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	f := cmd.Flags()
	f.String("port", "", "listen port")
	f.Bool("auth", false, "require credentials for pan mutations")
	f.String("seed", "", "YAML file of pans created when the store is empty")
	f.String("cache", "", "plan cache backend: memory, redis or none")
	bindFlags(v, f, map[string]string{
		"port":  "PORT",
		"auth":  "AUTH_ENABLED",
		"seed":  "PANS_SEED_FILE",
		"cache": "CACHE_BACKEND",
	})
	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg := loadConfig(v)

	a, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		return err
	}

	server := app.NewServer(a.Router, cfg.Server.Port, cfg.Server.RequestTimeout)
	server.OnShutdown(a.Close)

	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("cache", cfg.Cache.Backend).
		Bool("auth", cfg.Auth.Enabled).
		Bool("audit_log", a.Database.LoggingService != nil).
		Msg("carbsmart ready")

	return server.Run(ctx)
}
