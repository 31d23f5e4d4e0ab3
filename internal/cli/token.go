package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandonleon/carbsmart/internal/service"
)

func newTokenCommand(v *viper.Viper) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Long: `Mint an HS256 bearer token signed with JWT_SECRET_KEY.

Send it as "Authorization: Bearer <token>" to call the pan mutation routes
when authentication is enabled.`,
		Example: `  JWT_SECRET_KEY=... carbsmart token --subject kitchen-tablet --ttl 720h`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(v)
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.Auth.TokenTTL
			}

			tok, err := service.NewTokenService(cfg.Auth.JWTSecretKey, ttl).Issue(subject)
			if errors.Is(err, service.ErrTokenSecretMissing) {
				return fmt.Errorf("JWT_SECRET_KEY is not set; generate one with 'carbsmart keys'")
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), tok)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.AccessToken)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&subject, "subject", "", "principal recorded for requests made with the token")
	f.DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_TOKEN_TTL)")
	f.BoolVar(&asJSON, "json", false, "print the full token response as JSON")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
