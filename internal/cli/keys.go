package cli

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const (
	jwtSecretBytes = 32
	apiKeyBytes    = 24
)

func newKeysCommand() *cobra.Command {
	var labels []string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate a JWT secret and API keys",
		Long: `Generate random credentials in .env format.

Each label gets its own API key; the label is recorded as the principal of
requests made with that key.`,
		Example: `  carbsmart keys --label kitchen --label ops >> .env`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := generateSecureKey(jwtSecretBytes, base64.StdEncoding)
			if err != nil {
				return fmt.Errorf("failed to generate JWT secret: %w", err)
			}

			pairs := make([]string, 0, len(labels))
			for _, label := range labels {
				key, err := generateSecureKey(apiKeyBytes, base64.RawURLEncoding)
				if err != nil {
					return fmt.Errorf("failed to generate API key: %w", err)
				}
				pairs = append(pairs, label+":"+key)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "JWT_SECRET_KEY=%s\n", secret)
			fmt.Fprintf(out, "API_KEYS=%s\n", strings.Join(pairs, ","))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&labels, "label", []string{"default"}, "API key label (repeatable)")
	return cmd
}

func generateSecureKey(length int, enc *base64.Encoding) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return enc.EncodeToString(b), nil
}
