package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"showroom/internal/config"
	"showroom/internal/sheets/google"
)

const authTimeout = 5 * time.Minute

// newSheetsAuthCmd obtains an OAuth token for the lead worker when a
// service account cannot be shared on the spreadsheet.
func newSheetsAuthCmd(v *viper.Viper) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "sheets-auth",
		Short: "Authorize the lead worker to write to Google Sheets with your account",
		Long: "sheets-auth runs the OAuth consent flow for an installed-app client and\n" +
			"saves the token where the worker reads it (GOOGLE_OAUTH_TOKEN_FILE).\n" +
			"Add " + google.RedirectURL("<port>") + " to the client's redirect URIs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(v)
			clientJSON, err := oauthClient(cfg)
			if err != nil {
				return err
			}
			oc, err := google.OAuthConfig(clientJSON, google.RedirectURL(port))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
			defer cancel()
			tok, err := google.Authorize(ctx, oc, "localhost:"+port, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := google.SaveToken(cfg.GoogleOAuthTokenFile, tok); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved token to %s\n", cfg.GoogleOAuthTokenFile)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&port, "port", "8085", "local port for the OAuth redirect")
	flags.String("client-file", "", "OAuth client JSON downloaded from the Google Cloud console")
	flags.String("token-file", "", "where to write the token")
	configFlags(cmd, map[string]string{
		config.KeyGoogleOAuthClientFile: "client-file",
		config.KeyGoogleOAuthTokenFile:  "token-file",
	})
	return cmd
}

func oauthClient(cfg *config.Config) ([]byte, error) {
	if s := strings.TrimSpace(cfg.GoogleOAuthClientJSON); s != "" {
		return []byte(s), nil
	}
	if cfg.GoogleOAuthClientFile == "" {
		return nil, errors.New("set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE (or --client-file)")
	}
	b, err := os.ReadFile(cfg.GoogleOAuthClientFile)
	if err != nil {
		return nil, exitError("read oauth client", err)
	}
	return b, nil
}
