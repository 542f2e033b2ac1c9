package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kindlinghq/kindling/pkg/cryptox"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/spf13/cobra"
)

var federatedCmd = &cobra.Command{
	Use:   "federated",
	Short: "Sign in through the configured upstream OIDC provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := application.Cfg
		if !cfg.FederatedConfigured() {
			return fmt.Errorf("federated sign-in is not configured; set the PORTAL_OIDC_* variables")
		}

		ctx := cmd.Context()
		f, err := application.Identity.NewFederatedFlow(ctx, identitysdk.FederatedConfig{
			IssuerURL:    cfg.OIDCIssuerURL,
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
		})
		if err != nil {
			return err
		}

		state, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			return err
		}

		fmt.Println("Open the following URL in a browser and authorize:")
		fmt.Println()
		fmt.Println("  " + f.AuthURL(state))
		fmt.Println()
		fmt.Print("Paste the authorization code: ")

		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}

		session, err := f.Exchange(ctx, strings.TrimSpace(line))
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s\n", session.UserID)
		return nil
	},
}
