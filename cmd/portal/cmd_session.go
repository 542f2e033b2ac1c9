package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Identity.CheckSession(cmd.Context()); err != nil {
			fmt.Println("session check failed:", err)
		}

		session := application.Identity.CurrentSession()
		if session == nil {
			fmt.Println("Not signed in")
			return nil
		}

		fmt.Printf("User:    %s\n", session.UserID)
		if session.Name != "" {
			fmt.Printf("Name:    %s\n", session.Name)
		}
		if session.Email != "" {
			fmt.Printf("Email:   %s\n", session.Email)
		}
		if session.PhoneNumber != "" {
			fmt.Printf("Phone:   %s\n", session.PhoneNumber)
		}
		fmt.Printf("Expires: %s\n", session.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Revoke the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if application.Identity.CurrentSession() == nil {
			fmt.Println("Not signed in")
			return nil
		}

		if err := application.Identity.SignOut(cmd.Context()); err != nil {
			// Local state is already cleared; the provider-side revocation
			// failed and the token will lapse on its own.
			fmt.Println("provider sign-out failed:", err)
		}

		fmt.Println("Signed out")
		return nil
	},
}
