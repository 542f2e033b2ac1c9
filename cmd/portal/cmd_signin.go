package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kindlinghq/kindling/internal/portal/flow"
	"github.com/kindlinghq/kindling/internal/portal/notice"
	"github.com/spf13/cobra"
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with a phone number and one-time code",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhoneSignIn(cmd.Context())
	},
}

// runPhoneSignIn drives the flow controller from the terminal. The
// controller owns all transitions; this loop only relays prompts and input.
func runPhoneSignIn(ctx context.Context) error {
	c := application.Flow

	unsubscribe := application.Notices.Subscribe(func(n notice.Notice) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Text)
	})
	defer unsubscribe()

	if err := c.Start(ctx); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		switch c.State() {
		case flow.StateAwaitingPhone:
			fmt.Print("Phone number: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				c.Cancel()
				return err
			}
			if err := c.SubmitPhoneNumber(ctx, strings.TrimSpace(line)); err != nil {
				return err
			}

		case flow.StateAwaitingCode:
			fmt.Print("Verification code: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				c.Cancel()
				return err
			}
			if err := c.SubmitCode(ctx, strings.TrimSpace(line)); err != nil {
				return err
			}

		case flow.StateIssuing, flow.StateConfirming:
			time.Sleep(50 * time.Millisecond)

		case flow.StateFailed:
			fmt.Print("Try again? [y/N]: ")
			line, err := reader.ReadString('\n')
			if err != nil || !strings.EqualFold(strings.TrimSpace(line), "y") {
				c.Cancel()
				return fmt.Errorf("sign-in abandoned")
			}
			if err := c.Retry(ctx); err != nil {
				return err
			}

		case flow.StateIdle:
			session := application.Identity.CurrentSession()
			if session == nil {
				return fmt.Errorf("sign-in did not complete")
			}
			fmt.Printf("Signed in as %s\n", session.UserID)
			return nil
		}
	}
}
