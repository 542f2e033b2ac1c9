package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kindlinghq/kindling/internal/portal/endpoint"
	"github.com/spf13/cobra"
)

var forwardCmd = &cobra.Command{
	Use:   "forward [json-payload]",
	Short: "Forward a JSON payload to the remote compute endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var payload map[string]any
		if err := json.Unmarshal([]byte(args[0]), &payload); err != nil {
			return fmt.Errorf("payload must be a JSON object: %w", err)
		}

		out, err := application.Endpoint.Post(cmd.Context(), payload)
		if errors.Is(err, endpoint.ErrNotConfigured) {
			return fmt.Errorf("no remote endpoint configured; set PORTAL_ENDPOINT_URL to a real URL")
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
