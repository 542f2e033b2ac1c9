package main

import (
	"fmt"

	"github.com/kindlinghq/kindling/internal/portal/sink"
	"github.com/spf13/cobra"
)

var (
	submitName    string
	submitMessage string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Store a form submission with the compute service",
	RunE: func(cmd *cobra.Command, args []string) error {
		stored, err := application.Sink.Append(cmd.Context(), sink.CollectionSubmissions, sink.Document{
			Name:    submitName,
			Message: submitMessage,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Stored submission %s as %s\n", stored.ID, stored.UserID)
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitName, "name", "", "submitter name (required)")
	submitCmd.Flags().StringVar(&submitMessage, "message", "", "submission message (required)")
	_ = submitCmd.MarkFlagRequired("name")
	_ = submitCmd.MarkFlagRequired("message")
}
