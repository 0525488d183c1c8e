package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iconnecthq/iconnect/internal/notify"
	"github.com/iconnecthq/iconnect/internal/request"
	requestStore "github.com/iconnecthq/iconnect/internal/request/store"
)

func init() {
	rootCmd.AddCommand(sampleRequestCmd)
}

var sampleRequestCmd = &cobra.Command{
	Use:   "sample-request",
	Short: "Create a sample service request",
	Long:  `Create a pending sample service request, useful for exercising the admin approval flow locally.`,
	RunE:  runSampleRequest,
}

func runSampleRequest(cmd *cobra.Command, args []string) error {
	db, _, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	requests := request.NewService(requestStore.New(db), notify.New(notify.LogMailer{}))

	req, err := requests.Submit(cmd.Context(), request.CreateParams{
		CustomerName:  "John Doe",
		CustomerEmail: "john.doe@example.com",
		CustomerPhone: "555-0199",
		ServiceName:   "Plumbing Repair",
		ScheduledAt:   time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Sample request created with ID: %s\n", req.ID)

	return nil
}
