package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconnecthq/iconnect/internal/account"
	accountStore "github.com/iconnecthq/iconnect/internal/account/store"
)

func init() {
	rootCmd.AddCommand(setAdminCmd)

	setAdminCmd.Flags().Bool("revoke", false, "Revoke the admin claim instead of granting it")
}

var setAdminCmd = &cobra.Command{
	Use:   "set-admin EMAIL",
	Short: "Grant or revoke the admin claim for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetAdmin,
}

func runSetAdmin(cmd *cobra.Command, args []string) error {
	email := args[0]
	revoke, _ := cmd.Flags().GetBool("revoke")

	db, _, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	accounts := account.NewService(accountStore.New(db))

	ctx := cmd.Context()

	acct, err := accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := accounts.SetAdmin(ctx, acct.ID, !revoke); err != nil {
		return err
	}

	if revoke {
		fmt.Printf("Revoked admin claim for %s\n", email)
	} else {
		fmt.Printf("Granted admin claim for %s\n", email)
	}

	return nil
}
