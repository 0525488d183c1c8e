package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iconnecthq/iconnect/internal/account"
	accountStore "github.com/iconnecthq/iconnect/internal/account/store"
	"github.com/iconnecthq/iconnect/internal/auth"
)

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to AUTH_TOKEN_TTL)")
}

var tokenCmd = &cobra.Command{
	Use:   "token EMAIL",
	Short: "Mint a bearer token for a user",
	Long: `Mint a bearer token for the user with the given email. The token
carries the user's admin claim as stored in the database, so grant the
claim first with set-admin if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	email := args[0]
	ttl, _ := cmd.Flags().GetDuration("ttl")

	db, cfg, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	accounts := account.NewService(accountStore.New(db))

	acct, err := accounts.GetByEmail(cmd.Context(), email)
	if err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}

	token, err := auth.MintToken(cfg.Auth.JWTSecret, auth.Identity{
		UID:   acct.ID.String(),
		Email: acct.Email,
		Admin: acct.Admin,
	}, ttl)
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}

	// Token on stdout so it can be piped; expiry on stderr.
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "Expires: %s\n", time.Now().Add(ttl).Format(time.RFC3339))

	return nil
}
