// iconnectctl is the maintenance CLI: seeding, admin-claim management,
// and dev-token minting. It talks to the database directly, so it must
// run with the same environment the API server uses.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iconnecthq/iconnect/internal/config"
	"github.com/iconnecthq/iconnect/internal/database"
)

var rootCmd = &cobra.Command{
	Use:           "iconnectctl",
	Short:         "iConnect maintenance tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB loads the environment and connects to the database.
func openDB() (*sql.DB, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, cfg, nil
}
