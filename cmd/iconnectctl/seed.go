package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iconnecthq/iconnect/internal/account"
	accountStore "github.com/iconnecthq/iconnect/internal/account/store"
	"github.com/iconnecthq/iconnect/internal/catalog"
	catalogStore "github.com/iconnecthq/iconnect/internal/catalog/store"
	"github.com/iconnecthq/iconnect/internal/seed"
)

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("users", "", "CSV file of users to import")
	seedCmd.Flags().String("providers", "", "CSV file of providers to import")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load starter data into the database",
	Long: `Load starter data into the database.

Without flags, inserts the built-in sample users, services, and
providers. With --users or --providers, imports the given CSV files
instead. CSV encoding is auto-detected.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	usersPath, _ := cmd.Flags().GetString("users")
	providersPath, _ := cmd.Flags().GetString("providers")

	db, _, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	seeder := seed.New(
		account.NewService(accountStore.New(db)),
		catalog.NewService(catalogStore.New(db)),
	)

	ctx := cmd.Context()

	if usersPath == "" && providersPath == "" {
		if err := seeder.Samples(ctx); err != nil {
			return err
		}

		fmt.Println("Sample data seeded successfully")
		return nil
	}

	if usersPath != "" {
		f, err := os.Open(usersPath)
		if err != nil {
			return fmt.Errorf("open users file: %w", err)
		}

		n, err := seeder.ImportUsers(ctx, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("import users: %w", err)
		}

		fmt.Printf("Imported %d users\n", n)
	}

	if providersPath != "" {
		f, err := os.Open(providersPath)
		if err != nil {
			return fmt.Errorf("open providers file: %w", err)
		}

		n, err := seeder.ImportProviders(ctx, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("import providers: %w", err)
		}

		fmt.Printf("Imported %d providers\n", n)
	}

	return nil
}
