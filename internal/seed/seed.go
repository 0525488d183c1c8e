// Package seed loads starter data into a fresh database: a handful of
// built-in sample rows for local development, plus CSV import for real
// user and provider lists handed over by operations.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/iconnecthq/iconnect/internal/account"
	"github.com/iconnecthq/iconnect/internal/catalog"
)

type Seeder struct {
	accounts *account.Service
	catalog  *catalog.Service
}

func New(accounts *account.Service, catalog *catalog.Service) *Seeder {
	return &Seeder{accounts: accounts, catalog: catalog}
}

var sampleUsers = []account.Account{
	{Name: "John Doe", Email: "john.doe@example.com", Role: "Admin", Admin: true},
	{Name: "Jane Smith", Email: "jane.smith@example.com", Role: "User"},
	{Name: "Peter Jones", Email: "peter.jones@example.com", Role: "User"},
}

var sampleOfferings = []catalog.Offering{
	{Name: "Web Development", Description: "Full-stack web development services.", PriceCents: 100000, Category: "Development"},
	{Name: "Mobile App Development", Description: "Native and hybrid mobile app development.", PriceCents: 150000, Category: "Development"},
	{Name: "UI/UX Design", Description: "User interface and user experience design.", PriceCents: 50000, Category: "Design"},
}

var sampleProviders = []catalog.Provider{
	{Name: "Jane Smith", Email: "jane.smith@example.com", Phone: "555-0101", Specialty: "Plumbing"},
	{Name: "Carlos Mendes", Email: "carlos.mendes@example.com", Phone: "555-0102", Specialty: "Electrical"},
}

// Samples inserts the built-in development fixtures. It is not
// idempotent: running it twice against the same database fails on the
// unique email constraints, which is the signal the operator needs.
func (s *Seeder) Samples(ctx context.Context) error {
	for i := range sampleUsers {
		u := sampleUsers[i]
		if err := s.accounts.Create(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		slog.Info("seeded user", "email", u.Email, "role", u.Role)
	}

	for i := range sampleOfferings {
		o := sampleOfferings[i]
		if err := s.catalog.AddOffering(ctx, &o); err != nil {
			return fmt.Errorf("seed service %s: %w", o.Name, err)
		}
		slog.Info("seeded service", "name", o.Name)
	}

	for i := range sampleProviders {
		p := sampleProviders[i]
		if err := s.catalog.AddProvider(ctx, &p); err != nil {
			return fmt.Errorf("seed provider %s: %w", p.Name, err)
		}
		slog.Info("seeded provider", "name", p.Name)
	}

	return nil
}

// ImportUsers parses a user CSV and creates an account per row.
// Returns the number of accounts created.
func (s *Seeder) ImportUsers(ctx context.Context, r io.Reader) (int, error) {
	accounts, err := ParseUsers(r)
	if err != nil {
		return 0, err
	}

	for i := range accounts {
		if err := s.accounts.Create(ctx, &accounts[i]); err != nil {
			return i, fmt.Errorf("create %s: %w", accounts[i].Email, err)
		}
	}

	return len(accounts), nil
}

// ImportProviders parses a provider CSV and registers each provider.
// Returns the number of providers created.
func (s *Seeder) ImportProviders(ctx context.Context, r io.Reader) (int, error) {
	providers, err := ParseProviders(r)
	if err != nil {
		return 0, err
	}

	for i := range providers {
		if err := s.catalog.AddProvider(ctx, &providers[i]); err != nil {
			return i, fmt.Errorf("create %s: %w", providers[i].Email, err)
		}
	}

	return len(providers), nil
}
