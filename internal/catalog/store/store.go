package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/catalog"
	"github.com/iconnecthq/iconnect/internal/fault"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateProvider(ctx context.Context, p *catalog.Provider) error {
	query := `
		INSERT INTO providers (name, email, phone, specialty, active, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name, p.Email, p.Phone, p.Specialty, p.Active,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}

	return nil
}

func (s *Store) ListProviders(ctx context.Context) ([]*catalog.Provider, error) {
	query := `
		SELECT id, name, email, phone, specialty, active, created_at
		FROM providers
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	defer rows.Close()

	var providers []*catalog.Provider

	for rows.Next() {
		var p catalog.Provider

		if err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &p.Phone, &p.Specialty, &p.Active, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning provider: %w", err)
		}

		providers = append(providers, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provider rows: %w", err)
	}

	return providers, nil
}

func (s *Store) SetProviderActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE providers SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("updating provider: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.New(fault.NotFound, "Provider %s not found.", id)
	}

	return nil
}

func (s *Store) CreateOffering(ctx context.Context, o *catalog.Offering) error {
	query := `
		INSERT INTO services (name, description, price_cents, category, active, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.Name, o.Description, o.PriceCents, o.Category, o.Active,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	return nil
}

func (s *Store) ListOfferings(ctx context.Context) ([]*catalog.Offering, error) {
	query := `
		SELECT id, name, description, price_cents, category, active, created_at
		FROM services
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	var offerings []*catalog.Offering

	for rows.Next() {
		var o catalog.Offering

		if err := rows.Scan(
			&o.ID, &o.Name, &o.Description, &o.PriceCents, &o.Category, &o.Active, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}

		offerings = append(offerings, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service rows: %w", err)
	}

	return offerings, nil
}

func (s *Store) SetOfferingActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE services SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("updating service: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.New(fault.NotFound, "Service %s not found.", id)
	}

	return nil
}
