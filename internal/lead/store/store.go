package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/lead"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateLead(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (title, description, service_name, contact_email, contact_phone, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		l.Title,
		l.Description,
		l.ServiceName,
		l.ContactEmail,
		l.ContactPhone,
		l.Cost,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating lead: %w", err)
	}

	return nil
}

func (s *Store) GetLead(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	query := `
		SELECT id, title, description, service_name, contact_email, contact_phone, cost, created_at
		FROM leads
		WHERE id = $1
	`

	var l lead.Lead

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.Title, &l.Description, &l.ServiceName,
		&l.ContactEmail, &l.ContactPhone, &l.Cost, &l.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.New(fault.NotFound, "Lead %s not found.", id)
		}

		return nil, fmt.Errorf("getting lead: %w", err)
	}

	buyers, err := s.leadBuyers(ctx, id)
	if err != nil {
		return nil, err
	}

	l.Buyers = buyers

	return &l, nil
}

func (s *Store) leadBuyers(ctx context.Context, leadID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT account_id
		FROM lead_buyers
		WHERE lead_id = $1
		ORDER BY purchased_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("listing lead buyers: %w", err)
	}
	defer rows.Close()

	var buyers []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning buyer: %w", err)
		}

		buyers = append(buyers, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buyer rows: %w", err)
	}

	return buyers, nil
}

func (s *Store) ListLeads(ctx context.Context) ([]*lead.Lead, error) {
	query := `
		SELECT id, title, description, service_name, contact_email, contact_phone, cost, created_at
		FROM leads
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	var leads []*lead.Lead

	for rows.Next() {
		var l lead.Lead

		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.ServiceName,
			&l.ContactEmail, &l.ContactPhone, &l.Cost, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}

		leads = append(leads, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lead rows: %w", err)
	}

	return leads, nil
}
