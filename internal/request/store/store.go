package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/request"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRequestColumns = `
	r.id, r.customer_name, r.customer_email, r.customer_phone, r.service_name,
	r.provider_name, r.scheduled_at, r.status, r.provider_responses, r.review,
	r.created_at, r.updated_at
`

func scanRequest(s scanner) (*request.Request, error) {
	var req request.Request

	var statusStr string

	var review sql.NullString

	if err := s.Scan(
		&req.ID, &req.CustomerName, &req.CustomerEmail, &req.CustomerPhone,
		&req.ServiceName, &req.ProviderName, &req.ScheduledAt, &statusStr,
		&req.ProviderResponses, &review, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, err
	}

	req.Status = request.Status(statusStr)
	req.Review = review.String

	return &req, nil
}

func (s *Store) CreateRequest(ctx context.Context, req *request.Request) error {
	query := `
		INSERT INTO service_requests
			(customer_name, customer_email, customer_phone, service_name, provider_name, scheduled_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		req.CustomerName,
		req.CustomerEmail,
		req.CustomerPhone,
		req.ServiceName,
		req.ProviderName,
		req.ScheduledAt,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return nil
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM service_requests r WHERE r.id = $1`

	req, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.New(fault.NotFound, "Request %s not found.", id)
		}

		return nil, fmt.Errorf("getting request: %w", err)
	}

	return req, nil
}

func (s *Store) ListRequests(ctx context.Context, filter request.ListFilter) ([]*request.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM service_requests r`

	var args []any

	if filter.Status != nil {
		query += " WHERE r.status = $1"

		args = append(args, *filter.Status)
	}

	query += " ORDER BY r.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var reqs []*request.Request

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}

		reqs = append(reqs, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating request rows: %w", err)
	}

	return reqs, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status request.Status) error {
	query := `
		UPDATE service_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.New(fault.NotFound, "Request %s not found.", id)
	}

	return nil
}

// IncrementResponses bumps the counter and auto-closes a pending request
// that reaches the threshold, in a single statement. The previous status is
// locked and returned alongside so the caller can detect the close.
func (s *Store) IncrementResponses(ctx context.Context, id uuid.UUID) (*request.Request, request.Status, error) {
	query := `
		UPDATE service_requests r
		SET provider_responses = r.provider_responses + 1,
			status = CASE
				WHEN r.status = 'pending' AND r.provider_responses + 1 >= 5 THEN 'closed'
				ELSE r.status
			END,
			updated_at = NOW()
		FROM (
			SELECT id, status AS old_status
			FROM service_requests
			WHERE id = $1
			FOR UPDATE
		) prev
		WHERE r.id = prev.id
		RETURNING ` + selectRequestColumns + `, prev.old_status
	`

	var req request.Request

	var statusStr, oldStatusStr string

	var review sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.CustomerName, &req.CustomerEmail, &req.CustomerPhone,
		&req.ServiceName, &req.ProviderName, &req.ScheduledAt, &statusStr,
		&req.ProviderResponses, &review, &req.CreatedAt, &req.UpdatedAt,
		&oldStatusStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", fault.New(fault.NotFound, "Request %s not found.", id)
		}

		return nil, "", fmt.Errorf("incrementing responses: %w", err)
	}

	req.Status = request.Status(statusStr)
	req.Review = review.String

	return &req, request.Status(oldStatusStr), nil
}
