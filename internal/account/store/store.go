package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/account"
	"github.com/iconnecthq/iconnect/internal/fault"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectAccountColumns = `id, email, name, role, credits, admin, created_at, updated_at`

func scanAccount(s scanner) (*account.Account, error) {
	var acct account.Account

	if err := s.Scan(
		&acct.ID, &acct.Email, &acct.Name, &acct.Role, &acct.Credits,
		&acct.Admin, &acct.CreatedAt, &acct.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &acct, nil
}

func (s *Store) CreateAccount(ctx context.Context, acct *account.Account) error {
	query := `
		INSERT INTO accounts (email, name, role, credits, admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		acct.Email,
		acct.Name,
		acct.Role,
		acct.Credits,
		acct.Admin,
	).Scan(&acct.ID, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`

	acct, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.New(fault.NotFound, "User %s not found.", id)
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acct, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE email = $1`

	acct, err := scanAccount(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.New(fault.NotFound, "User %s not found.", email)
		}

		return nil, fmt.Errorf("getting account by email: %w", err)
	}

	return acct, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accts []*account.Account

	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accts = append(accts, acct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accts, nil
}

func (s *Store) SetAdmin(ctx context.Context, id uuid.UUID, admin bool) error {
	query := `
		UPDATE accounts
		SET admin = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, admin, id)
	if err != nil {
		return fmt.Errorf("setting admin claim: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.New(fault.NotFound, "User %s not found.", id)
	}

	return nil
}
