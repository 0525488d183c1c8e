package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AdjustCredits(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	query := `
		UPDATE accounts
		SET credits = credits + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING credits
	`

	var newBalance int64

	err := s.db.QueryRowContext(ctx, query, amount, userID).Scan(&newBalance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fault.New(fault.NotFound, "User %s not found.", userID)
		}

		return 0, fmt.Errorf("adjusting credits: %w", err)
	}

	return newBalance, nil
}

func (s *Store) AppendEntry(ctx context.Context, entry *ledger.Entry) error {
	return appendEntry(ctx, s.db, entry)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func appendEntry(ctx context.Context, db execer, entry *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (actor_id, action, subject_id, amount, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := db.QueryRowContext(ctx, query,
		entry.ActorID,
		entry.Action,
		entry.SubjectID,
		entry.Amount,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending ledger entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, filter ledger.EntryFilter) ([]*ledger.Entry, error) {
	query := `
		SELECT id, actor_id, action, subject_id, amount, created_at
		FROM ledger_entries
	`

	var args []any

	argIdx := 1

	if filter.Action != nil {
		query += fmt.Sprintf(" WHERE action = $%d", argIdx)

		args = append(args, *filter.Action)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		var entry ledger.Entry

		var actionStr string

		if err := rows.Scan(
			&entry.ID, &entry.ActorID, &actionStr, &entry.SubjectID,
			&entry.Amount, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entry.Action = ledger.Action(actionStr)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return entries, nil
}

type purchaseTx struct {
	tx *sql.Tx
}

func (s *Store) BeginPurchase(ctx context.Context) (ledger.PurchaseTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning purchase tx: %w", err)
	}

	return &purchaseTx{tx: tx}, nil
}

func (p *purchaseTx) Commit() error   { return p.tx.Commit() }
func (p *purchaseTx) Rollback() error { return p.tx.Rollback() }

func (p *purchaseTx) LeadCost(ctx context.Context, leadID uuid.UUID) (int64, error) {
	var cost int64

	err := p.tx.QueryRowContext(ctx, `SELECT cost FROM leads WHERE id = $1`, leadID).Scan(&cost)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fault.New(fault.NotFound, "Lead %s not found.", leadID)
		}

		return 0, fmt.Errorf("reading lead cost: %w", err)
	}

	if cost <= 0 {
		cost = ledger.DefaultLeadCost
	}

	return cost, nil
}

// BalanceForUpdate locks the account row until the purchase commits or
// rolls back, serializing concurrent purchases by the same buyer.
func (p *purchaseTx) BalanceForUpdate(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var balance int64

	query := `SELECT credits FROM accounts WHERE id = $1 FOR UPDATE`

	err := p.tx.QueryRowContext(ctx, query, accountID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fault.New(fault.NotFound, "User %s not found.", accountID)
		}

		return 0, fmt.Errorf("reading balance: %w", err)
	}

	return balance, nil
}

func (p *purchaseTx) Debit(ctx context.Context, accountID uuid.UUID, amount int64) error {
	query := `
		UPDATE accounts
		SET credits = credits - $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := p.tx.ExecContext(ctx, query, amount, accountID); err != nil {
		return fmt.Errorf("debiting credits: %w", err)
	}

	return nil
}

// AddBuyer inserts into the buyer set. Re-purchasing is a no-op on the set.
func (p *purchaseTx) AddBuyer(ctx context.Context, leadID, accountID uuid.UUID) error {
	query := `
		INSERT INTO lead_buyers (lead_id, account_id, purchased_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (lead_id, account_id) DO NOTHING
	`

	if _, err := p.tx.ExecContext(ctx, query, leadID, accountID); err != nil {
		return fmt.Errorf("adding buyer: %w", err)
	}

	return nil
}

func (p *purchaseTx) AppendEntry(ctx context.Context, entry *ledger.Entry) error {
	return appendEntry(ctx, p.tx, entry)
}
