package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/request"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ledger
type Repository interface {
	// AdjustCredits atomically adds amount to the account's balance and
	// returns the new balance. Missing account yields fault.NotFound.
	AdjustCredits(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)

	AppendEntry(ctx context.Context, entry *Entry) error
	ListEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// BeginPurchase opens the database transaction a lead purchase runs
	// in. The balance read locks the account row, so the check-then-debit
	// sequence cannot race a concurrent purchase.
	BeginPurchase(ctx context.Context) (PurchaseTx, error)
}

type PurchaseTx interface {
	LeadCost(ctx context.Context, leadID uuid.UUID) (int64, error)
	BalanceForUpdate(ctx context.Context, accountID uuid.UUID) (int64, error)
	Debit(ctx context.Context, accountID uuid.UUID, amount int64) error
	AddBuyer(ctx context.Context, leadID, accountID uuid.UUID) error
	AppendEntry(ctx context.Context, entry *Entry) error
	Commit() error
	Rollback() error
}

// Transitioner is the request FSM's single status entry point; the ledger
// never writes request status directly.
type Transitioner interface {
	Transition(ctx context.Context, id uuid.UUID, next request.Status) (*request.Request, error)
}

type Service struct {
	repo     Repository
	requests Transitioner
}

func NewService(repo Repository, requests Transitioner) *Service {
	return &Service{repo: repo, requests: requests}
}

type EntryFilter struct {
	Action *Action
	Limit  int
}

// ApproveRequest moves a pending service request to approved and records
// the decision. Admin only.
func (s *Service) ApproveRequest(ctx context.Context, requestID uuid.UUID) (string, error) {
	return s.decideRequest(ctx, requestID, request.StatusApproved, ActionApproveRequest)
}

// RejectRequest moves a pending service request to rejected and records
// the decision. Admin only.
func (s *Service) RejectRequest(ctx context.Context, requestID uuid.UUID) (string, error) {
	return s.decideRequest(ctx, requestID, request.StatusRejected, ActionRejectRequest)
}

func (s *Service) decideRequest(ctx context.Context, requestID uuid.UUID, next request.Status, action Action) (string, error) {
	actor, err := requireAdminActor(ctx)
	if err != nil {
		return "", err
	}

	if _, err := s.requests.Transition(ctx, requestID, next); err != nil {
		return "", err
	}

	entry := &Entry{
		ActorID:   actor,
		Action:    action,
		SubjectID: requestID,
	}
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		return "", fmt.Errorf("appending %s entry: %w", action, err)
	}

	return fmt.Sprintf("Request %s %s.", requestID, next), nil
}

// AdjustCredits grants (positive amount) or deducts (negative amount)
// credits on an account. The resulting balance may go negative; that is
// deliberate and documented behavior. Admin only.
func (s *Service) AdjustCredits(ctx context.Context, userID uuid.UUID, amount int64) (string, error) {
	actor, err := requireAdminActor(ctx)
	if err != nil {
		return "", err
	}

	newBalance, err := s.repo.AdjustCredits(ctx, userID, amount)
	if err != nil {
		return "", err
	}

	entry := &Entry{
		ActorID:   actor,
		Action:    ActionAdjustCredits,
		SubjectID: userID,
		Amount:    &amount,
	}
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		return "", fmt.Errorf("appending adjust_credits entry: %w", err)
	}

	return fmt.Sprintf("User %s credits adjusted to %d.", userID, newBalance), nil
}

// PurchaseLead debits the caller's balance by the lead's cost, adds the
// caller to the lead's buyer set, and records the purchase. All three
// writes share one database transaction; the balance row is locked for the
// duration, so the insufficient-credits check holds under concurrency.
func (s *Service) PurchaseLead(ctx context.Context, leadID uuid.UUID) (string, error) {
	id, err := auth.RequireUser(ctx)
	if err != nil {
		return "", err
	}

	buyer, err := uuid.Parse(id.UID)
	if err != nil {
		return "", fault.New(fault.Unauthenticated, "invalid token subject")
	}

	ptx, err := s.repo.BeginPurchase(ctx)
	if err != nil {
		return "", fmt.Errorf("beginning purchase: %w", err)
	}
	defer ptx.Rollback()

	cost, err := ptx.LeadCost(ctx, leadID)
	if err != nil {
		return "", err
	}

	balance, err := ptx.BalanceForUpdate(ctx, buyer)
	if err != nil {
		return "", err
	}

	if balance < cost {
		return "", fault.New(fault.FailedPrecondition, "Insufficient credits.")
	}

	if err := ptx.Debit(ctx, buyer, cost); err != nil {
		return "", fmt.Errorf("debiting account: %w", err)
	}

	if err := ptx.AddBuyer(ctx, leadID, buyer); err != nil {
		return "", fmt.Errorf("adding buyer: %w", err)
	}

	entry := &Entry{
		ActorID:   buyer,
		Action:    ActionPurchaseLead,
		SubjectID: leadID,
		Amount:    &cost,
	}
	if err := ptx.AppendEntry(ctx, entry); err != nil {
		return "", fmt.Errorf("appending purchase_lead entry: %w", err)
	}

	if err := ptx.Commit(); err != nil {
		return "", fmt.Errorf("committing purchase: %w", err)
	}

	return fmt.Sprintf("Lead %s purchased successfully.", leadID), nil
}

// ListEntries returns audit entries, newest first. Admin only.
func (s *Service) ListEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	return s.repo.ListEntries(ctx, filter)
}

func requireAdminActor(ctx context.Context) (uuid.UUID, error) {
	id, err := auth.RequireAdmin(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	actor, err := uuid.Parse(id.UID)
	if err != nil {
		return uuid.Nil, fault.New(fault.Unauthenticated, "invalid token subject")
	}

	return actor, nil
}
