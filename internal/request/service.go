package request

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/fault"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=request
type Repository interface {
	CreateRequest(ctx context.Context, req *Request) error
	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]*Request, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// IncrementResponses bumps the provider-response counter and, in the
	// same statement, closes a pending request that has reached the
	// auto-close threshold. Returns the updated request and the status it
	// had before the write.
	IncrementResponses(ctx context.Context, id uuid.UUID) (*Request, Status, error)
}

// Notifier observes status changes. Implementations must tolerate being
// called from the request path; failures are logged by the caller, never
// surfaced.
type Notifier interface {
	StatusChanged(ctx context.Context, req *Request, old Status)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

type CreateParams struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceName   string
	ScheduledAt   time.Time
}

type ListFilter struct {
	Status *Status
}

func (s *Service) Submit(ctx context.Context, params CreateParams) (*Request, error) {
	req := &Request{
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		CustomerPhone: params.CustomerPhone,
		ServiceName:   params.ServiceName,
		ProviderName:  "Unassigned",
		ScheduledAt:   params.ScheduledAt,
		Status:        StatusPending,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.repo.GetRequest(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Request, error) {
	return s.repo.ListRequests(ctx, filter)
}

// Transition is the single entry point for all status writes. It validates
// the move against the FSM before touching the store, and fires the
// notifier exactly once per write that changed the status.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, next Status) (*Request, error) {
	if !next.valid() {
		return nil, fault.New(fault.InvalidArgument, "unknown status %q", next)
	}

	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransition(next) {
		return nil, fault.New(fault.FailedPrecondition,
			"request %s is %s and cannot become %s", id, req.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}

	old := req.Status
	req.Status = next
	s.notify(ctx, req, old)

	return req, nil
}

// RecordProviderResponse counts a provider's response to the request. The
// store closes a pending request on the fifth response within the same
// write, so the counter and the auto-close can never disagree.
func (s *Service) RecordProviderResponse(ctx context.Context, id uuid.UUID) (*Request, error) {
	req, old, err := s.repo.IncrementResponses(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != old {
		s.notify(ctx, req, old)
	}

	return req, nil
}

func (s *Service) notify(ctx context.Context, req *Request, old Status) {
	if s.notifier == nil {
		return
	}

	s.notifier.StatusChanged(ctx, req, old)
}
