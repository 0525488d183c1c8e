package account

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, acct *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	SetAdmin(ctx context.Context, id uuid.UUID, admin bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, acct *Account) error {
	return s.repo.CreateAccount(ctx, acct)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.repo.GetAccountByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

// SetAdmin grants or revokes the admin claim. Only the maintenance CLI
// calls this; it is deliberately not exposed over HTTP.
func (s *Service) SetAdmin(ctx context.Context, id uuid.UUID, admin bool) error {
	return s.repo.SetAdmin(ctx, id, admin)
}
