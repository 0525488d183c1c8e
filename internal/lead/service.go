package lead

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=lead
type Repository interface {
	CreateLead(ctx context.Context, l *Lead) error
	GetLead(ctx context.Context, id uuid.UUID) (*Lead, error)
	ListLeads(ctx context.Context) ([]*Lead, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title        string
	Description  string
	ServiceName  string
	ContactEmail string
	ContactPhone string
	Cost         int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Lead, error) {
	cost := params.Cost
	if cost <= 0 {
		cost = 1
	}

	l := &Lead{
		Title:        params.Title,
		Description:  params.Description,
		ServiceName:  params.ServiceName,
		ContactEmail: params.ContactEmail,
		ContactPhone: params.ContactPhone,
		Cost:         cost,
	}
	if err := s.repo.CreateLead(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// Get returns the lead with its buyer set loaded.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Lead, error) {
	return s.repo.GetLead(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Lead, error) {
	return s.repo.ListLeads(ctx)
}
