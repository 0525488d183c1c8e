package catalog

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=catalog
type Repository interface {
	CreateProvider(ctx context.Context, p *Provider) error
	ListProviders(ctx context.Context) ([]*Provider, error)
	SetProviderActive(ctx context.Context, id uuid.UUID, active bool) error

	CreateOffering(ctx context.Context, o *Offering) error
	ListOfferings(ctx context.Context) ([]*Offering, error)
	SetOfferingActive(ctx context.Context, id uuid.UUID, active bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddProvider(ctx context.Context, p *Provider) error {
	p.Active = true
	return s.repo.CreateProvider(ctx, p)
}

func (s *Service) Providers(ctx context.Context) ([]*Provider, error) {
	return s.repo.ListProviders(ctx)
}

func (s *Service) SetProviderActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetProviderActive(ctx, id, active)
}

func (s *Service) AddOffering(ctx context.Context, o *Offering) error {
	o.Active = true
	return s.repo.CreateOffering(ctx, o)
}

func (s *Service) Offerings(ctx context.Context) ([]*Offering, error) {
	return s.repo.ListOfferings(ctx)
}

func (s *Service) SetOfferingActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetOfferingActive(ctx, id, active)
}
