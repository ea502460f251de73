package service

import (
	"context"
	"strings"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if err := validateClient(c); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Get(ctx context.Context, id int32) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, page, pageSize int32) ([]domain.Client, int32, error) {
	return s.clientRepo.List(ctx, page, pageSize)
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if err := validateClient(c); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.clientRepo.GetByID(ctx, c.ID)
}

func validateClient(c *domain.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return validationf("client name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return validationf("client email is required")
	}
	return nil
}
