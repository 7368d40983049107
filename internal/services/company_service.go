package services

import (
	"context"
	"errors"
	"strings"

	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
)

type CompanyService struct {
	Companies CompanyStore
}

func NewCompanyService(companies CompanyStore) *CompanyService {
	return &CompanyService{Companies: companies}
}

func (s *CompanyService) List(ctx context.Context) ([]*models.Company, error) {
	return s.Companies.List(ctx)
}

func (s *CompanyService) Create(ctx context.Context, req *models.CreateCompanyRequest) (*models.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, Invalid("Company name is required")
	}
	c, err := s.Companies.Create(ctx, name, req.Logo)
	if errors.Is(err, repositories.ErrConflict) {
		return nil, Conflict("Company already exists")
	}
	return c, err
}
