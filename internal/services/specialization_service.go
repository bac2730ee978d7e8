package services

import (
	"context"
	"strings"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services/dto"

	"gorm.io/gorm"
)

type SpecializationService interface {
	ListActive(ctx context.Context, db *gorm.DB) ([]models.Specialization, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateSpecializationRequest) (*models.Specialization, error)
}

type specializationService struct {
	specRepo repositories.SpecializationRepository
}

func NewSpecializationService(specRepo repositories.SpecializationRepository) SpecializationService {
	return &specializationService{specRepo: specRepo}
}

func (s *specializationService) ListActive(ctx context.Context, db *gorm.DB) ([]models.Specialization, error) {
	specs, err := s.specRepo.FindActive(db.WithContext(ctx))
	if err != nil {
		return nil, mapRepoError(err)
	}
	return specs, nil
}

func (s *specializationService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateSpecializationRequest) (*models.Specialization, error) {
	spec := &models.Specialization{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		IsActive:    true,
	}
	if err := s.specRepo.Create(db.WithContext(ctx), spec); err != nil {
		return nil, mapRepoError(err)
	}
	return spec, nil
}
