package services

import (
	"context"
	"errors"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PortfolioService interface {
	CreateItem(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePortfolioItemRequest) (*models.PortfolioItem, error)
	// ListPublic - публичные работы консультанта, новые первыми
	ListPublic(ctx context.Context, db *gorm.DB, consultantID string) ([]models.PortfolioItem, error)
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	profileRepo   repositories.ProfileRepository
}

func NewPortfolioService(portfolioRepo repositories.PortfolioRepository, profileRepo repositories.ProfileRepository) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		profileRepo:   profileRepo,
	}
}

func (s *portfolioService) CreateItem(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePortfolioItemRequest) (*models.PortfolioItem, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	profile, err := s.profileRepo.FindConsultantProfileByUserID(tx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewForbiddenError("Create a consultant profile before adding portfolio items")
		}
		return nil, mapRepoError(err)
	}

	item := req.ToModel(profile.ID)
	if err := s.portfolioRepo.Create(tx, item); err != nil {
		return nil, mapRepoError(err)
	}

	// default:true у is_public - false при вставке gorm пропускает
	if req.Private() {
		if err := s.portfolioRepo.Update(tx, item.ID, map[string]interface{}{"is_public": false}); err != nil {
			return nil, mapRepoError(err)
		}
		item.IsPublic = false
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func (s *portfolioService) ListPublic(ctx context.Context, db *gorm.DB, consultantID string) ([]models.PortfolioItem, error) {
	items, err := s.portfolioRepo.FindPublicByConsultant(db.WithContext(ctx), consultantID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return items, nil
}
