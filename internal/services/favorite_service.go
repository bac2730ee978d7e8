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

type FavoriteService interface {
	AddFavorite(ctx context.Context, db *gorm.DB, userID string, req *dto.AddFavoriteRequest) (*models.Favorite, error)
	// RemoveFavorite идемпотентен
	RemoveFavorite(ctx context.Context, db *gorm.DB, userID string, req *dto.RemoveFavoriteRequest) error
	ListFavorites(ctx context.Context, db *gorm.DB, userID string, targetType *models.FavoriteTarget) ([]models.Favorite, error)
}

type favoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	profileRepo  repositories.ProfileRepository
	projectRepo  repositories.ProjectRepository
}

func NewFavoriteService(
	favoriteRepo repositories.FavoriteRepository,
	profileRepo repositories.ProfileRepository,
	projectRepo repositories.ProjectRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		profileRepo:  profileRepo,
		projectRepo:  projectRepo,
	}
}

func (s *favoriteService) AddFavorite(ctx context.Context, db *gorm.DB, userID string, req *dto.AddFavoriteRequest) (*models.Favorite, error) {
	db = db.WithContext(ctx)

	if err := s.checkTarget(db, req.TargetID, req.TargetType); err != nil {
		return nil, err
	}

	favorite := &models.Favorite{
		UserID:     userID,
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
	}
	if err := s.favoriteRepo.Create(db, favorite); err != nil {
		return nil, mapRepoError(err)
	}
	return favorite, nil
}

// checkTarget - консультант адресуется по userId, проект по своему id
func (s *favoriteService) checkTarget(db *gorm.DB, targetID string, targetType models.FavoriteTarget) error {
	var err error
	switch targetType {
	case models.FavoriteTargetConsultant:
		_, err = s.profileRepo.FindConsultantProfileByUserID(db, targetID)
	case models.FavoriteTargetProject:
		_, err = s.projectRepo.FindByID(db, targetID)
	default:
		return apperrors.ValidationError(map[string]string{"targetType": "must be 'consultant' or 'project'"})
	}

	if errors.Is(err, repositories.ErrProfileNotFound) || errors.Is(err, repositories.ErrProjectNotFound) {
		return apperrors.ErrFavoriteTargetNotFound
	}
	return mapRepoError(err)
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, db *gorm.DB, userID string, req *dto.RemoveFavoriteRequest) error {
	return mapRepoError(s.favoriteRepo.Delete(db.WithContext(ctx), userID, req.TargetID, req.TargetType))
}

func (s *favoriteService) ListFavorites(ctx context.Context, db *gorm.DB, userID string, targetType *models.FavoriteTarget) ([]models.Favorite, error) {
	favorites, err := s.favoriteRepo.FindByUser(db.WithContext(ctx), userID, targetType)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return favorites, nil
}
