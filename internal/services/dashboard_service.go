package services

import (
	"context"
	"errors"

	"consultbr_backend/internal/repositories"

	"gorm.io/gorm"
)

type DashboardService interface {
	// GetStats - статистика по роли; без профиля пустой объект
	GetStats(ctx context.Context, db *gorm.DB, userID string) (interface{}, error)
}

type dashboardService struct {
	profileRepo repositories.ProfileRepository
	statsRepo   repositories.StatsRepository
}

func NewDashboardService(profileRepo repositories.ProfileRepository, statsRepo repositories.StatsRepository) DashboardService {
	return &dashboardService{
		profileRepo: profileRepo,
		statsRepo:   statsRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, db *gorm.DB, userID string) (interface{}, error) {
	db = db.WithContext(ctx)

	entrepreneur, err := s.profileRepo.FindEntrepreneurProfileByUserID(db, userID)
	switch {
	case err == nil:
		stats, err := s.statsRepo.EntrepreneurStats(db, entrepreneur.ID, userID)
		if err != nil {
			return nil, mapRepoError(err)
		}
		return stats, nil
	case !errors.Is(err, repositories.ErrProfileNotFound):
		return nil, mapRepoError(err)
	}

	consultant, err := s.profileRepo.FindConsultantProfileByUserID(db, userID)
	switch {
	case err == nil:
		stats, err := s.statsRepo.ConsultantStats(db, consultant.ID, userID)
		if err != nil {
			return nil, mapRepoError(err)
		}
		return stats, nil
	case !errors.Is(err, repositories.ErrProfileNotFound):
		return nil, mapRepoError(err)
	}

	return map[string]interface{}{}, nil
}
