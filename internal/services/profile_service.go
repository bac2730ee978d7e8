package services

import (
	"context"
	"errors"

	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	CreateEntrepreneurProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateEntrepreneurProfileRequest) (*models.EntrepreneurProfile, error)
	CreateConsultantProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateConsultantProfileRequest) (*models.ConsultantProfile, error)
	UpdateEntrepreneurProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateEntrepreneurProfileRequest) (*models.EntrepreneurProfile, error)
	UpdateConsultantProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateConsultantProfileRequest) (*models.ConsultantProfile, error)

	// GetConsultant - публичная карточка консультанта, каждый просмотр увеличивает profileViews
	GetConsultant(ctx context.Context, db *gorm.DB, userID string) (*dto.ConsultantResponse, error)
	SearchConsultants(ctx context.Context, db *gorm.DB, req *dto.ConsultantSearchRequest) ([]*dto.ConsultantResponse, error)
}

type profileService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	statsRepo   repositories.StatsRepository
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	statsRepo repositories.StatsRepository,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		statsRepo:   statsRepo,
	}
}

// assignRole выставляет роль один раз. Повторный вызов с той же ролью означает,
// что профиль уже создан.
func (s *profileService) assignRole(tx *gorm.DB, userID string, role models.UserRole) error {
	err := s.userRepo.SetRole(tx, userID, role)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrRoleAlreadySet) {
		return mapRepoError(err)
	}

	user, findErr := s.userRepo.FindByID(tx, userID)
	if findErr != nil {
		return mapRepoError(findErr)
	}
	if user.HasRole(role) {
		return apperrors.ErrProfileAlreadyExists
	}
	return apperrors.ErrRoleAlreadySet
}

func (s *profileService) CreateEntrepreneurProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateEntrepreneurProfileRequest) (*models.EntrepreneurProfile, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.assignRole(tx, userID, models.UserRoleEntrepreneur); err != nil {
		return nil, err
	}

	profile := req.ToModel(userID)
	if err := s.profileRepo.CreateEntrepreneurProfile(tx, profile); err != nil {
		return nil, mapRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "entrepreneur profile created", "user_id", userID, "profile_id", profile.ID)
	return profile, nil
}

func (s *profileService) CreateConsultantProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateConsultantProfileRequest) (*models.ConsultantProfile, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.assignRole(tx, userID, models.UserRoleConsultant); err != nil {
		return nil, err
	}

	profile := req.ToModel(userID)
	if err := s.profileRepo.CreateConsultantProfile(tx, profile); err != nil {
		return nil, mapRepoError(err)
	}

	// false у полей с default:true GORM при вставке пропускает
	if falses := req.FalseDefaults(); len(falses) > 0 {
		if err := s.profileRepo.UpdateConsultantProfile(tx, profile.ID, falses); err != nil {
			return nil, mapRepoError(err)
		}
	}

	profile, err := s.profileRepo.FindConsultantProfileByID(tx, profile.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "consultant profile created", "user_id", userID, "profile_id", profile.ID)
	return profile, nil
}

func (s *profileService) UpdateEntrepreneurProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateEntrepreneurProfileRequest) (*models.EntrepreneurProfile, error) {
	db = db.WithContext(ctx)

	profile, err := s.profileRepo.FindEntrepreneurProfileByUserID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.profileRepo.UpdateEntrepreneurProfile(db, profile.ID, req.ToUpdates()); err != nil {
		return nil, mapRepoError(err)
	}

	profile, err = loadEntrepreneurProfile(db, s.profileRepo, s.statsRepo, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return profile, nil
}

func (s *profileService) UpdateConsultantProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateConsultantProfileRequest) (*models.ConsultantProfile, error) {
	db = db.WithContext(ctx)

	profile, err := s.profileRepo.FindConsultantProfileByUserID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.profileRepo.UpdateConsultantProfile(db, profile.ID, req.ToUpdates()); err != nil {
		return nil, mapRepoError(err)
	}

	profile, err = loadConsultantProfile(db, s.profileRepo, s.statsRepo, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return profile, nil
}

func (s *profileService) GetConsultant(ctx context.Context, db *gorm.DB, userID string) (*dto.ConsultantResponse, error) {
	db = db.WithContext(ctx)

	profile, err := loadConsultantProfile(db, s.profileRepo, s.statsRepo, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := s.profileRepo.IncrementProfileViews(db, profile.ID); err != nil {
		return nil, mapRepoError(err)
	}
	profile.ProfileViews++

	return dto.NewConsultantResponse(profile), nil
}

func (s *profileService) SearchConsultants(ctx context.Context, db *gorm.DB, req *dto.ConsultantSearchRequest) ([]*dto.ConsultantResponse, error) {
	db = db.WithContext(ctx)

	profiles, err := s.profileRepo.FindConsultants(db, repositories.ConsultantFilter{
		Search:         req.Search,
		Specialization: req.Specialization,
	}, req.Limit, req.Offset)
	if err != nil {
		return nil, mapRepoError(err)
	}

	ptrs := make([]*models.ConsultantProfile, len(profiles))
	for i := range profiles {
		ptrs[i] = &profiles[i]
	}
	applyConsultantTotals(db, s.statsRepo, ptrs)

	result := make([]*dto.ConsultantResponse, 0, len(ptrs))
	for _, p := range ptrs {
		result = append(result, dto.NewConsultantResponse(p))
	}
	return result, nil
}
