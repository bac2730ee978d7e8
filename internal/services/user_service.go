package services

import (
	"context"
	"errors"
	"time"

	"consultbr_backend/internal/auth"
	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/metrics"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	// SignIn - callback провайдера: создает или обновляет пользователя и отмечает вход
	SignIn(ctx context.Context, db *gorm.DB, identity *auth.IdentityClaims) (*models.User, error)
	GetCurrentUser(ctx context.Context, db *gorm.DB, userID string) (*dto.CurrentUserResponse, error)
	UpdateCurrentUser(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*models.User, error)

	// Admin
	UpdateUserStatus(ctx context.Context, db *gorm.DB, userID string, status models.UserStatus) (*models.User, error)
}

type userService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	statsRepo   repositories.StatsRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	statsRepo repositories.StatsRepository,
) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		statsRepo:   statsRepo,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *userService) SignIn(ctx context.Context, db *gorm.DB, identity *auth.IdentityClaims) (*models.User, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.Upsert(tx, &models.User{
		ID:              identity.Subject,
		Email:           optional(identity.Email),
		FirstName:       optional(identity.FirstName),
		LastName:        optional(identity.LastName),
		ProfileImageURL: optional(identity.ProfileImageURL),
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	if !user.Status.CanSignIn() {
		return nil, apperrors.ErrUserSuspended
	}

	if identity.EmailVerified && !user.EmailVerified {
		updates := map[string]interface{}{"email_verified": true}
		if user.Status == models.UserStatusPendingVerification {
			updates["status"] = models.UserStatusActive
		}
		if err := s.userRepo.Update(tx, user.ID, updates); err != nil {
			return nil, mapRepoError(err)
		}
	}

	if err := s.userRepo.RecordLogin(tx, user.ID, time.Now()); err != nil {
		return nil, mapRepoError(err)
	}

	user, err = s.userRepo.FindByID(tx, user.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	logger.CtxInfo(ctx, "user signed in", "user_id", user.ID, "login_count", user.LoginCount)
	return user, nil
}

func (s *userService) GetCurrentUser(ctx context.Context, db *gorm.DB, userID string) (*dto.CurrentUserResponse, error) {
	db = db.WithContext(ctx)

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	resp := &dto.CurrentUserResponse{User: user}
	switch {
	case user.HasRole(models.UserRoleEntrepreneur):
		profile, err := loadEntrepreneurProfile(db, s.profileRepo, s.statsRepo, userID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, mapRepoError(err)
		}
		if profile != nil {
			resp.Profile = profile
		}
	case user.HasRole(models.UserRoleConsultant):
		profile, err := loadConsultantProfile(db, s.profileRepo, s.statsRepo, userID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, mapRepoError(err)
		}
		if profile != nil {
			resp.Profile = profile
		}
	}
	return resp, nil
}

func (s *userService) UpdateCurrentUser(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	db = db.WithContext(ctx)

	if err := s.userRepo.Update(db, userID, req.ToUpdates()); err != nil {
		return nil, mapRepoError(err)
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return user, nil
}

func (s *userService) UpdateUserStatus(ctx context.Context, db *gorm.DB, userID string, status models.UserStatus) (*models.User, error) {
	db = db.WithContext(ctx)

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !user.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidStatus("user", "User status transition is not allowed").
			WithDetails(map[string]string{"from": string(user.Status), "to": string(status)})
	}
	if user.Status == status {
		return user, nil
	}

	if err := s.userRepo.UpdateStatus(db, userID, status); err != nil {
		return nil, mapRepoError(err)
	}
	user.Status = status

	logger.CtxInfo(ctx, "user status changed", "user_id", userID, "status", status)
	return user, nil
}

// loadEntrepreneurProfile подставляет производные агрегаты (totalProjects, totalSpent)
func loadEntrepreneurProfile(db *gorm.DB, profiles repositories.ProfileRepository, stats repositories.StatsRepository, userID string) (*models.EntrepreneurProfile, error) {
	profile, err := profiles.FindEntrepreneurProfileByUserID(db, userID)
	if err != nil {
		return nil, err
	}
	applyEntrepreneurTotals(db, stats, profile)
	return profile, nil
}

// applyEntrepreneurTotals - как и у консультанта, при сбое остаются сохраненные значения
func applyEntrepreneurTotals(db *gorm.DB, stats repositories.StatsRepository, profile *models.EntrepreneurProfile) {
	totals, err := stats.EntrepreneurTotals(db, profile.ID)
	if err != nil {
		logger.Warn("failed to compute entrepreneur totals", "error", err, "profile_id", profile.ID)
		return
	}
	profile.TotalProjects = int(totals.TotalProjects)
	profile.TotalSpent = totals.CompletedSum
}

// loadConsultantProfile подставляет производные агрегаты (totalProjects, totalEarnings)
func loadConsultantProfile(db *gorm.DB, profiles repositories.ProfileRepository, stats repositories.StatsRepository, userID string) (*models.ConsultantProfile, error) {
	profile, err := profiles.FindConsultantProfileByUserID(db, userID)
	if err != nil {
		return nil, err
	}
	applyConsultantTotals(db, stats, []*models.ConsultantProfile{profile})
	return profile, nil
}

// applyConsultantTotals - сбой агрегатов не должен ломать чтение профиля
func applyConsultantTotals(db *gorm.DB, stats repositories.StatsRepository, profiles []*models.ConsultantProfile) {
	if len(profiles) == 0 {
		return
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	totals, err := stats.ConsultantTotals(db, ids)
	if err != nil {
		logger.Warn("failed to compute consultant totals", "error", err)
		return
	}
	for _, p := range profiles {
		t := totals[p.ID]
		p.TotalProjects = int(t.CompletedCount)
		p.TotalEarnings = t.CompletedSum
	}
}
