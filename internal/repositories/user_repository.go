package repositories

import (
	"time"

	"consultbr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	// Upsert вставляет пользователя или обновляет данные провайдера у существующего
	Upsert(db *gorm.DB, user *models.User) (*models.User, error)
	// SetRole выставляет роль, только если она еще не выставлена
	SetRole(db *gorm.DB, id string, role models.UserRole) error
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	UpdateStatus(db *gorm.DB, id string, status models.UserStatus) error
	RecordLogin(db *gorm.DB, id string, at time.Time) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Upsert(db *gorm.DB, user *models.User) (*models.User, error) {
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"email":             user.Email,
			"first_name":        user.FirstName,
			"last_name":         user.LastName,
			"profile_image_url": user.ProfileImageURL,
			"updated_at":        time.Now(),
		}),
	}).Create(user).Error
	if err != nil {
		// конфликт по id разрешает ON CONFLICT, остается только email
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return r.FindByID(db, user.ID)
}

func (r *UserRepositoryImpl) SetRole(db *gorm.DB, id string, role models.UserRole) error {
	result := db.Model(&models.User{}).
		Where("id = ? AND role IS NULL", id).
		Updates(map[string]interface{}{"role": role, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Строка не обновилась: либо пользователя нет, либо роль уже есть
	if _, err := r.FindByID(db, id); err != nil {
		return err
	}
	return ErrRoleAlreadySet
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.UserStatus) error {
	return r.Update(db, id, map[string]interface{}{"status": status})
}

func (r *UserRepositoryImpl) RecordLogin(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_login":  at,
		"login_count": gorm.Expr("login_count + 1"),
	}).Error
}
