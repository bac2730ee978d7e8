package repositories

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrRoleAlreadySet        = errors.New("user role already set")
	ErrEmailAlreadyUsed      = errors.New("email already used by another user")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrProfileAlreadyExists  = errors.New("profile already exists")
	ErrProjectNotFound       = errors.New("project not found")
	ErrProposalNotFound      = errors.New("proposal not found")
	ErrMessageNotFound       = errors.New("message not found")
	ErrFavoriteAlreadyExists = errors.New("favorite already exists")
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")
	ErrSpecializationExists  = errors.New("specialization already exists")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
)

const pgUniqueViolation = "23505"

// isUniqueViolation - нарушение уникального индекса (дубликат профиля, избранного и т.п.)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// notFound переводит gorm.ErrRecordNotFound в доменную ошибку пакета
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// Pagination - лимиты по умолчанию для публичных списков
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// isUUID - id из URL может быть произвольной строкой, а колонки id у сущностей типа uuid
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
