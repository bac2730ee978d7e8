package services

import (
	"errors"

	"consultbr_backend/internal/repositories"
	"consultbr_backend/pkg/apperrors"
)

var repoErrors = map[error]*apperrors.AppError{
	repositories.ErrUserNotFound:          apperrors.ErrUserNotFound,
	repositories.ErrRoleAlreadySet:        apperrors.ErrRoleAlreadySet,
	repositories.ErrEmailAlreadyUsed:      apperrors.ErrEmailInUse,
	repositories.ErrProfileNotFound:       apperrors.ErrProfileNotFound,
	repositories.ErrProfileAlreadyExists:  apperrors.ErrProfileAlreadyExists,
	repositories.ErrProjectNotFound:       apperrors.ErrProjectNotFound,
	repositories.ErrProposalNotFound:      apperrors.ErrProposalNotFound,
	repositories.ErrMessageNotFound:       apperrors.ErrMessageNotFound,
	repositories.ErrFavoriteAlreadyExists: apperrors.ErrFavoriteExists,
	repositories.ErrPortfolioItemNotFound: apperrors.ErrPortfolioItemNotFound,
	repositories.ErrSpecializationExists:  apperrors.ErrSpecializationExists,
	repositories.ErrNotificationNotFound:  apperrors.ErrNotificationNotFound,
	repositories.ErrTransactionNotFound:   apperrors.ErrTransactionNotFound,
}

// mapRepoError переводит ошибки репозиториев в AppError; остальное - 500
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for sentinel, mapped := range repoErrors {
		if errors.Is(err, sentinel) {
			return mapped
		}
	}
	return apperrors.InternalError(err)
}
