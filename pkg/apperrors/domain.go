package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики (оборачивают ошибки репозиториев)
// =========================================================================

// ErrNotFound - 404 для сущности домена
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - 409, дубликат по уникальному ключу
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - переход статуса не разрешен таблицей переходов (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// --- Auth & Users ---

var ErrNotAuthenticated = New(CodeUnauthorized, "auth", "Unauthorized", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

var ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)

var ErrUserSuspended = New(CodeForbidden, "auth", "Your account is not active", http.StatusForbidden)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

// ErrRoleAlreadySet - роль выставляется ровно один раз при онбординге
var ErrRoleAlreadySet = New(CodeAlreadyExists, "user", "User role has already been set", http.StatusConflict)

var ErrEmailInUse = New(CodeAlreadyExists, "user", "Email is already used by another account", http.StatusConflict)

// --- Profiles ---

var ErrProfileNotFound = New(CodeNotFound, "profile", "Profile not found", http.StatusNotFound)

var ErrProfileAlreadyExists = New(CodeAlreadyExists, "profile", "Profile already exists", http.StatusConflict)

// --- Projects ---

var ErrProjectNotFound = New(CodeNotFound, "project", "Project not found", http.StatusNotFound)

var ErrNotProjectOwner = New(CodeForbidden, "project", "Only the project owner can change this project", http.StatusForbidden)

var ErrInvalidProjectStatus = New(CodeInvalidStatus, "project", "Project status transition is not allowed", http.StatusConflict)

// --- Proposals ---

var ErrProposalNotFound = New(CodeNotFound, "proposal", "Proposal not found", http.StatusNotFound)

var ErrInvalidProposalStatus = New(CodeInvalidStatus, "proposal", "Proposal status transition is not allowed", http.StatusConflict)

var ErrNotProposalParty = New(CodeForbidden, "proposal", "You are not a party of this proposal", http.StatusForbidden)

var ErrProjectNotOpen = New(CodeInvalidStatus, "proposal", "Project is not accepting proposals", http.StatusConflict)

var ErrDuplicateProposal = New(CodeAlreadyExists, "proposal", "You already have an open proposal for this project", http.StatusConflict)

// --- Messages ---

var ErrMessageNotFound = New(CodeNotFound, "message", "Message not found", http.StatusNotFound)

var ErrCannotMessageSelf = New(CodeInvalidOperation, "message", "You cannot send a message to yourself", http.StatusBadRequest)

var ErrNotMessageReceiver = New(CodeForbidden, "message", "Only the receiver can mark a message as read", http.StatusForbidden)

// --- Favorites ---

var ErrFavoriteNotFound = New(CodeNotFound, "favorite", "Favorite not found", http.StatusNotFound)

var ErrFavoriteExists = New(CodeAlreadyExists, "favorite", "Already in favorites", http.StatusConflict)

var ErrFavoriteTargetNotFound = New(CodeNotFound, "favorite", "Favorite target not found", http.StatusNotFound)

// --- Portfolio & Specializations ---

var ErrPortfolioItemNotFound = New(CodeNotFound, "portfolio", "Portfolio item not found", http.StatusNotFound)

var ErrSpecializationExists = New(CodeAlreadyExists, "specialization", "Specialization already exists", http.StatusConflict)

// --- Notifications ---

var ErrNotificationNotFound = New(CodeNotFound, "notification", "Notification not found", http.StatusNotFound)

// --- Transactions ---

var ErrTransactionNotFound = New(CodeNotFound, "transaction", "Transaction not found", http.StatusNotFound)

var ErrInvalidTransactionStatus = New(CodeInvalidStatus, "transaction", "Transaction status transition is not allowed", http.StatusConflict)

var ErrInvalidPaymentAmount = New(CodeValidationFailed, "transaction", "Amount must be greater than zero", http.StatusBadRequest)

// --- Uploads ---

var ErrFileTooLarge = New(CodeLimitExceeded, "upload", "File size exceeds the allowed limit", http.StatusRequestEntityTooLarge)

var ErrInvalidFileType = New(CodeValidationFailed, "upload", "The provided file type is not allowed", http.StatusUnsupportedMediaType)

var ErrStorageUnavailable = New(CodeExternalServiceError, "upload", "File storage is not configured", http.StatusServiceUnavailable)
