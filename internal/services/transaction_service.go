package services

import (
	"context"
	"math"
	"time"

	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TransactionService interface {
	// CreatePayment - PENDING запись об оплате собственного проекта предпринимателя
	CreatePayment(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	GetTransaction(ctx context.Context, db *gorm.DB, userID, id string) (*models.Transaction, error)
	ListMine(ctx context.Context, db *gorm.DB, userID string) ([]models.Transaction, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateTransactionStatusRequest) (*models.Transaction, error)
}

type transactionService struct {
	transactionRepo repositories.TransactionRepository
	projectRepo     repositories.ProjectRepository
	profileRepo     repositories.ProfileRepository
	notifications   NotificationService
	commissionRate  float64
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	notifications NotificationService,
	commissionRate float64,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		profileRepo:     profileRepo,
		notifications:   notifications,
		commissionRate:  commissionRate,
	}
}

func (s *transactionService) CreatePayment(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	db = db.WithContext(ctx)

	profile, err := s.profileRepo.FindEntrepreneurProfileByUserID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	project, err := s.projectRepo.FindByID(db, req.ProjectID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if project.EntrepreneurID != profile.ID {
		return nil, apperrors.ErrNotProjectOwner
	}

	fee := roundCents(req.Amount * s.commissionRate)
	txn := &models.Transaction{
		UserID:      userID,
		ProjectID:   &project.ID,
		Type:        models.TransactionTypeProjectPayment,
		Amount:      req.Amount,
		Fee:         fee,
		NetAmount:   roundCents(req.Amount - fee),
		Status:      models.TransactionStatusPending,
		Description: req.Description,
	}
	if err := s.transactionRepo.Create(db, txn); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctx, "payment recorded", "transaction_id", txn.ID, "project_id", project.ID, "amount", txn.Amount)
	return txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, db *gorm.DB, userID, id string) (*models.Transaction, error) {
	txn, err := s.transactionRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	// чужие записи не раскрываем
	if txn.UserID != userID {
		return nil, apperrors.ErrTransactionNotFound
	}
	return txn, nil
}

func (s *transactionService) ListMine(ctx context.Context, db *gorm.DB, userID string) ([]models.Transaction, error) {
	txns, err := s.transactionRepo.FindByUser(db.WithContext(ctx), userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return txns, nil
}

func (s *transactionService) UpdateStatus(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateTransactionStatusRequest) (*models.Transaction, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	txn, err := s.transactionRepo.FindByID(tx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !txn.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.ErrInvalidTransactionStatus.
			WithDetails(map[string]string{"from": string(txn.Status), "to": string(req.Status)})
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.ProviderID != nil {
		updates["provider_id"] = *req.ProviderID
	}
	if req.Status.IsSettled() && req.Status != txn.Status {
		updates["processed_at"] = time.Now()
	}
	if err := s.transactionRepo.Update(tx, txn.ID, updates); err != nil {
		return nil, mapRepoError(err)
	}

	notice := Notice{
		UserID:  txn.UserID,
		Type:    models.NotificationTypePayment,
		Title:   "Pagamento atualizado",
		Message: "O status do pagamento mudou para " + string(req.Status),
		Data:    map[string]interface{}{"transactionId": txn.ID, "status": req.Status},
	}
	if err := s.notifications.Record(ctx, tx, notice); err != nil {
		return nil, apperrors.InternalError(err)
	}

	txn, err = s.transactionRepo.FindByID(tx, txn.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "transaction status changed", "transaction_id", txn.ID, "status", txn.Status)
	return txn, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
