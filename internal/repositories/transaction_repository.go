package repositories

import (
	"consultbr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	Create(db *gorm.DB, tx *models.Transaction) error
	FindByID(db *gorm.DB, id string) (*models.Transaction, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Transaction, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
}

type TransactionRepositoryImpl struct{}

func NewTransactionRepository() TransactionRepository {
	return &TransactionRepositoryImpl{}
}

func (r *TransactionRepositoryImpl) Create(db *gorm.DB, tx *models.Transaction) error {
	if tx.Status == "" {
		tx.Status = models.TransactionStatusPending
	}
	return db.Omit(clause.Associations).Create(tx).Error
}

func (r *TransactionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Transaction, error) {
	if !isUUID(id) {
		return nil, ErrTransactionNotFound
	}
	var tx models.Transaction
	if err := db.First(&tx, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrTransactionNotFound)
	}
	return &tx, nil
}

func (r *TransactionRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *TransactionRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return updateByID(db, &models.Transaction{}, id, updates, ErrTransactionNotFound)
}
