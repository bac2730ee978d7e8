package repositories

import (
	"consultbr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProposalBox - "мои предложения": отправленные или полученные
type ProposalBox string

const (
	ProposalBoxSent     ProposalBox = "sent"
	ProposalBoxReceived ProposalBox = "received"
)

type ProposalRepository interface {
	Create(db *gorm.DB, proposal *models.Proposal) error
	FindByID(db *gorm.DB, id string) (*models.Proposal, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Proposal, error)
	FindByProject(db *gorm.DB, projectID string) ([]models.Proposal, error)
	FindByUser(db *gorm.DB, userID string, box ProposalBox) ([]models.Proposal, error)
	HasOpenProposal(db *gorm.DB, projectID, senderID string) (bool, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
}

type ProposalRepositoryImpl struct{}

func NewProposalRepository() ProposalRepository {
	return &ProposalRepositoryImpl{}
}

func (r *ProposalRepositoryImpl) Create(db *gorm.DB, proposal *models.Proposal) error {
	if proposal.Status == "" {
		proposal.Status = models.ProposalStatusSent
	}
	return db.Omit(clause.Associations).Create(proposal).Error
}

func (r *ProposalRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Proposal, error) {
	if !isUUID(id) {
		return nil, ErrProposalNotFound
	}
	var proposal models.Proposal
	if err := db.First(&proposal, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProposalNotFound)
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Proposal, error) {
	if !isUUID(id) {
		return nil, ErrProposalNotFound
	}
	var proposal models.Proposal
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&proposal, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProposalNotFound)
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) FindByProject(db *gorm.DB, projectID string) ([]models.Proposal, error) {
	if !isUUID(projectID) {
		return []models.Proposal{}, nil
	}
	var proposals []models.Proposal
	err := db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) FindByUser(db *gorm.DB, userID string, box ProposalBox) ([]models.Proposal, error) {
	column := "sender_id"
	if box == ProposalBoxReceived {
		column = "receiver_id"
	}

	var proposals []models.Proposal
	err := db.Where(column+" = ?", userID).Order("created_at DESC").Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) HasOpenProposal(db *gorm.DB, projectID, senderID string) (bool, error) {
	var count int64
	err := db.Model(&models.Proposal{}).
		Where("project_id = ? AND sender_id = ? AND status IN ?", projectID, senderID,
			[]models.ProposalStatus{models.ProposalStatusSent, models.ProposalStatusViewed}).
		Count(&count).Error
	return count > 0, err
}

func (r *ProposalRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return updateByID(db, &models.Proposal{}, id, updates, ErrProposalNotFound)
}
