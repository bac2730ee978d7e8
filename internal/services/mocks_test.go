package services

import (
	"context"
	"io"
	"time"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// testDB - *gorm.DB без соединения; достаточно для путей без транзакций
func testDB() *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
}

// --- ProposalRepository ---

type mockProposalRepo struct{ mock.Mock }

func (m *mockProposalRepo) Create(db *gorm.DB, p *models.Proposal) error {
	return m.Called(p).Error(0)
}

func (m *mockProposalRepo) FindByID(db *gorm.DB, id string) (*models.Proposal, error) {
	args := m.Called(id)
	if p := args.Get(0); p != nil {
		return p.(*models.Proposal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProposalRepo) FindByIDForUpdate(db *gorm.DB, id string) (*models.Proposal, error) {
	return m.FindByID(db, id)
}

func (m *mockProposalRepo) FindByProject(db *gorm.DB, projectID string) ([]models.Proposal, error) {
	args := m.Called(projectID)
	return args.Get(0).([]models.Proposal), args.Error(1)
}

func (m *mockProposalRepo) FindByUser(db *gorm.DB, userID string, box repositories.ProposalBox) ([]models.Proposal, error) {
	args := m.Called(userID, box)
	return args.Get(0).([]models.Proposal), args.Error(1)
}

func (m *mockProposalRepo) HasOpenProposal(db *gorm.DB, projectID, senderID string) (bool, error) {
	args := m.Called(projectID, senderID)
	return args.Bool(0), args.Error(1)
}

func (m *mockProposalRepo) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

// --- ProjectRepository ---

type mockProjectRepo struct{ mock.Mock }

func (m *mockProjectRepo) Create(db *gorm.DB, p *models.Project) error {
	return m.Called(p).Error(0)
}

func (m *mockProjectRepo) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	args := m.Called(id)
	if p := args.Get(0); p != nil {
		return p.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectRepo) FindByIDForUpdate(db *gorm.DB, id string) (*models.Project, error) {
	return m.FindByID(db, id)
}

func (m *mockProjectRepo) FindPublished(db *gorm.DB, limit, offset int) ([]models.Project, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *mockProjectRepo) FindByEntrepreneur(db *gorm.DB, entrepreneurID string) ([]models.Project, error) {
	args := m.Called(entrepreneurID)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *mockProjectRepo) FindByConsultant(db *gorm.DB, consultantID string) ([]models.Project, error) {
	args := m.Called(consultantID)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *mockProjectRepo) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

// --- ProfileRepository ---

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) CreateEntrepreneurProfile(db *gorm.DB, p *models.EntrepreneurProfile) error {
	return m.Called(p).Error(0)
}

func (m *mockProfileRepo) FindEntrepreneurProfileByID(db *gorm.DB, id string) (*models.EntrepreneurProfile, error) {
	args := m.Called(id)
	if p := args.Get(0); p != nil {
		return p.(*models.EntrepreneurProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) FindEntrepreneurProfileByUserID(db *gorm.DB, userID string) (*models.EntrepreneurProfile, error) {
	args := m.Called(userID)
	if p := args.Get(0); p != nil {
		return p.(*models.EntrepreneurProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) UpdateEntrepreneurProfile(db *gorm.DB, id string, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

func (m *mockProfileRepo) CreateConsultantProfile(db *gorm.DB, p *models.ConsultantProfile) error {
	return m.Called(p).Error(0)
}

func (m *mockProfileRepo) FindConsultantProfileByID(db *gorm.DB, id string) (*models.ConsultantProfile, error) {
	args := m.Called(id)
	if p := args.Get(0); p != nil {
		return p.(*models.ConsultantProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) FindConsultantProfileByUserID(db *gorm.DB, userID string) (*models.ConsultantProfile, error) {
	args := m.Called(userID)
	if p := args.Get(0); p != nil {
		return p.(*models.ConsultantProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) UpdateConsultantProfile(db *gorm.DB, id string, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

func (m *mockProfileRepo) IncrementProfileViews(db *gorm.DB, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockProfileRepo) FindConsultants(db *gorm.DB, filter repositories.ConsultantFilter, limit, offset int) ([]models.ConsultantProfile, error) {
	args := m.Called(filter, limit, offset)
	return args.Get(0).([]models.ConsultantProfile), args.Error(1)
}

// --- MessageRepository ---

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Create(db *gorm.DB, msg *models.Message) error {
	return m.Called(msg).Error(0)
}

func (m *mockMessageRepo) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	args := m.Called(id)
	if msg := args.Get(0); msg != nil {
		return msg.(*models.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) FindBetweenUsers(db *gorm.DB, userA, userB string, projectID *string) ([]models.Message, error) {
	args := m.Called(userA, userB, projectID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockMessageRepo) FindForUser(db *gorm.DB, userID string) ([]models.Message, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockMessageRepo) FindReplies(db *gorm.DB, parentID string) ([]models.Message, error) {
	args := m.Called(parentID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockMessageRepo) MarkAsRead(db *gorm.DB, id string, at time.Time) error {
	return m.Called(id).Error(0)
}

// --- FavoriteRepository ---

type mockFavoriteRepo struct{ mock.Mock }

func (m *mockFavoriteRepo) Create(db *gorm.DB, f *models.Favorite) error {
	return m.Called(f).Error(0)
}

func (m *mockFavoriteRepo) Delete(db *gorm.DB, userID, targetID string, targetType models.FavoriteTarget) error {
	return m.Called(userID, targetID, targetType).Error(0)
}

func (m *mockFavoriteRepo) FindByUser(db *gorm.DB, userID string, targetType *models.FavoriteTarget) ([]models.Favorite, error) {
	args := m.Called(userID, targetType)
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *mockFavoriteRepo) Exists(db *gorm.DB, userID, targetID string, targetType models.FavoriteTarget) (bool, error) {
	args := m.Called(userID, targetID, targetType)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepo) CountByUser(db *gorm.DB, userID string, targetType models.FavoriteTarget) (int64, error) {
	args := m.Called(userID, targetType)
	return args.Get(0).(int64), args.Error(1)
}

// --- TransactionRepository ---

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(db *gorm.DB, t *models.Transaction) error {
	return m.Called(t).Error(0)
}

func (m *mockTransactionRepo) FindByID(db *gorm.DB, id string) (*models.Transaction, error) {
	args := m.Called(id)
	if t := args.Get(0); t != nil {
		return t.(*models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTransactionRepo) FindByUser(db *gorm.DB, userID string) ([]models.Transaction, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

// --- StatsRepository ---

type mockStatsRepo struct{ mock.Mock }

func (m *mockStatsRepo) EntrepreneurStats(db *gorm.DB, profileID, userID string) (*repositories.EntrepreneurStats, error) {
	args := m.Called(profileID, userID)
	if s := args.Get(0); s != nil {
		return s.(*repositories.EntrepreneurStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsRepo) ConsultantStats(db *gorm.DB, profileID, userID string) (*repositories.ConsultantStats, error) {
	args := m.Called(profileID, userID)
	if s := args.Get(0); s != nil {
		return s.(*repositories.ConsultantStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsRepo) EntrepreneurTotals(db *gorm.DB, profileID string) (*repositories.ProjectTotals, error) {
	args := m.Called(profileID)
	if s := args.Get(0); s != nil {
		return s.(*repositories.ProjectTotals), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsRepo) ConsultantTotals(db *gorm.DB, profileIDs []string) (map[string]repositories.ProjectTotals, error) {
	args := m.Called(profileIDs)
	return args.Get(0).(map[string]repositories.ProjectTotals), args.Error(1)
}

// --- storage.Storage ---

type memoryStorage struct {
	saved map[string][]byte
	err   error
}

func (s *memoryStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	if s.err != nil {
		return s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[key] = data
	return nil
}

func (s *memoryStorage) Delete(ctx context.Context, key string) error {
	delete(s.saved, key)
	return nil
}

func (s *memoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.saved[key]
	return ok, nil
}

func (s *memoryStorage) URL(key string) string { return "/files/" + key }
