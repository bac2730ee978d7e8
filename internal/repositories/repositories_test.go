package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"consultbr_backend/database"
	"consultbr_backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB подключается к TEST_DATABASE_URL; без нее интеграционные тесты пропускаются
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан, пропускаем тесты репозиториев")
	}

	require.NoError(t, database.Migrate(context.Background(), dsn))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.Exec(`TRUNCATE TABLE transactions, notifications, favorites, messages, proposals,
		projects, portfolio_items, consultant_profiles, entrepreneur_profiles, users RESTART IDENTITY CASCADE`).Error
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func createUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	user, err := NewUserRepository().Upsert(db, &models.User{
		ID:        id,
		Email:     strPtr(id + "@example.com"),
		FirstName: strPtr("Nome " + id),
		LastName:  strPtr("Sobrenome"),
	})
	require.NoError(t, err)
	return user
}

func createEntrepreneur(t *testing.T, db *gorm.DB, userID string) *models.EntrepreneurProfile {
	t.Helper()
	createUser(t, db, userID)
	require.NoError(t, NewUserRepository().SetRole(db, userID, models.UserRoleEntrepreneur))
	profile := &models.EntrepreneurProfile{UserID: userID, CompanyName: strPtr("Empresa " + userID)}
	require.NoError(t, NewProfileRepository().CreateEntrepreneurProfile(db, profile))
	return profile
}

func createConsultant(t *testing.T, db *gorm.DB, userID string, industries []string, accepting bool) *models.ConsultantProfile {
	t.Helper()
	createUser(t, db, userID)
	require.NoError(t, NewUserRepository().SetRole(db, userID, models.UserRoleConsultant))
	profile := &models.ConsultantProfile{
		UserID:           userID,
		Title:            strPtr("Consultor de " + userID),
		Industries:       pq.StringArray(industries),
		AcceptingClients: true,
	}
	require.NoError(t, NewProfileRepository().CreateConsultantProfile(db, profile))
	if !accepting {
		// default:true в теге не дает вставить false через Create
		require.NoError(t, NewProfileRepository().UpdateConsultantProfile(db, profile.ID,
			map[string]interface{}{"accepting_clients": false}))
	}
	return profile
}

func TestUserRepository_UpsertAndSetRole(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository()

	user := createUser(t, db, "idp-1")
	assert.Nil(t, user.Role)
	assert.Equal(t, models.UserStatusPendingVerification, user.Status)

	updated, err := repo.Upsert(db, &models.User{ID: "idp-1", Email: strPtr("novo@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "novo@example.com", *updated.Email)

	require.NoError(t, repo.SetRole(db, "idp-1", models.UserRoleConsultant))
	assert.ErrorIs(t, repo.SetRole(db, "idp-1", models.UserRoleEntrepreneur), ErrRoleAlreadySet)
	assert.ErrorIs(t, repo.SetRole(db, "missing", models.UserRoleEntrepreneur), ErrUserNotFound)

	found, err := repo.FindByID(db, "idp-1")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleConsultant, *found.Role)

	require.NoError(t, repo.RecordLogin(db, "idp-1", time.Now()))
	found, err = repo.FindByID(db, "idp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, found.LoginCount)
	assert.NotNil(t, found.LastLogin)
}

func TestUserRepository_UpsertEmailTaken(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository()
	createUser(t, db, "idp-1")

	_, err := repo.Upsert(db, &models.User{ID: "idp-2", Email: strPtr("idp-1@example.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	createUser(t, db, "idp-3")
	_, err = repo.Upsert(db, &models.User{ID: "idp-3", Email: strPtr("idp-1@example.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	_, err = repo.FindByID(db, "idp-2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileRepository_DuplicateProfile(t *testing.T) {
	db := testDB(t)
	createEntrepreneur(t, db, "ent-1")

	err := NewProfileRepository().CreateEntrepreneurProfile(db, &models.EntrepreneurProfile{UserID: "ent-1"})
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)

	_, err = NewProfileRepository().FindConsultantProfileByUserID(db, "ent-1")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileRepository_FindConsultants(t *testing.T) {
	db := testDB(t)
	repo := NewProfileRepository()

	createConsultant(t, db, "c-1", []string{"Tecnologia", "Finanças"}, true)
	createConsultant(t, db, "c-2", []string{"Tecnologia"}, false)
	createConsultant(t, db, "c-3", []string{"Saúde"}, true)

	found, err := repo.FindConsultants(db, ConsultantFilter{Specialization: "Tecnologia"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "c-1", found[0].UserID)
	assert.True(t, found[0].AcceptingClients)
	assert.Contains(t, []string(found[0].Industries), "Tecnologia")
	require.NotNil(t, found[0].User)

	all, err := repo.FindConsultants(db, ConsultantFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// рейтинги равны нулю, новее - выше
	assert.Equal(t, "c-3", all[0].UserID)
	assert.Equal(t, "c-1", all[1].UserID)

	byName, err := repo.FindConsultants(db, ConsultantFilter{Search: "c-3"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "c-3", byName[0].UserID)

	require.NoError(t, repo.IncrementProfileViews(db, found[0].ID))
	reloaded, err := repo.FindConsultantProfileByID(db, found[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.ProfileViews)
}

func TestProjectRepository_DraftHiddenFromPublicList(t *testing.T) {
	db := testDB(t)
	repo := NewProjectRepository()
	ent := createEntrepreneur(t, db, "ent-1")

	project := &models.Project{EntrepreneurID: ent.ID, Title: "Plano", Description: "Plano de negócios"}
	require.NoError(t, repo.Create(db, project))
	assert.Equal(t, models.ProjectStatusDraft, project.Status)

	published, err := repo.FindPublished(db, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, published)

	mine, err := repo.FindByEntrepreneur(db, ent.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, repo.Update(db, project.ID, map[string]interface{}{"status": models.ProjectStatusPublished}))
	published, err = repo.FindPublished(db, 0, 0)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, project.ID, published[0].ID)

	_, err = repo.FindByID(db, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProposalRepository_SentAndReceivedAreDisjoint(t *testing.T) {
	db := testDB(t)
	ent := createEntrepreneur(t, db, "ent-1")
	createConsultant(t, db, "c-1", nil, true)

	project := &models.Project{EntrepreneurID: ent.ID, Title: "P", Description: "D", Status: models.ProjectStatusPublished}
	require.NoError(t, NewProjectRepository().Create(db, project))

	repo := NewProposalRepository()
	require.NoError(t, repo.Create(db, &models.Proposal{
		ProjectID: project.ID, SenderID: "c-1", ReceiverID: "ent-1", Message: "Proposta", ProposedRate: floatPtr(150),
	}))

	open, err := repo.HasOpenProposal(db, project.ID, "c-1")
	require.NoError(t, err)
	assert.True(t, open)

	sent, err := repo.FindByUser(db, "c-1", ProposalBoxSent)
	require.NoError(t, err)
	received, err := repo.FindByUser(db, "c-1", ProposalBoxReceived)
	require.NoError(t, err)
	assert.Len(t, sent, 1)
	assert.Empty(t, received)

	entReceived, err := repo.FindByUser(db, "ent-1", ProposalBoxReceived)
	require.NoError(t, err)
	assert.Len(t, entReceived, 1)
}

func TestMessageRepository_History(t *testing.T) {
	db := testDB(t)
	createUser(t, db, "a")
	createUser(t, db, "b")
	createUser(t, db, "c")

	repo := NewMessageRepository()
	for i, pair := range [][2]string{{"a", "b"}, {"b", "a"}, {"a", "c"}} {
		require.NoError(t, repo.Create(db, &models.Message{
			SenderID: pair[0], ReceiverID: pair[1], Content: fmt.Sprintf("msg %d", i),
		}))
	}

	history, err := repo.FindBetweenUsers(db, "a", "b", nil)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "msg 0", history[0].Content)
	assert.False(t, history[0].IsRead)

	all, err := repo.FindForUser(db, "a")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.MarkAsRead(db, history[0].ID, time.Now()))
	msg, err := repo.FindByID(db, history[0].ID)
	require.NoError(t, err)
	assert.True(t, msg.IsRead)
}

func TestFavoriteRepository_DuplicateAndIdempotentDelete(t *testing.T) {
	db := testDB(t)
	createUser(t, db, "u")
	repo := NewFavoriteRepository()

	fav := &models.Favorite{UserID: "u", TargetID: "t-1", TargetType: models.FavoriteTargetConsultant}
	require.NoError(t, repo.Create(db, fav))
	err := repo.Create(db, &models.Favorite{UserID: "u", TargetID: "t-1", TargetType: models.FavoriteTargetConsultant})
	assert.ErrorIs(t, err, ErrFavoriteAlreadyExists)

	require.NoError(t, repo.Delete(db, "u", "t-1", models.FavoriteTargetConsultant))
	require.NoError(t, repo.Delete(db, "u", "t-1", models.FavoriteTargetConsultant))

	exists, err := repo.Exists(db, "u", "t-1", models.FavoriteTargetConsultant)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStatsRepository_Entrepreneur(t *testing.T) {
	db := testDB(t)
	ent := createEntrepreneur(t, db, "ent-1")
	projects := NewProjectRepository()

	for _, p := range []models.Project{
		{EntrepreneurID: ent.ID, Title: "1", Description: "d", Status: models.ProjectStatusPublished, Budget: floatPtr(100)},
		{EntrepreneurID: ent.ID, Title: "2", Description: "d", Status: models.ProjectStatusCompleted, Budget: floatPtr(250)},
		{EntrepreneurID: ent.ID, Title: "3", Description: "d", Status: models.ProjectStatusDraft},
	} {
		p := p
		require.NoError(t, projects.Create(db, &p))
	}

	createConsultant(t, db, "c-1", nil, true)
	var published models.Project
	require.NoError(t, db.Where("entrepreneur_id = ? AND title = ?", ent.ID, "1").First(&published).Error)

	proposals := NewProposalRepository()
	first := &models.Proposal{ProjectID: published.ID, SenderID: "c-1", ReceiverID: "ent-1", Message: "Proposta"}
	require.NoError(t, proposals.Create(db, first))
	require.NoError(t, proposals.Create(db, &models.Proposal{
		ProjectID: published.ID, SenderID: "ent-1", ReceiverID: "c-1", Message: "Contraproposta", ParentID: &first.ID,
	}))

	stats, err := NewStatsRepository().EntrepreneurStats(db, ent.ID, "ent-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProposals)
	assert.Equal(t, int64(1), stats.ActiveProjects)
	assert.Equal(t, int64(3), stats.TotalProjects)
	assert.Equal(t, int64(1), stats.CompletedProjects)
	assert.InDelta(t, 250.0, stats.TotalSpent, 0.001)
}
