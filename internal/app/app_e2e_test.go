package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"consultbr_backend/database"
	"consultbr_backend/internal/app"
	"consultbr_backend/internal/auth"
	"consultbr_backend/internal/client"
	"consultbr_backend/internal/config"
	"consultbr_backend/internal/metrics"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const identitySecret = "e2e-identity-secret"

type testServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// newTestServer поднимает весь роутер на TEST_DATABASE_URL; без нее тест пропускается
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан, пропускаем e2e тесты")
	}

	t.Setenv("CONFIG_PATH", "testdata/does-not-exist.yaml")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("SERVER_ENV", "test")
	t.Setenv("SESSION_SECRET", "e2e-session-secret")
	t.Setenv("IDP_SECRET", identitySecret)
	t.Setenv("STORAGE_TYPE", "none")

	cfg, err := config.Load("")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, dsn))

	db, err := database.Open(ctx, cfg)
	require.NoError(t, err)

	err = db.Exec(`TRUNCATE TABLE transactions, notifications, favorites, messages, proposals,
		projects, portfolio_items, consultant_profiles, entrepreneur_profiles, users RESTART IDENTITY CASCADE`).Error
	require.NoError(t, err)

	router, err := app.SetupRouter(cfg, db)
	require.NoError(t, err)

	ts := &testServer{Server: httptest.NewServer(router), DB: db}
	t.Cleanup(func() {
		ts.Server.Close()
		_ = database.Close(db)
	})
	return ts
}

// login проходит /api/callback с подписанным токеном провайдера
func (ts *testServer) login(t *testing.T, userID string) *client.Client {
	t.Helper()

	token, err := auth.SignIdentity(identitySecret, auth.IdentityClaims{
		Email:         userID + "@example.com",
		FirstName:     "Nome " + userID,
		EmailVerified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	require.NoError(t, err)

	c, err := client.New(ts.Server.URL, client.WithHTTPClient(ts.Server.Client()))
	require.NoError(t, err)
	_, err = c.Login(context.Background(), token)
	require.NoError(t, err)
	return c
}

func (ts *testServer) sendRequest(t *testing.T, method, path, session string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if session != "" {
		req.Header.Set("Authorization", "Bearer "+session)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(raw)
}

func strPtr(s string) *string { return &s }

func TestMarketplaceFlow(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	ent := ts.login(t, "ent-1")
	cons := ts.login(t, "cons-1")

	// --- Роль появляется только вместе с профилем ---
	me, err := ent.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, me.Role)
	assert.Nil(t, me.Profile)
	assert.Equal(t, models.UserStatusActive, me.Status)

	_, err = ent.CreateEntrepreneurProfile(ctx, &dto.CreateEntrepreneurProfileRequest{CompanyName: strPtr("Padaria Boa")})
	require.NoError(t, err)

	_, err = ent.CreateEntrepreneurProfile(ctx, &dto.CreateEntrepreneurProfileRequest{CompanyName: strPtr("De novo")})
	assert.True(t, client.IsConflict(err), "second profile of the same type")
	_, err = ent.CreateConsultantProfile(ctx, &dto.CreateConsultantProfileRequest{Title: strPtr("Contador")})
	assert.True(t, client.IsConflict(err), "profile of the other type")

	me, err = ent.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, me.Role)
	assert.Equal(t, models.UserRoleEntrepreneur, *me.Role)
	assert.NotNil(t, me.Profile)

	var apiErr *client.APIError
	consProfile, err := cons.CreateConsultantProfile(ctx, &dto.CreateConsultantProfileRequest{
		Title:      strPtr("Consultor financeiro"),
		Industries: []string{"Finanças", "Varejo"},
	})
	require.NoError(t, err)

	// --- Портфолио: скрытые кейсы не попадают в публичный список ---
	hidden := false
	_, err = cons.CreatePortfolioItem(ctx, &dto.CreatePortfolioItemRequest{Title: "Caso A", Description: "Reestruturação financeira", Tags: []string{"varejo"}})
	require.NoError(t, err)
	_, err = cons.CreatePortfolioItem(ctx, &dto.CreatePortfolioItemRequest{Title: "Caso B", Description: "Confidencial", IsPublic: &hidden})
	require.NoError(t, err)
	_, err = ent.CreatePortfolioItem(ctx, &dto.CreatePortfolioItemRequest{Title: "X", Description: "Y"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	items, err := ent.Portfolio(ctx, consProfile.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Caso A", items[0].Title)

	items, err = ent.Portfolio(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Empty(t, items)

	// --- Роли проверяются по БД ---
	_, err = cons.CreateProject(ctx, &dto.CreateProjectRequest{Title: "Projeto X", Description: "Descrição longa o bastante"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	// --- DRAFT виден только владельцу ---
	project, err := ent.CreateProject(ctx, &dto.CreateProjectRequest{
		Title:       "Plano financeiro",
		Description: "Organizar o fluxo de caixa da padaria",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusDraft, project.Status)

	mine, err := ent.MyProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	public, err := ent.ListProjects(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, public)

	_, err = cons.CreateProposal(ctx, &dto.CreateProposalRequest{ProjectID: project.ID, Message: "Posso ajudar"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode, "draft project does not take proposals")

	_, err = ent.PublishProject(ctx, project.ID)
	require.NoError(t, err)
	public, err = cons.ListProjects(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, public, 1)

	// --- Предложение и встречное предложение ---
	rate := 150.0
	first, err := cons.CreateProposal(ctx, &dto.CreateProposalRequest{ProjectID: project.ID, Message: "Posso ajudar", ProposedRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, "ent-1", first.ReceiverID)
	assert.Equal(t, models.ProposalStatusSent, first.Status)

	_, err = cons.CreateProposal(ctx, &dto.CreateProposalRequest{ProjectID: project.ID, Message: "De novo"})
	assert.True(t, client.IsConflict(err), "one open proposal per consultant and project")

	sent, err := cons.MyProposals(ctx, "sent")
	require.NoError(t, err)
	received, err := cons.MyProposals(ctx, "received")
	require.NoError(t, err)
	assert.Len(t, sent, 1)
	assert.Empty(t, received)

	_, err = cons.MyProposals(ctx, "all")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	viewed, err := ent.GetProposal(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusViewed, viewed.Status)
	assert.NotNil(t, viewed.ViewedAt)

	counterRate := 120.0
	counter, err := ent.CreateProposal(ctx, &dto.CreateProposalRequest{
		ProjectID:    project.ID,
		Message:      "Consegue por 120?",
		ProposedRate: &counterRate,
		ParentID:     &first.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "cons-1", counter.ReceiverID)

	parent, err := cons.GetProposal(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusCounterOffered, parent.Status)

	chain, err := cons.ProposalChain(ctx, counter.ID)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, first.ID, chain[0].ID)
	assert.Equal(t, counter.ID, chain[1].ID)

	accepted, err := cons.RespondToProposal(ctx, counter.ID, models.ProposalStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusAccepted, accepted.Status)

	assigned, err := ent.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusInProgress, assigned.Status)
	require.NotNil(t, assigned.ConsultantID)
	assert.Equal(t, consProfile.ID, *assigned.ConsultantID)

	consMine, err := cons.MyProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, consMine, 1)

	// --- Сообщения ---
	_, err = cons.SendMessage(ctx, &dto.SendMessageRequest{ReceiverID: "cons-1", Content: "eu mesmo"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	_, err = cons.SendMessage(ctx, &dto.SendMessageRequest{ReceiverID: "nobody", Content: "oi"})
	assert.True(t, client.IsNotFound(err))

	msg, err := cons.SendMessage(ctx, &dto.SendMessageRequest{ReceiverID: "ent-1", ProjectID: &project.ID, Content: "Vamos começar?"})
	require.NoError(t, err)

	history, err := ent.History(ctx, "cons-1", nil)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, msg.ID, history[0].ID)
	assert.False(t, history[0].IsRead)

	convs, err := ent.Conversations(ctx)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "cons-1", convs[0].PartnerID)
	assert.Equal(t, 1, convs[0].UnreadCount)

	require.NoError(t, ent.MarkMessageRead(ctx, msg.ID))
	convs, err = ent.Conversations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, convs[0].UnreadCount)

	// --- Избранное и статистика ---
	_, err = ent.AddFavorite(ctx, "cons-1", models.FavoriteTargetConsultant)
	require.NoError(t, err)
	_, err = ent.AddFavorite(ctx, "cons-1", models.FavoriteTargetConsultant)
	assert.True(t, client.IsConflict(err))

	stats, err := ent.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1), stats["activeProjects"])
	assert.Equal(t, float64(1), stats["favoriteConsultants"])
	assert.Equal(t, float64(2), stats["totalProposals"], "every proposal on own projects, counter offers included")

	require.NoError(t, ent.RemoveFavorite(ctx, "cons-1", models.FavoriteTargetConsultant))
	favs, err := ent.Favorites(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, favs)

	notifications, err := ent.Notifications(ctx, true)
	require.NoError(t, err)
	assert.NotEmpty(t, notifications)
}

func TestProposalForProjectWithoutOwnerProfile(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	ent := ts.login(t, "ent-gone")
	cons := ts.login(t, "cons-1")

	_, err := ent.CreateEntrepreneurProfile(ctx, &dto.CreateEntrepreneurProfileRequest{CompanyName: strPtr("Loja")})
	require.NoError(t, err)
	_, err = cons.CreateConsultantProfile(ctx, &dto.CreateConsultantProfileRequest{Title: strPtr("Contador")})
	require.NoError(t, err)

	project, err := ent.CreateProject(ctx, &dto.CreateProjectRequest{Title: "Plano", Description: "Organizar as contas da loja"})
	require.NoError(t, err)
	_, err = ent.PublishProject(ctx, project.ID)
	require.NoError(t, err)

	countProposals := func() int64 {
		var n int64
		require.NoError(t, ts.DB.Raw("SELECT count(*) FROM proposals").Scan(&n).Error)
		return n
	}
	before := countProposals()

	require.NoError(t, ts.DB.Exec("DELETE FROM entrepreneur_profiles WHERE user_id = ?", "ent-gone").Error)

	_, err = cons.CreateProposal(ctx, &dto.CreateProposalRequest{ProjectID: project.ID, Message: "Posso ajudar"})
	assert.True(t, client.IsNotFound(err), "project owner profile is gone: %v", err)
	assert.Equal(t, before, countProposals())
}

func TestProjectStatusTransitions(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	ent := ts.login(t, "ent-1")
	_, err := ent.CreateEntrepreneurProfile(ctx, &dto.CreateEntrepreneurProfileRequest{CompanyName: strPtr("Padaria")})
	require.NoError(t, err)

	project, err := ent.CreateProject(ctx, &dto.CreateProjectRequest{Title: "Plano", Description: "Organizar o caixa"})
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusDraft, project.Status)

	var apiErr *client.APIError
	completed := models.ProjectStatusCompleted
	_, err = ent.UpdateProject(ctx, project.ID, &dto.UpdateProjectRequest{Status: &completed})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "INVALID_STATUS", apiErr.Code)

	got, err := ent.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusDraft, got.Status)

	// тот же статус - не переход, счетчик не растет
	draftCounter := metrics.ProjectTransitions.WithLabelValues(string(models.ProjectStatusDraft))
	before := testutil.ToFloat64(draftCounter)
	draft := models.ProjectStatusDraft
	_, err = ent.UpdateProject(ctx, project.ID, &dto.UpdateProjectRequest{Status: &draft, Title: strPtr("Plano novo")})
	require.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(draftCounter))

	publishedCounter := metrics.ProjectTransitions.WithLabelValues(string(models.ProjectStatusPublished))
	before = testutil.ToFloat64(publishedCounter)
	_, err = ent.PublishProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(publishedCounter))
}

func TestConsultantSearchBySpecialization(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	accepting := ts.login(t, "cons-a")
	closed := ts.login(t, "cons-b")
	other := ts.login(t, "cons-c")

	_, err := accepting.CreateConsultantProfile(ctx, &dto.CreateConsultantProfileRequest{Industries: []string{"Varejo"}})
	require.NoError(t, err)

	no := false
	_, err = closed.CreateConsultantProfile(ctx, &dto.CreateConsultantProfileRequest{Industries: []string{"Varejo"}, AcceptingClients: &no})
	require.NoError(t, err)

	_, err = other.CreateConsultantProfile(ctx, &dto.CreateConsultantProfileRequest{Industries: []string{"Tecnologia"}})
	require.NoError(t, err)

	found, err := accepting.SearchConsultants(ctx, dto.ConsultantSearchRequest{Specialization: "Varejo"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "cons-a", found[0].UserID)

	card, err := other.GetConsultant(ctx, "cons-a")
	require.NoError(t, err)
	assert.Equal(t, 1, card.ProfileViews)
}

func TestPublicAndProtectedRoutes(t *testing.T) {
	ts := newTestServer(t)

	res, body := ts.sendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.sendRequest(t, http.MethodGet, "/api/specializations", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.sendRequest(t, http.MethodGet, "/api/my-projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

	res, body = ts.sendRequest(t, http.MethodGet, "/api/dashboard/stats", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

	res, body = ts.sendRequest(t, http.MethodGet, "/api/projects/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)

	c := ts.login(t, "no-profile")
	res, body = ts.sendRequest(t, http.MethodGet, "/api/dashboard/stats", c.Session(), nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{}`, body)
}
