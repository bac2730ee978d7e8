package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"
)

var ErrNoSessionCookie = errors.New("callback did not set a session cookie")

// CurrentUser - ответ /api/auth/user; профиль зависит от роли
type CurrentUser struct {
	models.User
	Profile map[string]interface{} `json:"profile"`
}

// DashboardStats - числовые показатели панели; набор ключей зависит от роли
type DashboardStats map[string]float64

// --- Auth ---

// LoginURL - адрес, с которого браузер начинает вход через провайдера
func (c *Client) LoginURL() string {
	return c.endpoint("/api/login", nil)
}

// Login обменивает токен провайдера на сессию, как это делает браузер в /api/callback
func (c *Client) Login(ctx context.Context, identityToken string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/callback", url.Values{"token": {identityToken}}, nil, "")
	if err != nil {
		return "", err
	}

	hc := *c.httpClient
	hc.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", decodeError(resp)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == c.cookieName && cookie.Value != "" {
			c.session = cookie.Value
			return cookie.Value, nil
		}
	}
	return "", ErrNoSessionCookie
}

func (c *Client) CurrentUser(ctx context.Context) (*CurrentUser, error) {
	var out CurrentUser
	if err := c.do(ctx, http.MethodGet, "/api/auth/user", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCurrentUser(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/user", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Profiles ---

func (c *Client) CreateEntrepreneurProfile(ctx context.Context, req *dto.CreateEntrepreneurProfileRequest) (*models.EntrepreneurProfile, error) {
	var out models.EntrepreneurProfile
	if err := c.do(ctx, http.MethodPost, "/api/profiles/entrepreneur", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEntrepreneurProfile(ctx context.Context, req *dto.UpdateEntrepreneurProfileRequest) (*models.EntrepreneurProfile, error) {
	var out models.EntrepreneurProfile
	if err := c.do(ctx, http.MethodPut, "/api/profiles/entrepreneur", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateConsultantProfile(ctx context.Context, req *dto.CreateConsultantProfileRequest) (*models.ConsultantProfile, error) {
	var out models.ConsultantProfile
	if err := c.do(ctx, http.MethodPost, "/api/profiles/consultant", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateConsultantProfile(ctx context.Context, req *dto.UpdateConsultantProfileRequest) (*models.ConsultantProfile, error) {
	var out models.ConsultantProfile
	if err := c.do(ctx, http.MethodPut, "/api/profiles/consultant", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchConsultants(ctx context.Context, req dto.ConsultantSearchRequest) ([]dto.ConsultantResponse, error) {
	q := url.Values{}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Specialization != "" {
		q.Set("specialization", req.Specialization)
	}
	setPage(q, req.Limit, req.Offset)

	var out []dto.ConsultantResponse
	if err := c.do(ctx, http.MethodGet, "/api/consultants", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetConsultant(ctx context.Context, userID string) (*dto.ConsultantResponse, error) {
	var out dto.ConsultantResponse
	if err := c.do(ctx, http.MethodGet, "/api/consultants/"+url.PathEscape(userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Projects ---

func (c *Client) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProjects(ctx context.Context, limit, offset int) ([]models.Project, error) {
	q := url.Values{}
	setPage(q, limit, offset)

	var out []models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.do(ctx, http.MethodGet, "/api/my-projects", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, req *dto.UpdateProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublishProject - DRAFT -> PUBLISHED
func (c *Client) PublishProject(ctx context.Context, id string) (*models.Project, error) {
	status := models.ProjectStatusPublished
	return c.UpdateProject(ctx, id, &dto.UpdateProjectRequest{Status: &status})
}

// --- Proposals ---

func (c *Client) CreateProposal(ctx context.Context, req *dto.CreateProposalRequest) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.do(ctx, http.MethodPost, "/api/proposals", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProposal(ctx context.Context, id string) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.do(ctx, http.MethodGet, "/api/proposals/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProposalChain(ctx context.Context, id string) ([]models.Proposal, error) {
	var out []models.Proposal
	if err := c.do(ctx, http.MethodGet, "/api/proposals/"+url.PathEscape(id)+"/chain", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProjectProposals(ctx context.Context, projectID string) ([]models.Proposal, error) {
	var out []models.Proposal
	if err := c.do(ctx, http.MethodGet, "/api/proposals/project/"+url.PathEscape(projectID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyProposals - box: sent или received
func (c *Client) MyProposals(ctx context.Context, box string) ([]models.Proposal, error) {
	var out []models.Proposal
	if err := c.do(ctx, http.MethodGet, "/api/my-proposals/"+url.PathEscape(box), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateProposal(ctx context.Context, id string, req *dto.UpdateProposalRequest) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.do(ctx, http.MethodPut, "/api/proposals/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RespondToProposal - ответ получателя: VIEWED, ACCEPTED, DECLINED, COUNTER_OFFERED
func (c *Client) RespondToProposal(ctx context.Context, id string, status models.ProposalStatus) (*models.Proposal, error) {
	return c.UpdateProposal(ctx, id, &dto.UpdateProposalRequest{Status: &status})
}

// --- Portfolio ---

func (c *Client) CreatePortfolioItem(ctx context.Context, req *dto.CreatePortfolioItemRequest) (*models.PortfolioItem, error) {
	var out models.PortfolioItem
	if err := c.do(ctx, http.MethodPost, "/api/portfolio", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Portfolio(ctx context.Context, consultantID string) ([]models.PortfolioItem, error) {
	var out []models.PortfolioItem
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/"+url.PathEscape(consultantID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Messages ---

func (c *Client) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*models.Message, error) {
	var out models.Message
	if err := c.do(ctx, http.MethodPost, "/api/messages", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Conversations(ctx context.Context) ([]dto.Conversation, error) {
	var out []dto.Conversation
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// History - переписка с собеседником; projectID сужает до одного проекта
func (c *Client) History(ctx context.Context, partnerID string, projectID *string) ([]models.Message, error) {
	var q url.Values
	if projectID != nil && *projectID != "" {
		q = url.Values{"projectId": {*projectID}}
	}
	var out []models.Message
	if err := c.do(ctx, http.MethodGet, "/api/messages/"+url.PathEscape(partnerID), q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/api/messages/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

func (c *Client) Thread(ctx context.Context, id string) (*dto.MessageThread, error) {
	var out dto.MessageThread
	if err := c.do(ctx, http.MethodGet, "/api/messages/"+url.PathEscape(id)+"/thread", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Favorites ---

func (c *Client) AddFavorite(ctx context.Context, targetID string, targetType models.FavoriteTarget) (*models.Favorite, error) {
	req := dto.AddFavoriteRequest{TargetID: targetID, TargetType: targetType}
	var out models.Favorite
	if err := c.do(ctx, http.MethodPost, "/api/favorites", nil, &req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, targetID string, targetType models.FavoriteTarget) error {
	path := "/api/favorites/" + url.PathEscape(targetID) + "/" + url.PathEscape(string(targetType))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) Favorites(ctx context.Context, targetType *models.FavoriteTarget) ([]models.Favorite, error) {
	var q url.Values
	if targetType != nil {
		q = url.Values{"type": {string(*targetType)}}
	}
	var out []models.Favorite
	if err := c.do(ctx, http.MethodGet, "/api/my-favorites", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Dashboard, specializations, notifications ---

func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	out := DashboardStats{}
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Specializations(ctx context.Context) ([]models.Specialization, error) {
	var out []models.Specialization
	if err := c.do(ctx, http.MethodGet, "/api/specializations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSpecialization(ctx context.Context, req *dto.CreateSpecializationRequest) (*models.Specialization, error) {
	var out models.Specialization
	if err := c.do(ctx, http.MethodPost, "/api/admin/specializations", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Notifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	var q url.Values
	if unreadOnly {
		q = url.Values{"unread": {"true"}}
	}
	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	var out dto.MarkAllReadResponse
	if err := c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Updated, nil
}

// --- Transactions ---

func (c *Client) CreatePayment(ctx context.Context, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Uploads ---

// Upload отправляет файл multipart-формой в поле file
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*dto.UploadResponse, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = form.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/api/uploads", nil, pr, form.FormDataContentType())
	if err != nil {
		pr.Close()
		return nil, err
	}
	var out dto.UploadResponse
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func setPage(q url.Values, limit, offset int) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
}
