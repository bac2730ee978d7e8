package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:5000")
	assert.Error(t, err)
}

func TestClient_SendsSessionAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("offset"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []models.Project{{Title: "Plano financeiro"}})
	}, WithSession("tok"))

	projects, err := c.ListProjects(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Plano financeiro", projects[0].Title)
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error": map[string]interface{}{
				"code":    "INVALID_STATUS",
				"domain":  "proposal",
				"message": "Proposal status transition is not allowed",
			},
		})
	})

	_, err := c.RespondToProposal(context.Background(), "p1", models.ProposalStatusAccepted)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "INVALID_STATUS", apiErr.Code)
	assert.Equal(t, "proposal", apiErr.Domain)
	assert.True(t, IsConflict(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_UnauthorizedPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.CurrentUser(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Unauthorized")
	assert.False(t, IsUnauthorized(fmt.Errorf("wrapped: %w", errors.New("other"))))
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/callback":
			assert.Equal(t, "idp-token", r.URL.Query().Get("token"))
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "session-token", HttpOnly: true})
			http.Redirect(w, r, "/", http.StatusFound)
		case "/api/auth/user":
			assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": "u1", "profile": nil})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}, WithCookieName("sid"))

	token, err := c.Login(context.Background(), "idp-token")
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
	assert.Equal(t, "session-token", c.Session())

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Nil(t, user.Profile)
}

func TestClient_LoginWithoutCookie(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})

	_, err := c.Login(context.Background(), "idp-token")
	assert.ErrorIs(t, err, ErrNoSessionCookie)
}

func TestClient_HistoryWithProject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/messages/partner-1", r.URL.Path)
		assert.Equal(t, "proj-1", r.URL.Query().Get("projectId"))
		writeJSON(w, http.StatusOK, []models.Message{{Content: "oi"}})
	})

	project := "proj-1"
	msgs, err := c.History(context.Background(), "partner-1", &project)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].IsRead)
}

func TestClient_SendMessageBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req dto.SendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "u2", req.ReceiverID)
		writeJSON(w, http.StatusCreated, models.Message{ReceiverID: req.ReceiverID, Content: req.Content})
	})

	msg, err := c.SendMessage(context.Background(), &dto.SendMessageRequest{ReceiverID: "u2", Content: "Olá"})
	require.NoError(t, err)
	assert.Equal(t, "Olá", msg.Content)
}

func TestClient_RemoveFavoritePath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/favorites/c1/consultant", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})

	require.NoError(t, c.RemoveFavorite(context.Background(), "c1", models.FavoriteTargetConsultant))
}

func TestClient_DashboardStatsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
	})

	stats, err := c.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestClient_Upload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, "deck.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4", string(body))
		writeJSON(w, http.StatusCreated, dto.UploadResponse{URL: "/uploads/u1/x.pdf", Size: int64(len(body))})
	})

	resp, err := c.Upload(context.Background(), "deck.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.Size)
}
