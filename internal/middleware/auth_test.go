package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"consultbr_backend/internal/auth"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testCookie = "connect.sid"

type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) FindByID(db *gorm.DB, id string) (*models.User, error) {
	args := m.Called(db, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(sessions *auth.SessionManager, users UserLookup, roles ...models.UserRole) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), &gorm.DB{})
		c.Next()
	})
	r.GET("/optional", OptionalAuthMiddleware(sessions, testCookie), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	protected := r.Group("/")
	protected.Use(AuthMiddleware(sessions, testCookie))
	protected.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, GetUserID(c)) })
	protected.GET("/gated", RequireRoles(users, roles...), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func role(r models.UserRole) *models.UserRole { return &r }

func TestAuthMiddleware(t *testing.T) {
	sessions := auth.NewSessionManager("secret", time.Hour)
	r := newRouter(sessions, &mockUserLookup{})
	token, err := sessions.Issue("user-1", "a@b.c")
	require.NoError(t, err)

	t.Run("no session", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forged", func(t *testing.T) {
		forged, _ := auth.NewSessionManager("other", time.Hour).Issue("user-1", "")
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("optional never rejects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/optional", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestRequireRoles(t *testing.T) {
	sessions := auth.NewSessionManager("secret", time.Hour)
	token, _ := sessions.Issue("user-1", "")

	cases := []struct {
		name   string
		user   *models.User
		err    error
		status int
	}{
		{"matching role", &models.User{ID: "user-1", Role: role(models.UserRoleEntrepreneur), Status: models.UserStatusActive}, nil, http.StatusNoContent},
		{"role not set", &models.User{ID: "user-1", Status: models.UserStatusActive}, nil, http.StatusForbidden},
		{"other role", &models.User{ID: "user-1", Role: role(models.UserRoleConsultant), Status: models.UserStatusActive}, nil, http.StatusForbidden},
		{"suspended", &models.User{ID: "user-1", Role: role(models.UserRoleEntrepreneur), Status: models.UserStatusSuspended}, nil, http.StatusForbidden},
		{"unknown user", nil, repositories.ErrUserNotFound, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserLookup{}
			users.On("FindByID", mock.Anything, "user-1").Return(tc.user, tc.err).Once()
			r := newRouter(sessions, users, models.UserRoleEntrepreneur)

			req := httptest.NewRequest(http.MethodGet, "/gated", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			users.AssertExpectations(t)
		})
	}
}
