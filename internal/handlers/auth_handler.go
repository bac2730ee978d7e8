package handlers

import (
	"net/http"
	"net/url"
	"time"

	"consultbr_backend/internal/auth"
	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/metrics"
	"consultbr_backend/internal/services"
	"consultbr_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthConfig - параметры входа через внешнего провайдера
type AuthConfig struct {
	LoginURL     string
	LogoutURL    string
	PublicURL    string
	CookieName   string
	CookieSecure bool
}

// IdentityVerifier проверяет токен провайдера в callback
type IdentityVerifier interface {
	Verify(token string) (*auth.IdentityClaims, error)
}

// SessionIssuer выпускает токен сессии
type SessionIssuer interface {
	Issue(userID, email string) (string, error)
	TTL() time.Duration
}

type AuthHandler struct {
	*BaseHandler
	userService services.UserService
	identity    IdentityVerifier
	sessions    SessionIssuer
	cfg         AuthConfig
}

func NewAuthHandler(base *BaseHandler, userService services.UserService, identity IdentityVerifier, sessions SessionIssuer, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		userService: userService,
		identity:    identity,
		sessions:    sessions,
		cfg:         cfg,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/login", h.Login)
	r.GET("/callback", h.Callback)
	r.GET("/logout", h.Logout)
}

// Login отправляет пользователя к провайдеру с redirect_uri на /api/callback
func (h *AuthHandler) Login(c *gin.Context) {
	if h.cfg.LoginURL == "" {
		h.HandleServiceError(c, apperrors.New(apperrors.CodeExternalServiceError, "auth", "Identity provider is not configured", http.StatusServiceUnavailable))
		return
	}

	target, err := url.Parse(h.cfg.LoginURL)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	q := target.Query()
	q.Set("redirect_uri", callbackURL(c))
	target.RawQuery = q.Encode()

	c.Redirect(http.StatusFound, target.String())
}

func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.Query("token")
	if token == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Missing identity token"))
		return
	}

	identity, err := h.identity.Verify(token)
	if err != nil {
		logger.CtxWarn(ctx, "identity token rejected", "error", err)
		metrics.Logins.WithLabelValues("rejected").Inc()
		h.HandleServiceError(c, apperrors.ErrInvalidToken)
		return
	}

	user, err := h.userService.SignIn(ctx, h.GetDB(c), identity)
	if err != nil {
		metrics.Logins.WithLabelValues("failed").Inc()
		h.HandleServiceError(c, err)
		return
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	session, err := h.sessions.Issue(user.ID, email)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	h.setSessionCookie(c, session, int(h.sessions.TTL().Seconds()))
	c.Redirect(http.StatusFound, h.cfg.PublicURL)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)

	target := h.cfg.LogoutURL
	if target == "" {
		target = h.cfg.PublicURL
	}
	c.Redirect(http.StatusFound, target)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, value, maxAge, "/", "", h.cfg.CookieSecure, true)
}

func callbackURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + c.Request.Host + "/api/callback"
}
