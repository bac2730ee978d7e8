package handlers

import (
	"net/http"

	"consultbr_backend/internal/services"
	"consultbr_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup, g *Guards) {
	profiles := r.Group("/profiles")
	profiles.Use(g.Auth)
	{
		profiles.POST("/entrepreneur", h.CreateEntrepreneurProfile)
		profiles.PUT("/entrepreneur", h.UpdateEntrepreneurProfile)
		profiles.POST("/consultant", h.CreateConsultantProfile)
		profiles.PUT("/consultant", h.UpdateConsultantProfile)
	}

	// Public routes
	consultants := r.Group("/consultants")
	{
		consultants.GET("", h.SearchConsultants)
		consultants.GET("/:userId", h.GetConsultant)
	}
}

// --- Создание профиля (роль выставляется в той же транзакции) ---

func (h *ProfileHandler) CreateEntrepreneurProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEntrepreneurProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateEntrepreneurProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) CreateConsultantProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateConsultantProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateConsultantProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// --- Обновление ---

func (h *ProfileHandler) UpdateEntrepreneurProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEntrepreneurProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateEntrepreneurProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateConsultantProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateConsultantProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateConsultantProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// --- Консультанты (публично) ---

func (h *ProfileHandler) SearchConsultants(c *gin.Context) {
	var req dto.ConsultantSearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	consultants, err := h.profileService.SearchConsultants(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, consultants)
}

func (h *ProfileHandler) GetConsultant(c *gin.Context) {
	consultant, err := h.profileService.GetConsultant(c.Request.Context(), h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, consultant)
}
