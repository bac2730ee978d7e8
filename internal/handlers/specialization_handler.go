package handlers

import (
	"net/http"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services"
	"consultbr_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SpecializationHandler struct {
	*BaseHandler
	specializationService services.SpecializationService
}

func NewSpecializationHandler(base *BaseHandler, specializationService services.SpecializationService) *SpecializationHandler {
	return &SpecializationHandler{
		BaseHandler:           base,
		specializationService: specializationService,
	}
}

func (h *SpecializationHandler) RegisterRoutes(r *gin.RouterGroup, g *Guards) {
	r.GET("/specializations", h.ListActive)
	r.POST("/admin/specializations", g.Auth, g.Roles(models.UserRoleAdmin), h.Create)
}

func (h *SpecializationHandler) ListActive(c *gin.Context) {
	specs, err := h.specializationService.ListActive(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, specs)
}

func (h *SpecializationHandler) Create(c *gin.Context) {
	var req dto.CreateSpecializationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	spec, err := h.specializationService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, spec)
}
