package handlers

import (
	"net/http"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services"
	"consultbr_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup, g *Guards) {
	r.GET("/portfolio/:consultantId", h.ListPublic)
	r.POST("/portfolio", g.Auth, g.Roles(models.UserRoleConsultant), h.CreateItem)
}

func (h *PortfolioHandler) CreateItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePortfolioItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.portfolioService.CreateItem(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *PortfolioHandler) ListPublic(c *gin.Context) {
	items, err := h.portfolioService.ListPublic(c.Request.Context(), h.GetDB(c), c.Param("consultantId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
