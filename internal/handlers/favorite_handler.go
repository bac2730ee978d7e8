package handlers

import (
	"net/http"

	"consultbr_backend/internal/services"
	"consultbr_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	*BaseHandler
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(base *BaseHandler, favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		BaseHandler:     base,
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup, g *Guards) {
	favorites := r.Group("/favorites")
	favorites.Use(g.Auth)
	{
		favorites.POST("", h.AddFavorite)
		favorites.DELETE("/:targetId/:targetType", h.RemoveFavorite)
	}

	r.GET("/my-favorites", g.Auth, h.ListFavorites)
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddFavoriteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	favorite, err := h.favoriteService.AddFavorite(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RemoveFavoriteRequest
	if !h.BindAndValidate_URI(c, &req) {
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListFavoritesRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	favorites, err := h.favoriteService.ListFavorites(c.Request.Context(), h.GetDB(c), userID, req.Type)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}
