package handlers

import (
	"net/http"

	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services"
	"consultbr_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	*BaseHandler
	proposalService services.ProposalService
}

func NewProposalHandler(base *BaseHandler, proposalService services.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		BaseHandler:     base,
		proposalService: proposalService,
	}
}

func (h *ProposalHandler) RegisterRoutes(r *gin.RouterGroup, g *Guards) {
	// Public routes
	r.GET("/proposals/project/:projectId", h.ListByProject)

	proposals := r.Group("/proposals")
	proposals.Use(g.Auth)
	{
		proposals.POST("", h.CreateProposal)
		proposals.GET("/:id", h.GetProposal)
		proposals.GET("/:id/chain", h.GetChain)
		proposals.PUT("/:id", h.UpdateProposal)
	}

	r.GET("/my-proposals/:type", g.Auth, h.ListMine)
}

// CreateProposal - новое предложение консультанта или встречное при parentId
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

func (h *ProposalHandler) GetChain(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	chain, err := h.proposalService.GetChain(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, chain)
}

func (h *ProposalHandler) ListByProject(c *gin.Context) {
	proposals, err := h.proposalService.ListByProject(c.Request.Context(), h.GetDB(c), c.Param("projectId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

func (h *ProposalHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProposalBoxRequest
	if !h.BindAndValidate_URI(c, &req) {
		return
	}

	proposals, err := h.proposalService.ListMine(c.Request.Context(), h.GetDB(c), userID, repositories.ProposalBox(req.Type))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProposalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.UpdateProposal(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}
