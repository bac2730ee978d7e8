package handlers

import (
	"net/http"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services"
	"consultbr_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	*BaseHandler
	transactionService services.TransactionService
}

func NewTransactionHandler(base *BaseHandler, transactionService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		BaseHandler:        base,
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) RegisterRoutes(r *gin.RouterGroup, g *Guards) {
	transactions := r.Group("/transactions")
	transactions.Use(g.Auth)
	{
		transactions.GET("", h.ListMine)
		transactions.GET("/:id", h.GetTransaction)
		transactions.POST("", g.Roles(models.UserRoleEntrepreneur), h.CreatePayment)
	}

	r.PUT("/admin/transactions/:id/status", g.Auth, g.Roles(models.UserRoleAdmin), h.UpdateStatus)
}

func (h *TransactionHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	txns, err := h.transactionService.ListMine(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txns)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) CreatePayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	txn, err := h.transactionService.CreatePayment(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTransactionStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	txn, err := h.transactionService.UpdateStatus(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}
