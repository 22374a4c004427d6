package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/dto"
	"github.com/splitflow/splitflow-api/internal/middleware"
)

// expenseShareHandler handles HTTP requests related to expense shares.
type expenseShareHandler struct {
	shareService portssvc.ExpenseShareSvc
}

func newExpenseShareHandler(ss portssvc.ExpenseShareSvc) *expenseShareHandler {
	return &expenseShareHandler{shareService: ss}
}

// registerExpenseShareRoutes registers routes related to expense shares.
func registerExpenseShareRoutes(rg *gin.RouterGroup, shareService portssvc.ExpenseShareSvc) {
	h := newExpenseShareHandler(shareService)

	shares := rg.Group("/expense-shares")
	{
		shares.POST("", h.createShare)
		shares.GET("/expense/:expense_id", h.listSharesByExpense)
		shares.DELETE("/expense/:expense_id", h.deleteSharesByExpense)
		shares.GET("/user/:user_id", h.listSharesByUser)
		shares.GET("/user/:user_id/unsettled", h.listUnsettledSharesByUser)
		shares.GET("/:share_id", h.getShareByID)
		shares.PUT("/:share_id", h.updateShare)
		shares.PUT("/:share_id/settle", h.settleShare)
		shares.PUT("/:share_id/unsettle", h.unsettleShare)
		shares.DELETE("/:share_id", h.deleteShare)
	}
}

// createShare godoc
// @Summary Record a participant's share of an expense
// @Tags expense-shares
// @Accept json
// @Produce json
// @Param share body dto.CreateExpenseShareRequest true "Share details"
// @Success 201 {object} dto.ExpenseShareResponse
// @Failure 400 {object} map[string]string "Invalid input or duplicate share"
// @Router /expense-shares [post]
func (h *expenseShareHandler) createShare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createShare", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	share, err := h.shareService.CreateShare(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create expense share", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseShareResponse(share))
}

// listSharesByExpense godoc
// @Summary List every share of an expense
// @Tags expense-shares
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Success 200 {array} dto.ExpenseShareResponse
// @Router /expense-shares/expense/{expense_id} [get]
func (h *expenseShareHandler) listSharesByExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expense_id")

	shares, err := h.shareService.ListSharesByExpense(c.Request.Context(), expenseID)
	if err != nil {
		logger.Error("Failed to list shares for expense", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shares"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpenseShareResponse(shares))
}

// deleteSharesByExpense godoc
// @Summary Delete every share of an expense
// @Tags expense-shares
// @Param expense_id path string true "Expense ID"
// @Success 204 "Deleted"
// @Router /expense-shares/expense/{expense_id} [delete]
func (h *expenseShareHandler) deleteSharesByExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expense_id")

	if err := h.shareService.DeleteSharesByExpense(c.Request.Context(), expenseID); err != nil {
		logger.Error("Failed to delete shares for expense", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shares"})
		return
	}

	c.Status(http.StatusNoContent)
}

// listSharesByUser godoc
// @Summary List a user's shares
// @Tags expense-shares
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ExpenseShareResponse
// @Router /expense-shares/user/{user_id} [get]
func (h *expenseShareHandler) listSharesByUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("user_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	shares, err := h.shareService.ListSharesByUser(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list shares for user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shares"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpenseShareResponse(shares))
}

// listUnsettledSharesByUser godoc
// @Summary List a user's outstanding shares
// @Tags expense-shares
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ExpenseShareResponse
// @Router /expense-shares/user/{user_id}/unsettled [get]
func (h *expenseShareHandler) listUnsettledSharesByUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("user_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	shares, err := h.shareService.ListUnsettledSharesByUser(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list unsettled shares for user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shares"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpenseShareResponse(shares))
}

// getShareByID godoc
// @Summary Get a share by ID
// @Tags expense-shares
// @Produce json
// @Param share_id path string true "Share ID"
// @Success 200 {object} dto.ExpenseShareResponse
// @Failure 404 {object} map[string]string "Share not found"
// @Router /expense-shares/{share_id} [get]
func (h *expenseShareHandler) getShareByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shareID := c.Param("share_id")

	share, err := h.shareService.GetShareByID(c.Request.Context(), shareID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
		} else {
			logger.Error("Failed to get expense share", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve share"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseShareResponse(share))
}

// updateShare godoc
// @Summary Update a share
// @Description Applies a partial update; only the provided fields change.
// @Tags expense-shares
// @Accept json
// @Produce json
// @Param share_id path string true "Share ID"
// @Param share body dto.UpdateExpenseShareRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseShareResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Share not found"
// @Router /expense-shares/{share_id} [put]
func (h *expenseShareHandler) updateShare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shareID := c.Param("share_id")

	var req dto.UpdateExpenseShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	share, err := h.shareService.UpdateShare(c.Request.Context(), shareID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update expense share", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update share"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseShareResponse(share))
}

// settleShare godoc
// @Summary Mark a share as paid
// @Tags expense-shares
// @Produce json
// @Param share_id path string true "Share ID"
// @Success 200 {object} dto.ExpenseShareResponse
// @Failure 404 {object} map[string]string "Share not found"
// @Router /expense-shares/{share_id}/settle [put]
func (h *expenseShareHandler) settleShare(c *gin.Context) {
	h.toggleSettled(c, true)
}

// unsettleShare godoc
// @Summary Reopen a share that was marked paid
// @Tags expense-shares
// @Produce json
// @Param share_id path string true "Share ID"
// @Success 200 {object} dto.ExpenseShareResponse
// @Failure 404 {object} map[string]string "Share not found"
// @Router /expense-shares/{share_id}/unsettle [put]
func (h *expenseShareHandler) unsettleShare(c *gin.Context) {
	h.toggleSettled(c, false)
}

func (h *expenseShareHandler) toggleSettled(c *gin.Context, settled bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shareID := c.Param("share_id")

	toggle := h.shareService.UnsettleShare
	if settled {
		toggle = h.shareService.SettleShare
	}

	share, err := toggle(c.Request.Context(), shareID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
		} else {
			logger.Error("Failed to toggle share settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update share"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseShareResponse(share))
}

// deleteShare godoc
// @Summary Delete a share
// @Tags expense-shares
// @Param share_id path string true "Share ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Share not found"
// @Router /expense-shares/{share_id} [delete]
func (h *expenseShareHandler) deleteShare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shareID := c.Param("share_id")

	if err := h.shareService.DeleteShare(c.Request.Context(), shareID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
		} else {
			logger.Error("Failed to delete expense share", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete share"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
