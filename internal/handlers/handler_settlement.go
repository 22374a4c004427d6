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

// settlementHandler handles HTTP requests related to settlements.
type settlementHandler struct {
	settlementService portssvc.SettlementSvc
}

func newSettlementHandler(ss portssvc.SettlementSvc) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers routes related to settlements.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvc) {
	h := newSettlementHandler(settlementService)

	settlements := rg.Group("/settlements")
	{
		settlements.POST("", h.createSettlement)
		settlements.GET("/pending", h.listPendingSettlements)
		settlements.GET("/completed", h.listCompletedSettlements)
		settlements.GET("/between", h.listSettlementsBetweenUsers)
		settlements.GET("/group/:group_id", h.listSettlementsByGroup)
		settlements.GET("/user/:user_id", h.listSettlementsByUser)
		settlements.GET("/user/:user_id/paid", h.listSettlementsFromUser)
		settlements.GET("/user/:user_id/received", h.listSettlementsToUser)
		settlements.GET("/:settlement_id", h.getSettlementByID)
		settlements.PUT("/:settlement_id", h.updateSettlement)
		settlements.PUT("/:settlement_id/complete", h.markSettlementCompleted)
		settlements.PUT("/:settlement_id/reopen", h.markSettlementPending)
		settlements.DELETE("/:settlement_id", h.deleteSettlement)
	}
}

// createSettlement godoc
// @Summary Record a repayment
// @Description New settlements start pending until marked completed.
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlement body dto.CreateSettlementRequest true "Settlement details"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /settlements [post]
func (h *settlementHandler) createSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.CreateSettlement(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create settlement"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

// listPendingSettlements godoc
// @Summary List pending settlements
// @Description Settlements without a completion stamp. Optional group filter.
// @Tags settlements
// @Produce json
// @Param group_id query string false "Group ID filter"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.SettlementResponse
// @Router /settlements/pending [get]
func (h *settlementHandler) listPendingSettlements(c *gin.Context) {
	h.listByCompletion(c, false)
}

// listCompletedSettlements godoc
// @Summary List completed settlements
// @Description Settlements with a completion stamp. Optional group filter.
// @Tags settlements
// @Produce json
// @Param group_id query string false "Group ID filter"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.SettlementResponse
// @Router /settlements/completed [get]
func (h *settlementHandler) listCompletedSettlements(c *gin.Context) {
	h.listByCompletion(c, true)
}

func (h *settlementHandler) listByCompletion(c *gin.Context, completed bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Query("group_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	list := h.settlementService.ListPendingSettlements
	if completed {
		list = h.settlementService.ListCompletedSettlements
	}

	settlements, err := list(c.Request.Context(), groupID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list settlements by completion", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettlementResponse(settlements))
}

// listSettlementsBetweenUsers godoc
// @Summary List settlements between two users
// @Description Either direction counts. Optional group filter.
// @Tags settlements
// @Produce json
// @Param user1 query string true "First user ID"
// @Param user2 query string true "Second user ID"
// @Param group_id query string false "Group ID filter"
// @Success 200 {array} dto.SettlementResponse
// @Router /settlements/between [get]
func (h *settlementHandler) listSettlementsBetweenUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user1 := c.Query("user1")
	user2 := c.Query("user2")
	groupID := c.Query("group_id")
	if user1 == "" || user2 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user1 and user2 are required"})
		return
	}

	settlements, err := h.settlementService.ListSettlementsBetweenUsers(c.Request.Context(), user1, user2, groupID)
	if err != nil {
		logger.Error("Failed to list settlements between users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettlementResponse(settlements))
}

// listSettlementsByGroup godoc
// @Summary List a group's settlements
// @Tags settlements
// @Produce json
// @Param group_id path string true "Group ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.SettlementResponse
// @Router /settlements/group/{group_id} [get]
func (h *settlementHandler) listSettlementsByGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	settlements, err := h.settlementService.ListSettlementsByGroup(c.Request.Context(), groupID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list settlements for group", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettlementResponse(settlements))
}

// listSettlementsByUser godoc
// @Summary List settlements involving a user
// @Description The user may be payer or payee.
// @Tags settlements
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.SettlementResponse
// @Router /settlements/user/{user_id} [get]
func (h *settlementHandler) listSettlementsByUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("user_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	settlements, err := h.settlementService.ListSettlementsByUser(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list settlements for user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettlementResponse(settlements))
}

// listSettlementsFromUser godoc
// @Summary List settlements a user paid
// @Tags settlements
// @Produce json
// @Param user_id path string true "Payer user ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.SettlementResponse
// @Router /settlements/user/{user_id}/paid [get]
func (h *settlementHandler) listSettlementsFromUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("user_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	settlements, err := h.settlementService.ListSettlementsFromUser(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list settlements from user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettlementResponse(settlements))
}

// listSettlementsToUser godoc
// @Summary List settlements a user received
// @Tags settlements
// @Produce json
// @Param user_id path string true "Payee user ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.SettlementResponse
// @Router /settlements/user/{user_id}/received [get]
func (h *settlementHandler) listSettlementsToUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("user_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	settlements, err := h.settlementService.ListSettlementsToUser(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list settlements to user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettlementResponse(settlements))
}

// getSettlementByID godoc
// @Summary Get a settlement by ID
// @Tags settlements
// @Produce json
// @Param settlement_id path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} map[string]string "Settlement not found"
// @Router /settlements/{settlement_id} [get]
func (h *settlementHandler) getSettlementByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlement_id")

	settlement, err := h.settlementService.GetSettlementByID(c.Request.Context(), settlementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		} else {
			logger.Error("Failed to get settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settlement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// updateSettlement godoc
// @Summary Update a settlement
// @Description Applies a partial update; only the provided fields change.
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlement_id path string true "Settlement ID"
// @Param settlement body dto.UpdateSettlementRequest true "Fields to update"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Settlement not found"
// @Router /settlements/{settlement_id} [put]
func (h *settlementHandler) updateSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlement_id")

	var req dto.UpdateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.UpdateSettlement(c.Request.Context(), settlementID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settlement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// markSettlementCompleted godoc
// @Summary Mark a settlement completed
// @Tags settlements
// @Produce json
// @Param settlement_id path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} map[string]string "Settlement not found"
// @Router /settlements/{settlement_id}/complete [put]
func (h *settlementHandler) markSettlementCompleted(c *gin.Context) {
	h.toggleCompletion(c, true)
}

// markSettlementPending godoc
// @Summary Reopen a completed settlement
// @Tags settlements
// @Produce json
// @Param settlement_id path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} map[string]string "Settlement not found"
// @Router /settlements/{settlement_id}/reopen [put]
func (h *settlementHandler) markSettlementPending(c *gin.Context) {
	h.toggleCompletion(c, false)
}

func (h *settlementHandler) toggleCompletion(c *gin.Context, completed bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlement_id")

	toggle := h.settlementService.MarkSettlementPending
	if completed {
		toggle = h.settlementService.MarkSettlementCompleted
	}

	settlement, err := toggle(c.Request.Context(), settlementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		} else {
			logger.Error("Failed to toggle settlement completion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settlement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// deleteSettlement godoc
// @Summary Delete a settlement
// @Tags settlements
// @Param settlement_id path string true "Settlement ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Settlement not found"
// @Router /settlements/{settlement_id} [delete]
func (h *settlementHandler) deleteSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlement_id")

	if err := h.settlementService.DeleteSettlement(c.Request.Context(), settlementID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		} else {
			logger.Error("Failed to delete settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete settlement"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
