package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/dto"
	"github.com/splitflow/splitflow-api/internal/middleware"
)

// balanceHandler handles HTTP requests for the balance ledger.
type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

func newBalanceHandler(bs portssvc.BalanceSvc) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers routes related to balances.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.POST("", h.createBalance)
		balances.GET("/between", h.getBalanceBetweenUsers)
		balances.GET("/:balance_id", h.getBalanceByID)
		balances.GET("/group/:group_id/balances", h.listGroupBalances)
		balances.GET("/group/:group_id/user/:user_id/balances", h.listUserBalancesInGroup)
		balances.GET("/group/:group_id/user/:user_id/total", h.getUserNetPosition)
		balances.GET("/group/:group_id/summary", h.getGroupSummary)
		balances.GET("/user/:user_id/balances", h.listAllUserBalances)
		balances.PUT("/:balance_id/amount", h.updateBalanceAmount)
		balances.DELETE("/:balance_id/settle", h.settleBalance)
	}
}

// createBalance godoc
// @Summary Create or merge a debt
// @Description Records that a debtor owes a creditor an amount within a group. If an edge already exists for the same ordered pair, the amount is merged into it.
// @Tags balances
// @Accept json
// @Produce json
// @Param balance body dto.CreateBalanceRequest true "Debt details"
// @Success 201 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to record debt"
// @Router /balances [post]
func (h *balanceHandler) createBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	balance, err := h.balanceService.CreateOrMergeDebt(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating balance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record debt"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBalanceResponse(balance))
}

// getBalanceBetweenUsers godoc
// @Summary Get the balance between two users
// @Description Retrieves the edge for the exact ordered (debtor, creditor) pair in a group. The reverse direction is a distinct edge.
// @Tags balances
// @Produce json
// @Param group_id query string true "Group ID"
// @Param user_from query string true "Debtor user ID"
// @Param user_to query string true "Creditor user ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Balance not found"
// @Router /balances/between [get]
func (h *balanceHandler) getBalanceBetweenUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Query("group_id")
	userFrom := c.Query("user_from")
	userTo := c.Query("user_to")
	if groupID == "" || userFrom == "" || userTo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_id, user_from and user_to are required"})
		return
	}

	balance, err := h.balanceService.GetBalanceBetweenUsers(c.Request.Context(), groupID, userFrom, userTo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Balance not found"})
		} else {
			logger.Error("Failed to get balance between users", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// getBalanceByID godoc
// @Summary Get a balance by ID
// @Tags balances
// @Produce json
// @Param balance_id path string true "Balance ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Balance not found"
// @Router /balances/{balance_id} [get]
func (h *balanceHandler) getBalanceByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balanceID := c.Param("balance_id")

	balance, err := h.balanceService.GetBalanceByID(c.Request.Context(), balanceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Balance not found"})
		} else {
			logger.Error("Failed to get balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// listGroupBalances godoc
// @Summary List a group's balances
// @Description Retrieves a page of the group's debt edges, most recently updated first. Presents an empty list when the store is unavailable.
// @Tags balances
// @Produce json
// @Param group_id path string true "Group ID"
// @Param limit query int false "Page size" default(50) minimum(1) maximum(100)
// @Param offset query int false "Page offset" default(0) minimum(0)
// @Success 200 {array} dto.BalanceResponse
// @Router /balances/group/{group_id}/balances [get]
func (h *balanceHandler) listGroupBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	balances, err := h.balanceService.ListGroupBalances(c.Request.Context(), groupID, params.Limit, params.Offset)
	if err != nil {
		// Fail-soft read: log the cause, present an empty page.
		logger.Error("Failed to list group balances", slog.String("error", err.Error()), slog.String("group_id", groupID))
		c.JSON(http.StatusOK, []dto.BalanceResponse{})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

// listUserBalancesInGroup godoc
// @Summary List a user's balances within a group
// @Description Retrieves every edge involving the user in a group, both as debtor and creditor. Presents an empty list when the store is unavailable.
// @Tags balances
// @Produce json
// @Param group_id path string true "Group ID"
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.BalanceResponse
// @Router /balances/group/{group_id}/user/{user_id}/balances [get]
func (h *balanceHandler) listUserBalancesInGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")
	userID := c.Param("user_id")

	balances, err := h.balanceService.ListUserBalancesInGroup(c.Request.Context(), groupID, userID)
	if err != nil {
		logger.Error("Failed to list user balances in group", slog.String("error", err.Error()),
			slog.String("group_id", groupID), slog.String("user_id", userID))
		c.JSON(http.StatusOK, []dto.BalanceResponse{})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

// getUserNetPosition godoc
// @Summary Get a user's net position in a group
// @Description Folds the user's edges into a signed net: credits count positive, debts negative. Presents a settled zero when the store is unavailable.
// @Tags balances
// @Produce json
// @Param group_id path string true "Group ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.NetPositionResponse
// @Router /balances/group/{group_id}/user/{user_id}/total [get]
func (h *balanceHandler) getUserNetPosition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")
	userID := c.Param("user_id")

	position, err := h.balanceService.GetUserNetPosition(c.Request.Context(), groupID, userID)
	if err != nil {
		logger.Error("Failed to compute net position", slog.String("error", err.Error()),
			slog.String("group_id", groupID), slog.String("user_id", userID))
		c.JSON(http.StatusOK, dto.NetPositionResponse{
			GroupID:    groupID,
			UserID:     userID,
			NetBalance: decimal.Zero,
			Status:     domain.StatusSettled,
		})
		return
	}

	c.JSON(http.StatusOK, dto.ToNetPositionResponse(position))
}

// getGroupSummary godoc
// @Summary Summarize a group's balances
// @Description Aggregates every edge of a group into per-user nets plus the raw edges. Presents an empty summary when the store is unavailable.
// @Tags balances
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} dto.GroupBalanceSummaryResponse
// @Router /balances/group/{group_id}/summary [get]
func (h *balanceHandler) getGroupSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	summary, err := h.balanceService.GetGroupSummary(c.Request.Context(), groupID)
	if err != nil {
		logger.Error("Failed to summarize group balances", slog.String("error", err.Error()), slog.String("group_id", groupID))
		c.JSON(http.StatusOK, dto.GroupBalanceSummaryResponse{
			GroupID:         groupID,
			TotalBalances:   0,
			UserNetBalances: map[string]decimal.Decimal{},
			RawBalances:     []dto.BalanceResponse{},
		})
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupBalanceSummaryResponse(summary))
}

// listAllUserBalances godoc
// @Summary List a user's balances across all groups
// @Description Retrieves a page of the user's edges across every group, ordered by recency over the whole set. Presents an empty list when the store is unavailable.
// @Tags balances
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Page size" default(50) minimum(1) maximum(100)
// @Param offset query int false "Page offset" default(0) minimum(0)
// @Success 200 {array} dto.BalanceResponse
// @Router /balances/user/{user_id}/balances [get]
func (h *balanceHandler) listAllUserBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("user_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	balances, err := h.balanceService.ListAllUserBalances(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list all user balances", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusOK, []dto.BalanceResponse{})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

// updateBalanceAmount godoc
// @Summary Amend a balance's amount
// @Description Replaces the stored amount outright. This is an administrative overwrite, not a merge.
// @Tags balances
// @Accept json
// @Produce json
// @Param balance_id path string true "Balance ID"
// @Param amount body dto.UpdateBalanceAmountRequest true "New amount"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Balance not found"
// @Router /balances/{balance_id}/amount [put]
func (h *balanceHandler) updateBalanceAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balanceID := c.Param("balance_id")

	var req dto.UpdateBalanceAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBalanceAmount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	balance, err := h.balanceService.UpdateBalanceAmount(c.Request.Context(), balanceID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Balance not found"})
		default:
			logger.Error("Failed to update balance amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// settleBalance godoc
// @Summary Settle a balance
// @Description Removes the edge entirely. Settling an already-settled edge reports not found.
// @Tags balances
// @Param balance_id path string true "Balance ID"
// @Success 204 "Settled"
// @Failure 404 {object} map[string]string "Balance not found"
// @Router /balances/{balance_id}/settle [delete]
func (h *balanceHandler) settleBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balanceID := c.Param("balance_id")

	if err := h.balanceService.SettleBalance(c.Request.Context(), balanceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Balance not found"})
		} else {
			logger.Error("Failed to settle balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle balance"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
