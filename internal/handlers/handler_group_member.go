package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/dto"
	"github.com/splitflow/splitflow-api/internal/middleware"
)

// groupMemberHandler handles HTTP requests related to group memberships.
type groupMemberHandler struct {
	memberService portssvc.GroupMemberSvc
}

func newGroupMemberHandler(ms portssvc.GroupMemberSvc) *groupMemberHandler {
	return &groupMemberHandler{memberService: ms}
}

// registerGroupMemberRoutes registers routes related to group memberships.
func registerGroupMemberRoutes(rg *gin.RouterGroup, memberService portssvc.GroupMemberSvc) {
	h := newGroupMemberHandler(memberService)

	members := rg.Group("/group-members")
	{
		members.POST("", h.addMember)
		members.GET("/group/:group_id", h.listGroupMembers)
		members.GET("/group/:group_id/admins", h.listGroupAdmins)
		members.GET("/group/:group_id/user/:user_id", h.getMemberByGroupAndUser)
		members.GET("/group/:group_id/user/:user_id/check", h.checkMembership)
		members.DELETE("/group/:group_id/user/:user_id", h.removeMemberByGroupAndUser)
		members.GET("/user/:user_id/groups", h.listUserGroups)
		members.GET("/:member_id", h.getMemberByID)
		members.PUT("/:member_id/role", h.updateMemberRole)
		members.DELETE("/:member_id", h.removeMember)
	}
}

// addMember godoc
// @Summary Add a user to a group
// @Tags group-members
// @Accept json
// @Produce json
// @Param member body dto.AddMemberRequest true "Membership details"
// @Success 201 {object} dto.GroupMemberResponse
// @Failure 400 {object} map[string]string "Invalid input or already a member"
// @Router /group-members [post]
func (h *groupMemberHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, err := h.memberService.AddMember(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add member", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupMemberResponse(member))
}

// listGroupMembers godoc
// @Summary List a group's members
// @Tags group-members
// @Produce json
// @Param group_id path string true "Group ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.GroupMemberResponse
// @Router /group-members/group/{group_id} [get]
func (h *groupMemberHandler) listGroupMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	members, err := h.memberService.ListGroupMembers(c.Request.Context(), groupID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list group members", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListGroupMemberResponse(members))
}

// listGroupAdmins godoc
// @Summary List a group's admins
// @Tags group-members
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} dto.GroupMemberResponse
// @Router /group-members/group/{group_id}/admins [get]
func (h *groupMemberHandler) listGroupAdmins(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	admins, err := h.memberService.ListGroupAdmins(c.Request.Context(), groupID)
	if err != nil {
		logger.Error("Failed to list group admins", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list admins"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListGroupMemberResponse(admins))
}

// getMemberByGroupAndUser godoc
// @Summary Get a membership by group and user
// @Tags group-members
// @Produce json
// @Param group_id path string true "Group ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.GroupMemberResponse
// @Failure 404 {object} map[string]string "Membership not found"
// @Router /group-members/group/{group_id}/user/{user_id} [get]
func (h *groupMemberHandler) getMemberByGroupAndUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")
	userID := c.Param("user_id")

	member, err := h.memberService.GetMemberByGroupAndUser(c.Request.Context(), groupID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		} else {
			logger.Error("Failed to get membership", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve membership"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupMemberResponse(member))
}

// checkMembership godoc
// @Summary Check whether a user belongs to a group
// @Tags group-members
// @Produce json
// @Param group_id path string true "Group ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.MembershipCheckResponse
// @Router /group-members/group/{group_id}/user/{user_id}/check [get]
func (h *groupMemberHandler) checkMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")
	userID := c.Param("user_id")

	isMember, err := h.memberService.IsMember(c.Request.Context(), groupID, userID)
	if err != nil {
		logger.Error("Failed to check membership", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}

	c.JSON(http.StatusOK, dto.MembershipCheckResponse{
		GroupID:  groupID,
		UserID:   userID,
		IsMember: isMember,
	})
}

// removeMemberByGroupAndUser godoc
// @Summary Remove a user from a group
// @Tags group-members
// @Param group_id path string true "Group ID"
// @Param user_id path string true "User ID"
// @Success 204 "Removed"
// @Failure 404 {object} map[string]string "Membership not found"
// @Router /group-members/group/{group_id}/user/{user_id} [delete]
func (h *groupMemberHandler) removeMemberByGroupAndUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")
	userID := c.Param("user_id")

	if err := h.memberService.RemoveMemberByGroupAndUser(c.Request.Context(), groupID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		} else {
			logger.Error("Failed to remove member", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listUserGroups godoc
// @Summary List a user's group memberships
// @Tags group-members
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.GroupMemberResponse
// @Router /group-members/user/{user_id}/groups [get]
func (h *groupMemberHandler) listUserGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("user_id")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	memberships, err := h.memberService.ListUserGroups(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list user groups", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list memberships"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListGroupMemberResponse(memberships))
}

// getMemberByID godoc
// @Summary Get a membership by ID
// @Tags group-members
// @Produce json
// @Param member_id path string true "Member ID"
// @Success 200 {object} dto.GroupMemberResponse
// @Failure 404 {object} map[string]string "Membership not found"
// @Router /group-members/{member_id} [get]
func (h *groupMemberHandler) getMemberByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")

	member, err := h.memberService.GetMemberByID(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		} else {
			logger.Error("Failed to get membership", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve membership"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupMemberResponse(member))
}

// updateMemberRole godoc
// @Summary Change a member's role
// @Tags group-members
// @Accept json
// @Produce json
// @Param member_id path string true "Member ID"
// @Param role body dto.UpdateMemberRoleRequest true "New role"
// @Success 200 {object} dto.GroupMemberResponse
// @Failure 400 {object} map[string]string "Invalid role"
// @Failure 404 {object} map[string]string "Membership not found"
// @Router /group-members/{member_id}/role [put]
func (h *groupMemberHandler) updateMemberRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, err := h.memberService.UpdateMemberRole(c.Request.Context(), memberID, domain.MemberRole(req.Role))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		} else {
			logger.Error("Failed to update member role", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupMemberResponse(member))
}

// removeMember godoc
// @Summary Remove a member by ID
// @Tags group-members
// @Param member_id path string true "Member ID"
// @Success 204 "Removed"
// @Failure 404 {object} map[string]string "Membership not found"
// @Router /group-members/{member_id} [delete]
func (h *groupMemberHandler) removeMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")

	if err := h.memberService.RemoveMember(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		} else {
			logger.Error("Failed to remove member", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
