package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/middleware"
)

type adminHandler struct {
	lifecycleService portssvc.LifecycleSvcFacade
}

func newAdminHandler(lifecycle portssvc.LifecycleSvcFacade) *adminHandler {
	return &adminHandler{lifecycleService: lifecycle}
}

// registerAdminRoutes sets up the admin lifecycle routes. All of them sit
// behind the admin role guard; the services re-check the actor anyway.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services.Lifecycle)

	admin := rg.Group("", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/approve-reject", h.approveReject)
		admin.POST("/postponed-reinstate", h.postponeReinstate)
		admin.POST("/delete-user", h.deleteUser)
	}
}

// approveReject godoc
// @Summary Approve or reject an account
// @Description Approves a data collector account, or rejects an account after matching the quoted contact. The two flags are mutually exclusive.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.ApproveRejectRequest true "Target and action"
// @Success 200 {object} dto.AdminActionResponse
// @Failure 400 {object} map[string]map[string]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /approve-reject [post]
func (h *adminHandler) approveReject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.CurrentUser(c)

	var req dto.ApproveRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if req.Approved == req.Rejected {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "exactly one of approved or rejected must be set"})
		return
	}

	var (
		err    error
		action string
	)
	if req.Approved {
		action = "approved"
		err = h.lifecycleService.Approve(c.Request.Context(), actor, req.UserID)
	} else {
		action = "rejected"
		err = h.lifecycleService.Reject(c.Request.Context(), actor, req.UserID, req.Contact)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account "+action, slog.Int64("target_id", req.UserID), slog.Int64("actor_id", actor.UserID))
	c.JSON(http.StatusOK, dto.AdminActionResponse{Status: "success", Message: "User " + action})
}

// postponeReinstate godoc
// @Summary Toggle postponement
// @Description Flips the postponed flag on an approved, verified, paid account. For sub-accounts the contact match runs against the parent.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.PostponeReinstateRequest true "Target"
// @Success 200 {object} dto.AdminActionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /postponed-reinstate [post]
func (h *adminHandler) postponeReinstate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.CurrentUser(c)

	var req dto.PostponeReinstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	postponed, err := h.lifecycleService.TogglePostponed(c.Request.Context(), actor, req.UserID, req.Contact, dto.TargetIdentity(req.Identity))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "User reinstated"
	if postponed {
		message = "User postponed"
	}
	logger.Info(message, slog.Int64("target_id", req.UserID), slog.Int64("actor_id", actor.UserID))
	c.JSON(http.StatusOK, dto.AdminActionResponse{Status: "success", Message: message})
}

// deleteUser godoc
// @Summary Delete an account
// @Description Hard-deletes the account after matching the quoted contact; owned sub-accounts cascade.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.DeleteUserRequest true "Target"
// @Success 200 {object} dto.AdminActionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /delete-user [post]
func (h *adminHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.CurrentUser(c)

	var req dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.lifecycleService.Delete(c.Request.Context(), actor, req.UserID, req.Contact, dto.TargetIdentity(req.Identity)); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account deleted", slog.Int64("target_id", req.UserID), slog.Int64("actor_id", actor.UserID))
	c.JSON(http.StatusOK, dto.AdminActionResponse{Status: "success", Message: "User deleted"})
}
