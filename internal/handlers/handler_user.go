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

type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(users portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: users}
}

// registerUserRoutes sets up self-service account routes.
func registerUserRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newUserHandler(services.User)

	users := rg.Group("/users")
	{
		users.GET("", middleware.RequireRole(domain.RoleDataCollector), h.listUsers)
		users.PUT("/me", middleware.RequireAuthenticated(), h.updateMe)
		users.PUT("/me/password", middleware.RequireAuthenticated(), h.changePassword)
	}
}

// listUsers godoc
// @Summary List registered accounts
// @Description Lists the top-level accounts the calling data collector registered.
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, _ := middleware.CurrentUser(c)

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsersAddedBy(c.Request.Context(), caller.UserID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list registered accounts", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	resp := dto.ListUsersResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, dto.ToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updateMe godoc
// @Summary Update own names
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateUserRequest true "New names"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/me [put]
func (h *userHandler) updateMe(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.userService.UpdateNames(c.Request.Context(), caller, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(caller))
}

// changePassword godoc
// @Summary Change own password
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /users/me/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), caller, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
