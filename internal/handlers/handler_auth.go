package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/middleware"
	"github.com/nagorik/citizen-registry/internal/platform/config"
)

// authHandler handles login, session verification and logout.
type authHandler struct {
	authService    portssvc.AuthSvcFacade
	sessionService portssvc.SessionSvcFacade
	cookieSecure   bool
}

func newAuthHandler(auth portssvc.AuthSvcFacade, sessions portssvc.SessionSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		authService:    auth,
		sessionService: sessions,
		cookieSecure:   cfg.CookieSecure,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.Session, cfg)

	rg.POST("/login", middleware.RateLimit(cfg.LoginRateLimit), h.login)
	rg.GET("/verify", h.verify)

	auth := rg.Group("/auth", middleware.RequireAuthenticated())
	{
		auth.GET("/user", h.currentUser)
	}
	rg.POST("/logout", middleware.RequireAuthenticated(), h.logout)
}

// login godoc
// @Summary Log in
// @Description Authenticates a contact/password pair for the given account type and issues a device-bound session.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Visitor-ID header string true "Device fingerprint"
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	kind, err := dto.ParseLoginKind(req.AccountType)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}
	contact, channel := req.Contact()
	if contact == "" {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "either phone or email is required"})
		return
	}

	params := portssvc.LoginParams{
		Kind:      kind,
		Contact:   contact,
		Channel:   channel,
		Password:  req.Password,
		Remember:  req.Remember,
		VisitorID: middleware.VisitorFromRequest(c),
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}

	user, session, err := h.authService.Login(c.Request.Context(), params)
	if err != nil {
		logger.Warn("Login failed", slog.String("account_type", req.AccountType), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	middleware.SetSessionCookies(c, session, h.cookieSecure)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:      "Login successful",
		Data:         dto.ToUserResponse(user),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

// verify godoc
// @Summary Verify session
// @Description Reports whether the request's token pair resolves to an account. Expired access tokens are rotated via the refresh token; new cookies accompany the response.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.VerifyResponse
// @Failure 401 {object} ErrorResponse
// @Router /verify [get]
func (h *authHandler) verify(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		// The session middleware already cleared the cookies
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Session is invalid or expired"})
		return
	}
	c.JSON(http.StatusOK, dto.VerifyResponse{
		Message: "Session is valid",
		Data:    dto.ToUserResponse(user),
	})
}

// currentUser godoc
// @Summary Current identity
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/user [get]
func (h *authHandler) currentUser(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// logout godoc
// @Summary Log out
// @Description Terminally expires the current session and clears its cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, ok := middleware.CurrentSession(c)
	if ok {
		if err := h.sessionService.Invalidate(c.Request.Context(), session); err != nil {
			logger.Error("Failed to invalidate session", slog.String("error", err.Error()))
			respondError(c, err)
			return
		}
	}
	middleware.ClearSessionCookies(c, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
