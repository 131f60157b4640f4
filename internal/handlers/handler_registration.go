package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/middleware"
	"github.com/nagorik/citizen-registry/internal/platform/config"
)

// identityDataCollector is the query value announcing that a data collector
// is registering on someone's behalf.
const identityDataCollector = "DataCollector"

type registrationHandler struct {
	registrationService portssvc.RegistrationSvcFacade
	verificationService portssvc.VerificationSvcFacade
}

func newRegistrationHandler(reg portssvc.RegistrationSvcFacade, verification portssvc.VerificationSvcFacade) *registrationHandler {
	return &registrationHandler{registrationService: reg, verificationService: verification}
}

// registerRegistrationRoutes sets up account creation and OTP routes.
func registerRegistrationRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newRegistrationHandler(services.Registration, services.Verification)

	rg.POST("/register", h.register)
	rg.POST("/send-otp", middleware.RateLimit(cfg.LoginRateLimit), h.sendOTP)
	rg.POST("/verify-otp", h.verifyOTP)
}

// register godoc
// @Summary Register an account
// @Description Creates an account of the kind named by for_account: self (a data collector's own account), public (an end-user account plus profile), or sub_account (a dependent under an existing public account). identity=DataCollector attributes the registration to the authenticated data collector.
// @Tags registration
// @Accept json
// @Produce json
// @Param identity query string false "Set to DataCollector when registering on behalf of someone"
// @Param for_account query string false "Registration kind: self, public or sub_account" default(self)
// @Success 201 {object} dto.RegistrationResult
// @Failure 400 {object} map[string]map[string]string
// @Failure 403 {object} ErrorResponse
// @Router /register [post]
func (h *registrationHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind, err := dto.ParseRegistrationKind(c.DefaultQuery("for_account", string(dto.RegisterSelf)))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var addBy *domain.User
	if c.Query("identity") == identityDataCollector {
		user, ok := middleware.CurrentUser(c)
		if !ok || user.Role.Name != domain.RoleDataCollector {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "DataCollector identity requires an authenticated data collector"})
			return
		}
		addBy = user
	}

	var result *dto.RegistrationResult
	switch kind {
	case dto.RegisterSelf:
		var req dto.RegisterSelfRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
		result, err = h.registrationService.RegisterSelf(c.Request.Context(), req)
	case dto.RegisterPublic:
		var req dto.RegisterPublicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
		result, err = h.registrationService.RegisterPublic(c.Request.Context(), req, addBy)
	case dto.RegisterSubAccount:
		var req dto.RegisterSubAccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
		result, err = h.registrationService.RegisterSubAccount(c.Request.Context(), req, addBy)
	}
	if err != nil {
		logger.Warn("Registration failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Account registered", slog.String("kind", string(kind)), slog.Int64("user_id", result.UserID))
	c.JSON(http.StatusCreated, result)
}

// sendOTP godoc
// @Summary Send a verification code
// @Description Issues a fresh one-time code for the account's contact channel and dispatches it. The supplied contact must match the stored one.
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.SendOTPRequest true "Dispatch target"
// @Success 200 {object} dto.SendOTPResponse
// @Failure 404 {object} ErrorResponse
// @Router /send-otp [post]
func (h *registrationHandler) sendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	channel := domain.ContactChannel(req.ContactType)
	if err := h.verificationService.SendCode(c.Request.Context(), req.UserID, channel, req.Contact); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SendOTPResponse{
		SendOTP: true,
		UserID:  req.UserID,
		Message: "Verification code sent",
	})
}

// verifyOTP godoc
// @Summary Verify a code
// @Description Checks the submitted code against the pending one. On success the channel is marked verified and the applicable fee breakdown is attached.
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Code submission"
// @Success 200 {object} dto.VerificationReceipt
// @Failure 400 {object} map[string]map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /verify-otp [post]
func (h *registrationHandler) verifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	receipt, err := h.verificationService.VerifyCode(c.Request.Context(), req.UserID, domain.ContactChannel(req.ContactType), req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
