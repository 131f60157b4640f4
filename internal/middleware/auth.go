package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
)

// Token carriers. Headers take precedence over cookies when both are present.
const (
	HeaderAccessToken  = "Access-Token"
	HeaderRefreshToken = "Refresh-Token"
	HeaderVisitorID    = "X-Visitor-ID"

	CookieAccessToken  = "access-token"
	CookieRefreshToken = "refresh-token"
	CookieVisitorID    = "visitor-id"
)

// TokenFromRequest reads a token from its header, falling back to its cookie.
func TokenFromRequest(c *gin.Context, header, cookie string) string {
	if v := c.GetHeader(header); v != "" {
		return v
	}
	v, err := c.Cookie(cookie)
	if err != nil {
		return ""
	}
	return v
}

// VisitorFromRequest reads the device fingerprint from its header, falling
// back to its cookie. Browser clients typically carry it as a cookie.
func VisitorFromRequest(c *gin.Context) string {
	return TokenFromRequest(c, HeaderVisitorID, CookieVisitorID)
}

// SetSessionCookies writes both token cookies with lifetimes matching the
// session's expiries. SameSite=None so browser clients on other origins keep
// sending them; secure is mandatory with that mode outside local development.
func SetSessionCookies(c *gin.Context, session *domain.Session, secure bool) {
	c.SetSameSite(http.SameSiteNoneMode)
	accessAge := int(time.Until(session.AccessTokenExpires).Seconds())
	refreshAge := int(time.Until(session.RefreshTokenExpires).Seconds())
	c.SetCookie(CookieAccessToken, session.AccessToken, accessAge, "/", "", secure, true)
	c.SetCookie(CookieRefreshToken, session.RefreshToken, refreshAge, "/", "", secure, true)
}

// ClearSessionCookies expires both token cookies.
func ClearSessionCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieAccessToken, "", -1, "/", "", secure, true)
	c.SetCookie(CookieRefreshToken, "", -1, "/", "", secure, true)
}

// Authenticate creates a Gin middleware handler that resolves the request's
// token pair to an account. It never aborts: requests without a valid
// session pass through unauthenticated, and route guards decide what that
// means. A rotated session transparently refreshes the cookies; a rejected
// one clears them.
func Authenticate(sessions portssvc.SessionValidatorSvc, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		accessToken := TokenFromRequest(c, HeaderAccessToken, CookieAccessToken)
		refreshToken := TokenFromRequest(c, HeaderRefreshToken, CookieRefreshToken)
		if accessToken == "" && refreshToken == "" {
			c.Next()
			return
		}

		visitorID := VisitorFromRequest(c)
		user, session, outcome, err := sessions.Validate(c.Request.Context(), accessToken, refreshToken, visitorID)
		if err != nil {
			logger.Error("Session validation failed", slog.String("error", err.Error()))
		}

		switch outcome {
		case domain.OutcomeFresh, domain.OutcomeRotated:
			setAuthenticated(c, user, session)
			if outcome == domain.OutcomeRotated {
				SetSessionCookies(c, session, cookieSecure)
			}

			// Enrich the request logger with the resolved identity
			enrichedLogger := logger.With(
				slog.Int64("user_id", user.UserID),
				slog.String("role", string(user.Role.Name)),
			)
			ctx := context.WithValue(c.Request.Context(), loggerCtxKey, enrichedLogger)
			c.Request = c.Request.WithContext(ctx)
		default:
			// Stale cookies would make every subsequent request repeat
			// this dance, so drop them now.
			ClearSessionCookies(c, cookieSecure)
		}

		c.Next()
	}
}

// RequireAuthenticated aborts with 401 unless Authenticate resolved a user.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user holds one of the
// given roles. Unauthenticated requests get 401.
func RequireRole(roles ...domain.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, role := range roles {
			if user.Role.Name == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
