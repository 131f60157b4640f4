package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nagorik/citizen-registry/internal/core/domain"
)

const (
	currentUserKey    = contextKey("currentUser")
	currentSessionKey = contextKey("currentSession")
)

// setAuthenticated stores the resolved account and session in the Gin context
// for downstream handlers.
func setAuthenticated(c *gin.Context, user *domain.User, session *domain.Session) {
	c.Set(string(currentUserKey), user)
	c.Set(string(currentSessionKey), session)
}

// CurrentUser retrieves the authenticated account from the Gin context.
// The boolean reports whether the request carried a valid session.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(string(currentUserKey))
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// CurrentSession retrieves the session backing the authenticated request.
func CurrentSession(c *gin.Context) (*domain.Session, bool) {
	v, exists := c.Get(string(currentSessionKey))
	if !exists {
		return nil, false
	}
	session, ok := v.(*domain.Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}
