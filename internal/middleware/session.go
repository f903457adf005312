package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie = "catalog_session"
	SessionKey    = "sessionID"

	sessionMaxAge = 24 * 60 * 60
)

// SessionRegistry reports whether a session id belongs to a live session.
type SessionRegistry interface {
	Known(id string) bool
}

// Session gives every browser a stable random id. Only ids the registry knows are
// reused; malformed, expired or client-chosen ids are replaced by a fresh one.
func Session(logger *logrus.Logger, registry SessionRegistry, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil {
			id = ""
		} else if _, parseErr := uuid.Parse(id); parseErr != nil {
			logger.Warnf("Middleware: Discarding malformed session cookie from %s", c.ClientIP())
			id = ""
		} else if !registry.Known(id) {
			logger.Debugf("Middleware: Discarding unknown session cookie from %s", c.ClientIP())
			id = ""
		}

		if id == "" {
			id = uuid.NewString()
			logger.Debugf("Middleware: New session %s", id)
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, sessionMaxAge, "/", "", secure, true)
		c.Set(SessionKey, id)
		c.Next()
	}
}
