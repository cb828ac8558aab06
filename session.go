package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
// Saved essays are tagged with it so a writer can list only their own.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err == nil {
		if _, perr := uuid.Parse(sessionID); perr == nil {
			return sessionID
		}
	}
	sessionID = uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
	logInfo("%sCreated new session: %s", requestTag(c.Request.Context()), sessionID)
	return sessionID
}

// currentSession returns the session ID from the cookie without creating one.
func currentSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}
	return sessionID
}
