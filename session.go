package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qordleweb/internal/suggest"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || !validSessionID(sessionID) {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.Config.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.Config.CookieMaxAge.Seconds()), "/", "", secure, true)
		logRequest(c.Request.Context(), "INFO", "Created new session: %s", sessionID)
	}
	return sessionID
}

// validSessionID reports whether id is safe to use as a session key and file name.
func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && !strings.ContainsAny(id, `/\`)
}

// getSession returns the session's state, restoring it from disk or creating
// an empty one when it is not in memory.
func (app *App) getSession(ctx context.Context, sessionID string) *Session {
	app.SessionMutex.RLock()
	session, exists := app.Sessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		app.SessionMutex.Lock()
		session.LastAccessTime = time.Now()
		app.SessionMutex.Unlock()
		return session
	}

	board := suggest.NewBoard()
	record, err := app.loadSessionFromFile(sessionID)
	switch {
	case err == nil:
		board.Restore(record.Board)
		logRequest(ctx, "INFO", "Restored session %s from disk", sessionID)
	case !errors.Is(err, os.ErrNotExist):
		logRequest(ctx, "WARN", "Failed to restore session %s: %v", sessionID, err)
	}

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	// Another request may have created it while the file was read.
	if existing, ok := app.Sessions[sessionID]; ok {
		existing.LastAccessTime = time.Now()
		return existing
	}
	session = &Session{ID: sessionID, Board: board, LastAccessTime: time.Now()}
	app.Sessions[sessionID] = session
	return session
}

// saveSession persists the session's board to disk.
func (app *App) saveSession(ctx context.Context, session *Session) {
	if err := app.saveSessionToFile(session.ID, session.Board.Snapshot()); err != nil {
		logRequest(ctx, "WARN", "Failed to persist session %s: %v", session.ID, err)
	}
}

// sessionCount returns the number of sessions held in memory.
func (app *App) sessionCount() int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.Sessions)
}

// expireSessions evicts in-memory sessions idle for longer than maxAge.
func (app *App) expireSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	removed := 0
	for id, session := range app.Sessions {
		if session.LastAccessTime.Before(cutoff) {
			session.Board.Reset()
			delete(app.Sessions, id)
			removed++
		}
	}
	return removed
}
