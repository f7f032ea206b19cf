package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qordleweb/internal/suggest"
	"qordleweb/internal/types"
)

// pageData collects the template values shared by the page and fragment.
func (app *App) pageData(session *Session) gin.H {
	snap := session.Board.Snapshot()
	return gin.H{
		"title":    PageTitle,
		"message":  PageMessage,
		"variant":  app.Requester.Variant(),
		"upstream": app.Requester.BaseURL(),
		"guess":    snap.Guess,
		"text":     snap.Text,
		"failed":   snap.Failed,
		"sequence": snap.Sequence,
	}
}

// homeHandler renders the main page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	session := app.getSession(c.Request.Context(), sessionID)
	c.HTML(http.StatusOK, TemplateIndex, app.pageData(session))
}

// suggestHandler sends the submitted guess upstream and renders the session's
// output region. A request superseded by a newer one from the same session
// is cancelled and renders whatever the newer one produced.
func (app *App) suggestHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	session := app.getSession(ctx, sessionID)

	guess := c.PostForm("guess")
	logRequest(ctx, "INFO", "Session %s requested suggestions for %q", sessionID, guess)

	res, committed := session.Board.Run(ctx, app.Requester, guess)
	switch {
	case !committed:
		logRequest(ctx, "INFO", "Session %s discarded superseded result for %q", sessionID, guess)
	case res.OK():
		logRequest(ctx, "INFO", "Session %s received %d suggestions for %q", sessionID, len(res.Suggestions), guess)
		app.saveSession(ctx, session)
	default:
		logRequest(ctx, "WARN", "Session %s suggestion request for %q failed: %v", sessionID, guess, res.Err)
		app.saveSession(ctx, session)
		setServerErrorTrigger(c)
	}

	app.render(c, session)
}

// suggestionsHandler renders the current output region as a fragment.
func (app *App) suggestionsHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	session := app.getSession(c.Request.Context(), sessionID)
	c.HTML(http.StatusOK, TemplateSuggestions, app.pageData(session))
}

// clearHandler empties the session's output region and forgets its snapshot.
func (app *App) clearHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	session := app.getSession(ctx, sessionID)
	session.Board.Reset()
	if err := app.removeSessionFile(sessionID); err == nil {
		logRequest(ctx, "INFO", "Cleared session %s", sessionID)
	}

	if isHTMX(c) {
		c.HTML(http.StatusOK, TemplateSuggestions, app.pageData(session))
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, types.Health{
		Status:    "ok",
		Env:       app.Config.envName(),
		Variant:   app.Requester.Variant().Name,
		Upstream:  app.Requester.BaseURL(),
		Sessions:  app.sessionCount(),
		Uptime:    formatUptime(time.Since(app.StartTime)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// render writes the fragment for htmx requests and the full page otherwise.
func (app *App) render(c *gin.Context, session *Session) {
	if isHTMX(c) {
		c.HTML(http.StatusOK, TemplateSuggestions, app.pageData(session))
		return
	}
	c.HTML(http.StatusOK, TemplateIndex, app.pageData(session))
}

// setServerErrorTrigger tells htmx clients that the request failed.
func setServerErrorTrigger(c *gin.Context) {
	payload := map[string]string{"server_error": suggest.ServerErrorText}
	if b, err := json.Marshal(payload); err == nil {
		c.Header("HX-Trigger", string(b))
	} else {
		logWarn("Failed to marshal HX-Trigger payload: %v", err)
	}
}
