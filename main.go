package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		logFatal("Failed to load configuration: %v", err)
	}
	logInfo("Starting qordleweb in %s mode", cfg.envName())

	app, err := newApp(cfg)
	if err != nil {
		logFatal("Failed to create suggestion requester: %v", err)
	}
	defer app.Close()
	logInfo("Suggestions from %s%s (variant %s, delimiter %q)",
		app.Requester.BaseURL(), cfg.Variant.RoutePrefix, cfg.Variant.Name, cfg.Variant.Delimiter)

	templatesDir, staticDir := "templates", "./static"
	if cfg.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		templatesDir, staticDir = "dist/templates", "./dist/static"
	} else {
		logInfo("Serving development assets from source directories")
	}

	router := app.setupRouter(templatesDir, staticDir)
	app.startServer(router)
}

// setupRouter builds the gin engine with middleware, templates and routes.
func (app *App) setupRouter(templatesDir, staticDir string) *gin.Engine {
	router := gin.Default()

	router.Use(requestIDMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))
	router.Use(app.cacheHeadersMiddleware())

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.LoadHTMLGlob(templatesDir + "/*.html")
	router.Static("/static", staticDir)

	router.GET(RouteHome, app.homeHandler)
	router.POST(RouteSuggest, app.rateLimitMiddleware(), app.suggestHandler)
	router.GET(RouteSuggestions, app.suggestionsHandler)
	router.POST(RouteClear, app.rateLimitMiddleware(), app.clearHandler)
	router.GET(RouteHealthz, app.healthzHandler)
	return router
}

// startServer runs the HTTP server and the session sweeper until SIGINT or SIGTERM.
func (app *App) startServer(router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go app.sweepSessions(ctx, sweepInterval(app.Config.SessionTimeout))

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", app.Config.Port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

// sweepInterval picks how often idle sessions are swept.
func sweepInterval(timeout time.Duration) time.Duration {
	interval := timeout / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}

// sweepSessions periodically evicts idle sessions from memory and disk.
func (app *App) sweepSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.expireSessions(app.Config.SessionTimeout); n > 0 {
				logInfo("Evicted %d idle sessions from memory", n)
			}
			if err := app.cleanupOldSessions(app.Config.SessionTimeout); err != nil {
				logWarn("Session file cleanup failed: %v", err)
			}
		}
	}
}
