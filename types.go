package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"qordleweb/internal/suggest"
)

// App holds the server's shared state.
type App struct {
	Config    *Config
	Requester *suggest.Requester
	StartTime time.Time

	Sessions     map[string]*Session
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
}

// Session is one browser's output region.
type Session struct {
	ID             string
	Board          *suggest.Board
	LastAccessTime time.Time // guarded by App.SessionMutex
}

// newApp wires the requester and empty session tables for cfg.
func newApp(cfg *Config) (*App, error) {
	requester, err := suggest.New(suggest.Config{
		BaseURL:           cfg.BaseURL,
		Variant:           cfg.Variant,
		Timeout:           cfg.Timeout,
		CacheTTL:          cfg.CacheTTL,
		RequestsPerSecond: cfg.UpstreamRPS,
		Burst:             cfg.UpstreamBurst,
		Logf:              logPrintf,
	})
	if err != nil {
		return nil, err
	}
	return &App{
		Config:     cfg,
		Requester:  requester,
		StartTime:  time.Now(),
		Sessions:   make(map[string]*Session),
		LimiterMap: make(map[string]*rate.Limiter),
	}, nil
}

// Close releases the requester's background resources.
func (app *App) Close() {
	app.Requester.Close()
}
