package main

import "time"

// Page configuration constants
const (
	PageTitle   = "Qordle Suggest"
	PageMessage = "Enter your guesses, separated by spaces."
)

// Default configuration values
const (
	DefaultPort           = "8080"
	DefaultBaseURL        = "http://localhost:9090"
	DefaultVariant        = "qordle"
	DefaultSessionDir     = "data/sessions"
	DefaultSessionTimeout = 2 * time.Hour
	DefaultCookieMaxAge   = 2 * time.Hour
	DefaultStaticCacheAge = 5 * time.Minute
	DefaultRateLimitRPS   = 5
	DefaultRateLimitBurst = 10
)

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome        = "/"
	RouteSuggest     = "/suggest"
	RouteSuggestions = "/suggestions"
	RouteClear       = "/clear"
	RouteHealthz     = "/healthz"
)

// Template names
const (
	TemplateIndex       = "index.html"
	TemplateSuggestions = "suggestions"
)

// Error message constants
const (
	ErrorTooManyRequests = "Too many requests. Please slow down."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
