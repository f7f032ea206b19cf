package types

import (
	"time"

	"qordleweb/internal/suggest"
)

// SessionRecord is the on-disk form of a browser session's output region.
type SessionRecord struct {
	SessionID      string           `json:"sessionId"`
	Board          suggest.Snapshot `json:"board"`
	LastAccessTime time.Time        `json:"lastAccessTime"`
}

// Health is the body of the health check endpoint.
type Health struct {
	Status    string `json:"status"`
	Env       string `json:"env"`
	Variant   string `json:"variant"`
	Upstream  string `json:"upstream"`
	Sessions  int    `json:"sessions"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}
