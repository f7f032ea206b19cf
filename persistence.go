package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"qordleweb/internal/suggest"
	"qordleweb/internal/types"
)

// sessionFile returns the snapshot path for a session.
func (app *App) sessionFile(sessionID string) string {
	return filepath.Join(app.Config.SessionDir, sessionID+".json")
}

// saveSessionToFile persists a session's board to disk.
func (app *App) saveSessionToFile(sessionID string, snapshot suggest.Snapshot) error {
	if !validSessionID(sessionID) {
		logWarn("Skipping save for invalid session ID: %s", sessionID)
		return nil
	}

	if err := os.MkdirAll(app.Config.SessionDir, 0755); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	record := types.SessionRecord{
		SessionID:      sessionID,
		Board:          snapshot,
		LastAccessTime: time.Now(),
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sessionID, err)
	}

	path := app.sessionFile(sessionID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write session file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename session file %s: %w", path, err)
	}
	return nil
}

// loadSessionFromFile loads a session's board from disk. Expired, corrupted
// or mismatched files are removed and reported as os.ErrNotExist.
func (app *App) loadSessionFromFile(sessionID string) (*types.SessionRecord, error) {
	if !validSessionID(sessionID) {
		return nil, os.ErrNotExist
	}

	path := app.sessionFile(sessionID)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if age := time.Since(info.ModTime()); age > app.Config.SessionTimeout {
		logInfo("Session file is too old (%v, max: %v), removing: %s", age, app.Config.SessionTimeout, path)
		_ = os.Remove(path)
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var record types.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logWarn("Session file %s is corrupted, removing: %v", path, err)
		_ = os.Remove(path)
		return nil, os.ErrNotExist
	}

	if record.SessionID != sessionID {
		logWarn("Session file %s belongs to %q, removing", path, record.SessionID)
		_ = os.Remove(path)
		return nil, os.ErrNotExist
	}

	record.LastAccessTime = time.Now()
	return &record, nil
}

// removeSessionFile deletes a session's snapshot.
func (app *App) removeSessionFile(sessionID string) error {
	if !validSessionID(sessionID) {
		return os.ErrNotExist
	}
	return os.Remove(app.sessionFile(sessionID))
}

// cleanupOldSessions removes session files older than maxAge.
func (app *App) cleanupOldSessions(maxAge time.Duration) error {
	dir := app.Config.SessionDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read sessions directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removedCount, errorCount := 0, 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			errorCount++
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logWarn("Failed to remove old session file %s: %v", path, err)
			errorCount++
			continue
		}
		removedCount++
	}

	logInfo("Session cleanup completed: removed %d files, %d errors", removedCount, errorCount)
	return nil
}
