package screener

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hancao97/hanai-wealth/internal/utils"
)

// sessionState mirrors the in-memory view state for the duration of a
// browsing session. Persistence is best effort: it never blocks or fails
// the session it shadows.
type sessionState struct {
	Filters Filters `json:"filters"`
	Date    string  `json:"date"`
	Page    int     `json:"page"`
}

// DefaultStatePath returns the per-user session-state file.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hanai-wealth", "session.json")
}

func (s *Session) saveState() {
	if s.StatePath == "" {
		return
	}

	state := sessionState{
		Filters: s.filters,
		Date:    s.currentDate,
		Page:    s.currentPage,
	}
	data, err := json.Marshal(state)
	if err != nil {
		utils.Log.Warnf("Could not encode session state: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.StatePath), 0o755); err != nil {
		utils.Log.Warnf("Could not save session state: %v", err)
		return
	}
	if err := os.WriteFile(s.StatePath, data, 0o644); err != nil {
		utils.Log.Warnf("Could not save session state: %v", err)
	}
}

func (s *Session) loadState() *sessionState {
	if s.StatePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.StatePath)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Log.Warnf("Could not load session state: %v", err)
		}
		return nil
	}
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		utils.Log.Warnf("Could not parse session state: %v", err)
		return nil
	}
	return &state
}

func (s *Session) clearState() {
	if s.StatePath == "" {
		return
	}
	if err := os.Remove(s.StatePath); err != nil && !os.IsNotExist(err) {
		utils.Log.Warnf("Could not clear session state: %v", err)
	}
}
