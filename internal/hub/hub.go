// Package hub tracks the game sessions running in one process.
//
// Every session simulates its own round; the hub only shares what sits
// above the rounds: the top-score board and shutdown notices.
package hub

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
)

// EventType identifies the type of session event.
type EventType int

const (
	EventShutdown EventType = iota
)

// Event is sent from the hub to a session.
type Event struct {
	Type EventType
}

// Session is one connected player's handle.
type Session struct {
	ID       int
	Username string
	Events   chan Event // Closed by Unregister
}

// ScoreEntry is one line of the top-score board.
type ScoreEntry struct {
	Username string
	Score    int
	seq      int // Submission order, earlier wins ties
}

// Hub manages sessions and the top-score board.
type Hub struct {
	mu       sync.RWMutex
	sessions *intmap.Map[int, *Session]
	nextID   int
	scores   []ScoreEntry
	seq      int
	logger   *log.Logger
}

// New creates an empty hub. logger may be nil.
func New(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		sessions: intmap.New[int, *Session](16),
		nextID:   1,
		logger:   logger,
	}
}

// Register adds a session for username and returns its handle.
func (h *Hub) Register(username string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := &Session{
		ID:       h.nextID,
		Username: displayName(username),
		Events:   make(chan Event, 4),
	}
	h.nextID++
	h.sessions.Put(s.ID, s)

	h.logger.Info("session registered", "id", s.ID, "user", s.Username, "sessions", h.sessions.Len())
	return s
}

// Unregister removes a session and closes its event channel. Unknown ids are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions.Get(id)
	if !ok {
		return
	}
	h.sessions.Del(id)
	close(s.Events)

	h.logger.Info("session unregistered", "id", id, "user", s.Username, "sessions", h.sessions.Len())
}

// Sessions returns the number of registered sessions.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions.Len()
}

// SubmitScore records the final score of a finished round.
// Scores of zero never make the board.
func (h *Hub) SubmitScore(id, score int) {
	if score <= 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	username := "player"
	if s, ok := h.sessions.Get(id); ok {
		username = s.Username
	}

	h.seq++
	h.scores = append(h.scores, ScoreEntry{Username: username, Score: score, seq: h.seq})
	slices.SortFunc(h.scores, func(a, b ScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	if len(h.scores) > config.TopScoreCount {
		h.scores = h.scores[:config.TopScoreCount]
	}

	h.logger.Debug("score submitted", "id", id, "user", username, "score", score)
}

// TopScores returns a copy of the board, best first.
func (h *Hub) TopScores() []ScoreEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.scores)
}

// Shutdown notifies every session and waits until they have all unregistered
// or the timeout passes.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	h.logger.Info("notifying sessions about shutdown", "sessions", h.sessions.Len())
	h.sessions.ForEach(func(_ int, s *Session) bool {
		select {
		case s.Events <- Event{Type: EventShutdown}:
		default:
		}
		return true
	})
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			h.logger.Warn("shutdown timed out", "remaining", h.Sessions())
			return
		case <-ticker.C:
			if h.Sessions() == 0 {
				return
			}
		}
	}
}

// displayName trims and truncates a username for display.
func displayName(username string) string {
	name := strings.TrimSpace(username)
	if name == "" {
		return "player"
	}
	if r := []rune(name); len(r) > config.MaxUsernameLength {
		name = string(r[:config.MaxUsernameLength])
	}
	return name
}
