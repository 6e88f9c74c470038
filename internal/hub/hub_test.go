package hub

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return New(log.New(io.Discard))
}

func TestRegisterUnregister(t *testing.T) {
	h := newTestHub()

	a := h.Register("alice")
	b := h.Register("  ")
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, "player", b.Username)
	assert.Equal(t, 2, h.Sessions())

	h.Unregister(a.ID)
	assert.Equal(t, 1, h.Sessions())
	_, open := <-a.Events
	assert.False(t, open, "events channel is closed on unregister")

	h.Unregister(a.ID)
	h.Unregister(42)
	assert.Equal(t, 1, h.Sessions())
}

func TestUsernameTruncated(t *testing.T) {
	h := newTestHub()
	s := h.Register("abcdefghijklmnopqrstuvwxyz")
	assert.Equal(t, "abcdefghijklmnop", s.Username)
}

func TestTopScores(t *testing.T) {
	h := newTestHub()
	a := h.Register("alice")
	b := h.Register("bob")

	h.SubmitScore(a.ID, 120)
	h.SubmitScore(b.ID, 300)
	h.SubmitScore(a.ID, 0)
	h.SubmitScore(b.ID, 120)
	h.SubmitScore(a.ID, 50)
	h.SubmitScore(a.ID, 10)
	h.SubmitScore(b.ID, 20)

	top := h.TopScores()
	require.Len(t, top, 5)
	assert.Equal(t, ScoreEntry{Username: "bob", Score: 300, seq: 2}, top[0])
	assert.Equal(t, "alice", top[1].Username, "earlier submission wins a tie")
	assert.Equal(t, 120, top[1].Score)
	assert.Equal(t, "bob", top[2].Username)
	assert.Equal(t, 120, top[2].Score)
	assert.Equal(t, 50, top[3].Score)
	assert.Equal(t, 20, top[4].Score)

	top[0].Score = 1
	assert.Equal(t, 300, h.TopScores()[0].Score, "board is returned by copy")
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	h := newTestHub()
	a := h.Register("alice")
	b := h.Register("bob")

	for _, s := range []*Session{a, b} {
		go func(s *Session) {
			ev := <-s.Events
			if ev.Type == EventShutdown {
				h.Unregister(s.ID)
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		h.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not return after every session left")
	}
	assert.Equal(t, 0, h.Sessions())
}

func TestShutdownTimeout(t *testing.T) {
	h := newTestHub()
	h.Register("idle")

	start := time.Now()
	h.Shutdown(100 * time.Millisecond)

	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 1, h.Sessions())
}
