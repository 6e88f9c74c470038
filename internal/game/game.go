package game

import (
	"fmt"
	"time"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/object"
)

// DefaultScreen is the logical playfield every front-end shares.
var DefaultScreen = object.Screen{Width: config.FieldWidth, Height: config.FieldHeight}

// Game owns one player's round state and the random source used for enemy fire.
// It is not safe for concurrent use; a single frame driver calls it.
type Game struct {
	state State
	rng   Rand
}

// New creates a game sitting on the title screen.
func New(rng Rand) *Game {
	return &Game{
		state: NewState(DefaultScreen),
		rng:   rng,
	}
}

// StartRound resets score, lives and every entity, and enters the playing phase.
// It is valid from any phase.
func (g *Game) StartRound() {
	g.state = NewRound(g.state.Screen)
}

// Step advances the round by dt. Events are returned in the order they happened.
func (g *Game) Step(in Input, dt time.Duration) ([]Event, error) {
	next, events, err := Step(g.state, in, dt, g.rng)
	if err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}
	g.state = next
	return events, nil
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase {
	return g.state.Phase
}

// Score returns the current round's score.
func (g *Game) Score() int {
	return g.state.Score
}

// Snapshot returns a copy of the round state that the caller may keep or modify.
func (g *Game) Snapshot() State {
	return g.state.Clone()
}

// View returns the live round state for read-only use until the next Step or StartRound.
// Renderers use it to avoid copying every frame.
func (g *Game) View() *State {
	return &g.state
}
