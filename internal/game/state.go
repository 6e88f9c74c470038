// Package game implements the frame simulation and the round state machine.
//
// A round is a plain State value. Step consumes a State, an Input snapshot and
// the elapsed frame time, and returns the next State plus the events the frame
// produced. Nothing in this package draws, logs or reads devices.
package game

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/object"
)

// Phase is the current step of the round state machine.
type Phase int

const (
	PhaseStart     Phase = iota // Title screen, no round yet
	PhasePlaying                // Simulation runs every frame
	PhaseGameOver               // Terminal: out of lives or invaded
	PhaseGameClear              // Terminal: every invader destroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameOver"
	case PhaseGameClear:
		return "gameClear"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Terminal reports whether the phase ends a round.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseGameClear
}

// Precondition failures returned by Step. A failed Step leaves the state untouched.
var (
	ErrNegativeElapsed = errors.New("game: negative elapsed time")
	ErrNotPlaying      = errors.New("game: round is not in the playing phase")
	ErrInvalidState    = errors.New("game: invalid round state")
)

// Input is the per-frame control snapshot. Its origin (keys, touch) does not matter here.
type Input struct {
	Left  bool
	Right bool
	Fire  bool
}

// State is everything that persists between frames of a round.
type State struct {
	Phase  Phase
	Screen object.Screen

	Score int
	Lives int
	Level int

	Player       object.Player
	Invaders     []object.Invader    // Fixed grid, row-major; hit invaders keep their slot
	Bullets      []object.Projectile // Player bullets, oldest first
	EnemyBullets []object.Projectile // Invader bullets, oldest first

	Direction    int     // +1 right, -1 left
	DropDistance float64 // How far the formation drops on each edge bounce
	MoveTimer    time.Duration
	ShootTimer   time.Duration
}

// NewState returns the pre-round state shown on the title screen.
func NewState(screen object.Screen) State {
	return State{
		Phase:  PhaseStart,
		Screen: screen,
		Lives:  config.InitialLives,
		Level:  config.InitialLevel,
	}
}

// NewRound returns a fresh round in the playing phase.
func NewRound(screen object.Screen) State {
	return State{
		Phase:        PhasePlaying,
		Screen:       screen,
		Score:        0,
		Lives:        config.InitialLives,
		Level:        config.InitialLevel,
		Player:       object.NewPlayer(screen),
		Invaders:     object.NewFormation(),
		Bullets:      []object.Projectile{},
		EnemyBullets: []object.Projectile{},
		Direction:    1,
		DropDistance: config.InvaderDropDistance,
	}
}

// Clone returns a deep copy whose slices share no memory with s.
func (s State) Clone() State {
	c := s
	c.Invaders = slices.Clone(s.Invaders)
	c.Bullets = slices.Clone(s.Bullets)
	c.EnemyBullets = slices.Clone(s.EnemyBullets)
	return c
}

// AliveInvaders returns how many invaders are still standing.
func (s State) AliveInvaders() int {
	return object.CountAlive(s.Invaders)
}

// validate checks every precondition of Step before anything is mutated.
func (s State) validate(dt time.Duration) error {
	if dt < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeElapsed, dt)
	}
	if s.Phase != PhasePlaying {
		return fmt.Errorf("%w: phase is %v", ErrNotPlaying, s.Phase)
	}
	if s.Lives <= 0 {
		return fmt.Errorf("%w: %d lives while playing", ErrInvalidState, s.Lives)
	}
	if s.Direction != 1 && s.Direction != -1 {
		return fmt.Errorf("%w: direction %d", ErrInvalidState, s.Direction)
	}
	if s.MoveTimer < 0 || s.ShootTimer < 0 {
		return fmt.Errorf("%w: negative invader timer", ErrInvalidState)
	}
	if !s.Player.Bounds().IsFinite() {
		return fmt.Errorf("%w: player position %v", ErrInvalidState, s.Player.Bounds())
	}
	for i := range s.Invaders {
		if !s.Invaders[i].Bounds().IsFinite() {
			return fmt.Errorf("%w: invader %d position %v", ErrInvalidState, i, s.Invaders[i].Bounds())
		}
	}
	for _, list := range [][]object.Projectile{s.Bullets, s.EnemyBullets} {
		for i := range list {
			if !list[i].Bounds().IsFinite() {
				return fmt.Errorf("%w: projectile position %v", ErrInvalidState, list[i].Bounds())
			}
		}
	}
	return nil
}
