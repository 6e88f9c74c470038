// Package loop drives one terminal game session: Input → Update → Draw at a fixed frame rate.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/draw"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/game"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/hub"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/input"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Hub          *hub.Hub  // Shared leaderboard; a private one is created when nil
	Username     string    // Name shown on the leaderboard
	Rand         game.Rand // Enemy fire source; required
	IdleTimeout  bool      // Warn and then disconnect inactive players
}

// screen is what the session currently shows.
type screen int

const (
	screenStart screen = iota
	screenPlaying
	screenGameOver
	screenGameClear
	screenShutdown
)

// Session runs one player's game on a terminal.
type Session struct {
	game         *game.Game
	hub          *hub.Hub
	handle       *hub.Session
	logger       *log.Logger
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	idleTimeout  bool

	input         input.Input
	delta         time.Duration
	lastInput     time.Time
	running       bool
	screen        screen
	prevScreen    screen
	isInactive    bool
	wasInactive   bool
	restartTimer  float64 // Seconds until a finished round accepts a restart
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	endReason     game.EndReason
	popups        []scorePopup
}

// scorePopup is a floating "+N" label left where an invader was destroyed.
type scorePopup struct {
	text string
	pos  draw.Point // Logical position of the label's center
	ttl  float64    // Seconds left on screen
}

// Run plays a session until the player quits, the input closes or the hub shuts it down.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	s, err := NewSession(r, w, opts)
	if err != nil {
		return err
	}
	return s.Run()
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) (*Session, error) {
	if opts.Rand == nil {
		return nil, fmt.Errorf("loop: %w: nil random source", game.ErrInvalidState)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := opts.Hub
	if h == nil {
		h = hub.New(logger)
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	handle := h.Register(opts.Username)
	return &Session{
		game:         game.New(opts.Rand),
		hub:          h,
		handle:       handle,
		logger:       logger.With("session", handle.ID, "user", handle.Username),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		idleTimeout:  opts.IdleTimeout,
		lastInput:    time.Now(),
		running:      true,
		screen:       screenStart,
		prevScreen:   screenStart,
	}, nil
}

// Run starts the frame loop. Blocks until the session ends.
func (s *Session) Run() error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)
	defer s.hub.Unregister(s.handle.ID)
	defer s.inputStream.Stop()

	lastTime := time.Now()

	for s.running {
		frameStart := time.Now()
		s.delta = min(frameStart.Sub(lastTime), config.MaxFrameDelta)
		lastTime = frameStart

		s.processInput()
		s.processHubEvents()
		s.updateScreen()

		if err := s.update(); err != nil {
			return err
		}

		if err := s.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(s.writer)
	s.logger.Info("session finished", "score", s.game.Score())
	return nil
}

// processInput reads this frame's keys and tracks inactivity.
func (s *Session) processInput() {
	s.input = input.ReadInput(s.inputStream)

	if s.input.Any() {
		s.lastInput = time.Now()
		s.isInactive = false
	} else if s.idleTimeout {
		idle := time.Since(s.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			s.logger.Info("disconnecting inactive player")
			s.running = false
		} else if idle > config.InactivityWarnUser {
			s.isInactive = true
		}
	}

	if s.input.Quit || s.input.Closed {
		s.running = false
	}
}

// processHubEvents handles notices from the hub.
func (s *Session) processHubEvents() {
	for {
		select {
		case event, ok := <-s.handle.Events:
			if !ok {
				s.running = false
				return
			}
			if event.Type == hub.EventShutdown {
				s.screen = screenShutdown
				s.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.writer)
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update advances whatever the current screen does this frame.
func (s *Session) update() error {
	switch s.screen {
	case screenStart:
		if s.input.Fire || s.input.Enter {
			s.startRound()
		}
	case screenPlaying:
		// Paused while the inactivity warning hides the field.
		if s.isInactive {
			return nil
		}
		return s.updatePlaying()
	case screenGameOver, screenGameClear:
		s.updateFinished()
	case screenShutdown:
		s.shutdownTimer -= s.delta.Seconds()
		if s.shutdownTimer <= 0 {
			s.running = false
		}
	}
	return nil
}

// updatePlaying steps the round and reacts to it ending.
func (s *Session) updatePlaying() error {
	events, err := s.game.Step(game.Input{
		Left:  s.input.Left,
		Right: s.input.Right,
		Fire:  s.input.Fire,
	}, s.delta)
	if err != nil {
		return fmt.Errorf("session %d: %w", s.handle.ID, err)
	}

	s.agePopups()
	for _, ev := range events {
		switch ev.Kind {
		case game.EventInvaderKilled:
			s.addPopup(ev)
		case game.EventPlayerHit:
			s.logger.Debug("player hit", "lives", ev.Lives)
		case game.EventGameOver:
			s.finishRound(screenGameOver, ev)
		case game.EventGameClear:
			s.finishRound(screenGameClear, ev)
		}
	}
	return nil
}

// addPopup leaves a score label where the invader died.
func (s *Session) addPopup(ev game.Event) {
	inv := s.game.View().Invaders[ev.Invader]
	b := inv.Bounds()
	s.popups = append(s.popups, scorePopup{
		text: fmt.Sprintf("+%d", ev.Points),
		pos:  draw.Point{X: b.CenterX(), Y: b.Y + b.Height/2},
		ttl:  config.ScorePopupSeconds,
	})
}

// agePopups drops labels whose time is up.
func (s *Session) agePopups() {
	kept := s.popups[:0]
	for _, p := range s.popups {
		p.ttl -= s.delta.Seconds()
		if p.ttl > 0 {
			kept = append(kept, p)
		}
	}
	s.popups = kept
}

// finishRound records the result and moves to an end screen.
func (s *Session) finishRound(next screen, ev game.Event) {
	s.screen = next
	s.endReason = ev.Reason
	s.restartTimer = config.RestartDelaySeconds
	s.hub.SubmitScore(s.handle.ID, ev.Score)
	input.ResetKeyInput(s.inputStream)
	s.logger.Info("round finished", "result", ev.Kind, "score", ev.Score, "reason", ev.Reason)
}

// updateFinished counts down the restart delay and restarts on request.
func (s *Session) updateFinished() {
	if s.restartTimer > 0 {
		s.restartTimer -= s.delta.Seconds()
		if s.restartTimer < 0 {
			s.restartTimer = 0
		}
	}
	if (s.input.Fire || s.input.Enter) && s.restartTimer <= 0 {
		s.startRound()
	}
}

// startRound starts or restarts the round.
func (s *Session) startRound() {
	input.ResetKeyInput(s.inputStream)
	s.game.StartRound()
	s.endReason = game.ReasonNone
	s.popups = s.popups[:0]
	s.screen = screenPlaying
	s.logger.Debug("round started")
}
