package main

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/game"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/hub"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/object"
)

var (
	colorPlayer  = color.RGBA{0x00, 0xff, 0x00, 0xff}
	colorCannon  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorFast    = color.RGBA{0xff, 0x00, 0x00, 0xff}
	colorNormal  = color.RGBA{0xff, 0xff, 0x00, 0xff}
	colorEye     = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorOverlay = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

// desktopGame implements ebiten.Game on top of the shared round simulation.
type desktopGame struct {
	game    *game.Game
	hub     *hub.Hub
	session *hub.Session
	logger  *log.Logger
	reason  game.EndReason
}

func newGame(rng game.Rand, logger *log.Logger) *desktopGame {
	h := hub.New(logger)
	return &desktopGame{
		game:    game.New(rng),
		hub:     h,
		session: h.Register(os.Getenv("USER")),
		logger:  logger,
	}
}

func (g *desktopGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.hub.Unregister(g.session.ID)
		return ebiten.Termination
	}

	if g.game.Phase() != game.PhasePlaying {
		if startPressed() {
			g.game.StartRound()
			g.reason = game.ReasonNone
			g.logger.Debug("round started")
		}
		return nil
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	events, err := g.game.Step(readInput(), dt)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if ev.Terminal() {
			g.reason = ev.Reason
			g.hub.SubmitScore(g.session.ID, ev.Score)
			g.logger.Info("round finished", "result", ev.Kind, "score", ev.Score)
		}
	}
	return nil
}

// startPressed reports a fresh Space or Enter press, or a new touch.
func startPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// readInput merges keyboard and touch controls.
// Touches on the left third move left, the right third move right and the middle fires.
func readInput() game.Input {
	in := game.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:  ebiten.IsKeyPressed(ebiten.KeySpace),
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, _ := ebiten.TouchPosition(id)
		switch {
		case x < config.FieldWidth/3:
			in.Left = true
		case x > config.FieldWidth*2/3:
			in.Right = true
		default:
			in.Fire = true
		}
	}
	return in
}

func (g *desktopGame) Draw(screen *ebiten.Image) {
	st := g.game.View()
	if st.Phase != game.PhaseStart {
		drawField(screen, st)
	}

	switch st.Phase {
	case game.PhaseStart:
		ebitenutil.DebugPrintAt(screen, "INVADERS\n\nArrows / A D  move\nSPACE  fire\nQ  quit\n\nPress SPACE to start", 340, 240)
	case game.PhasePlaying:
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Score: %d   Lives: %d   Level: %d", st.Score, st.Lives, st.Level))
	case game.PhaseGameOver, game.PhaseGameClear:
		vector.DrawFilledRect(screen, 0, 0, config.FieldWidth, config.FieldHeight, colorOverlay, false)
		ebitenutil.DebugPrintAt(screen, g.resultText(st), 320, 200)
	}
}

// resultText builds the end-of-round message with the leaderboard.
func (g *desktopGame) resultText(st *game.State) string {
	var b strings.Builder
	if st.Phase == game.PhaseGameClear {
		b.WriteString("GAME CLEAR\n\n")
	} else {
		b.WriteString("GAME OVER\n\n")
		if g.reason == game.ReasonInvaded {
			b.WriteString("The invaders reached your ship\n\n")
		}
	}
	fmt.Fprintf(&b, "Final score: %d\n\nTop Scores\n", st.Score)
	for i, e := range g.hub.TopScores() {
		fmt.Fprintf(&b, "%d. %-16s %6d\n", i+1, e.Username, e.Score)
	}
	b.WriteString("\nPress SPACE to restart")
	return b.String()
}

// drawField draws every entity in logical coordinates.
func drawField(screen *ebiten.Image, st *game.State) {
	p := st.Player
	fillRect(screen, p.X, p.Y, p.Width, p.Height, colorPlayer)
	fillRect(screen, p.X+20, p.Y-5, 10, 5, colorCannon)

	for _, inv := range st.Invaders {
		if !inv.Alive {
			continue
		}
		c := colorNormal
		if inv.Type == object.InvaderFast {
			c = colorFast
		}
		fillRect(screen, inv.X, inv.Y, inv.Width, inv.Height, c)
		fillRect(screen, inv.X+8, inv.Y+8, 4, 4, colorEye)
		fillRect(screen, inv.X+28, inv.Y+8, 4, 4, colorEye)
	}

	for _, b := range st.Bullets {
		fillRect(screen, b.X, b.Y, b.Width, b.Height, colorPlayer)
	}
	for _, b := range st.EnemyBullets {
		fillRect(screen, b.X, b.Y, b.Width, b.Height, colorFast)
	}
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

// Layout keeps the logical playfield size; ebiten scales it to the window.
func (g *desktopGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.FieldWidth, config.FieldHeight
}
