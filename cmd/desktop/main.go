package main

import (
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/config"
	loopconfig "github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           config.GetEnvLevel("LOG_LEVEL", log.InfoLevel),
		ReportTimestamp: true,
		Prefix:          "invaders-desktop",
	})

	seed := config.GetEnvInt("INVADERS_SEED", time.Now().UnixNano())
	g := newGame(rand.New(rand.NewSource(seed)), logger)

	ebiten.SetWindowSize(loopconfig.FieldWidth, loopconfig.FieldHeight)
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
