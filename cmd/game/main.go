package main

import (
	"bufio"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop"
)

func main() {
	// Raw mode owns stdout, so logs go to stderr.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  config.GetEnvLevel("LOG_LEVEL", log.WarnLevel),
		Prefix: "invaders",
	})

	seed := config.GetEnvInt("INVADERS_SEED", time.Now().UnixNano())

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Logger:   logger,
		Username: os.Getenv("USER"),
		Rand:     rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
