package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/draw"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/hub"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// Shared by all SSH sessions
var (
	logger  *log.Logger
	gameHub *hub.Hub
	seeds   *seedSource
)

func main() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           config.GetEnvLevel("LOG_LEVEL", log.InfoLevel),
		ReportTimestamp: true,
		Prefix:          "invaders-ssh",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	gameHub = hub.New(logger)
	seeds = newSeedSource(config.GetEnvInt("INVADERS_SEED", time.Now().UnixNano()))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	gameHub.Shutdown(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs one game per session.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger.Info("new game session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		err := loop.Run(bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			Hub:          gameHub,
			Username:     sess.User(),
			Rand:         rand.New(rand.NewSource(seeds.next())),
			IdleTimeout:  true,
		})
		if err != nil {
			logger.Error("game error", "user", sess.User(), "err", err)
		}

		logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// seedSource hands out distinct, reproducible seeds to sessions.
type seedSource struct {
	mu   sync.Mutex
	base int64
	n    int64
}

func newSeedSource(base int64) *seedSource {
	return &seedSource{base: base}
}

func (s *seedSource) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.base + s.n
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
