package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           config.GetEnvLevel("LOG_LEVEL", log.InfoLevel),
		ReportTimestamp: true,
		Prefix:          "invaders-web",
	})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	http.HandleFunc("/", landingHandler(sshHost))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// landingHandler serves the page telling visitors how to connect over SSH.
func landingHandler(sshHost string) http.HandlerFunc {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}
