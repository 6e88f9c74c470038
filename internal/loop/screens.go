package loop

import (
	"fmt"
	"time"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/draw"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/game"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
)

// ASCII art titles (figlet "small" font)
var (
	titleArt = []string{
		` ___ _  ___   ___   ___  ___ ___  ___ `,
		`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
		" | || .` |\\ V / _ \\| |) | _||   /\\__ \\",
		`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
	}
	gameOverArt = []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	gameClearArt = []string{
		`   ___   _   __  __ ___    ___ _    ___   _   ___  `,
		`  / __| /_\ |  \/  | __|  / __| |  | __| /_\ | _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (__| |__| _| / _ \|   / `,
		`  \___/_/ \_\_|  |_|___|  \___|____|___/_/ \_\_|_\ `,
	}
)

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if s.screen != s.prevScreen || s.isInactive != s.wasInactive {
		s.chunkWriter.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevScreen = s.screen
		s.wasInactive = s.isInactive
	}

	s.canvas.Clear()
	if s.screen == screenPlaying && !s.isInactive {
		drawField(s.canvas, s.game.View())
	}

	s.canvas.Render(s.chunkWriter)
	s.canvas.RenderBorder(s.chunkWriter)
	if s.screen == screenPlaying && !s.isInactive {
		s.drawPopups()
	}
	s.drawUI()

	return s.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (s *Session) drawUI() {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if s.screen == screenShutdown {
		s.drawShutdownScreen(centerX, centerY)
		return
	}

	if s.isInactive {
		s.drawInactivityScreen(centerX, centerY)
		return
	}

	switch s.screen {
	case screenStart:
		s.drawStartScreen(centerX, centerY)
	case screenPlaying:
		s.drawPlayingHUD(termWidth, termHeight)
	case screenGameOver:
		s.drawResultScreen(centerX, centerY, gameOverArt, draw.ColorRed)
	case screenGameClear:
		s.drawResultScreen(centerX, centerY, gameClearArt, draw.ColorGreen)
	}
}

// writeCentered writes text horizontally centered on centerX.
func (s *Session) writeCentered(centerX, row int, text string) {
	s.chunkWriter.WriteAt(centerX-len(text)/2, row, text)
}

// drawArt draws art centered on centerX starting at row and returns the row below it.
func (s *Session) drawArt(centerX, row int, art []string, color draw.Color) int {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		s.chunkWriter.WriteColoredAt(centerX-width/2, row+i, line, color)
	}
	return row + len(art)
}

// blinkOn toggles every 600ms for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawStartScreen draws the title screen.
func (s *Session) drawStartScreen(centerX, centerY int) {
	row := s.drawArt(centerX, centerY-8, titleArt, draw.ColorYellow)

	subtitle := "~ Defend the earth from the invader fleet ~"
	s.writeCentered(centerX, row+1, subtitle)

	controlsY := row + 3
	s.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"A D / < >  . . . . Move",
		"SPACE  . . . . . . Fire",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		s.writeCentered(centerX, controlsY+1+i, line)
	}

	scoring := fmt.Sprintf("Red invader %d pts   Yellow invader %d pts",
		config.ScoreFastInvader, config.ScoreNormalInvader)
	s.writeCentered(centerX, controlsY+len(controlLines)+2, scoring)

	if blinkOn() {
		s.writeCentered(centerX, controlsY+len(controlLines)+4, ">>  Press SPACE to Start  <<")
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (s *Session) drawPlayingHUD(termWidth, termHeight int) {
	cw := s.chunkWriter
	st := s.game.View()

	scoreText := fmt.Sprintf("Score: %-8d", st.Score)
	cw.WriteAt(2, 1, scoreText)

	levelText := fmt.Sprintf("Level: %-3d", st.Level)
	cw.WriteAt(termWidth/2-len(levelText)/2, 1, levelText)

	livesText := fmt.Sprintf("Lives: %-3d", st.Lives)
	cw.WriteAt(termWidth-len(livesText)-1, 1, livesText)

	invadersText := fmt.Sprintf("Invaders: %-3d", st.AliveInvaders())
	cw.WriteAt(2, termHeight, invadersText)

	playersText := fmt.Sprintf("Players: %-4d", s.hub.Sessions())
	cw.WriteAt(termWidth-len(playersText)-1, termHeight, playersText)
}

// drawPopups draws score labels over the field.
// Marks the drawn cells as dirty so the canvas overwrites them next frame,
// preventing stale labels from persisting after they expire.
func (s *Session) drawPopups() {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()

	for _, p := range s.popups {
		col, row := s.canvas.LogicalToTerminal(p.pos)
		col -= len(p.text) / 2
		if row < 1 || row > termHeight || col < 1 || col+len(p.text)-1 > termWidth {
			continue
		}
		s.chunkWriter.WriteColoredAt(col, row, p.text, draw.ColorWhite)
		s.canvas.MarkTextDirty(col, row, len(p.text))
	}
}

// drawResultScreen draws the game over or game clear screen with the leaderboard.
func (s *Session) drawResultScreen(centerX, centerY int, art []string, color draw.Color) {
	row := s.drawArt(centerX, centerY-9, art, color)

	if reason := reasonText(s.endReason); reason != "" {
		s.writeCentered(centerX, row+1, reason)
	}
	s.writeCentered(centerX, row+2, fmt.Sprintf("Final score: %d", s.game.Score()))

	row = s.drawLeaderboard(centerX, row+4)

	if s.restartTimer > 0 {
		s.writeCentered(centerX, row+1, fmt.Sprintf("Restart in %.1f seconds...", s.restartTimer))
	} else if blinkOn() {
		s.writeCentered(centerX, row+1, ">>  Press SPACE to Restart  <<")
	}
}

// reasonText explains why the round ended.
func reasonText(r game.EndReason) string {
	switch r {
	case game.ReasonOutOfLives:
		return "Your last ship was destroyed"
	case game.ReasonInvaded:
		return "The invaders reached your ship"
	default:
		return ""
	}
}

// drawLeaderboard draws the shared top scores and returns the row below them.
func (s *Session) drawLeaderboard(centerX, row int) int {
	s.writeCentered(centerX, row, "Top Scores")
	top := s.hub.TopScores()
	if len(top) == 0 {
		s.writeCentered(centerX, row+1, "(none yet)")
		return row + 2
	}
	for i, entry := range top {
		line := fmt.Sprintf("%d. %-*s %8d", i+1, config.MaxUsernameLength, entry.Username, entry.Score)
		s.writeCentered(centerX, row+1+i, line)
	}
	return row + 1 + len(top)
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(centerX, centerY int) {
	s.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(s.lastInput).Seconds()),
	)
	s.writeCentered(centerX, centerY, msg)

	s.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (s *Session) drawShutdownScreen(centerX, centerY int) {
	s.chunkWriter.WriteColoredAt(centerX-len("SERVER SHUTTING DOWN")/2, centerY-3, "SERVER SHUTTING DOWN", draw.ColorRed)

	s.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	s.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(s.shutdownTimer) + 1
	s.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))

	s.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
