package loop

import (
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/draw"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/game"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/object"
)

// Invader eye placement, in logical units from the invader's top-left corner.
const (
	eyeSize    = 4
	eyeOffsetY = 8
	leftEyeX   = 8
	rightEyeX  = 28
)

// drawField paints every entity of the round onto the canvas.
func drawField(c *draw.Canvas, st *game.State) {
	drawPlayer(c, st.Player)
	for i := range st.Invaders {
		drawInvader(c, st.Invaders[i])
	}
	for _, b := range st.Bullets {
		c.FillRect(b.X, b.Y, b.Width, b.Height, draw.ColorGreen)
	}
	for _, b := range st.EnemyBullets {
		c.FillRect(b.X, b.Y, b.Width, b.Height, draw.ColorRed)
	}
}

// drawPlayer draws the ship body with a cannon on top.
func drawPlayer(c *draw.Canvas, p object.Player) {
	c.FillRect(p.X, p.Y, p.Width, p.Height, draw.ColorGreen)
	c.FillRect(p.X+20, p.Y-5, 10, 5, draw.ColorWhite)
}

// drawInvader draws a living invader; fast ones are red, normal ones yellow.
func drawInvader(c *draw.Canvas, inv object.Invader) {
	if !inv.Alive {
		return
	}
	color := draw.ColorYellow
	if inv.Type == object.InvaderFast {
		color = draw.ColorRed
	}
	c.FillRect(inv.X, inv.Y, inv.Width, inv.Height, color)
	c.FillRect(inv.X+leftEyeX, inv.Y+eyeOffsetY, eyeSize, eyeSize, draw.ColorNone)
	c.FillRect(inv.X+rightEyeX, inv.Y+eyeOffsetY, eyeSize, eyeSize, draw.ColorNone)
}
