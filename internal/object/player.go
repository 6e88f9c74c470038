package object

import (
	"time"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/physics"
)

// Player is the cannon at the bottom of the field.
type Player struct {
	X, Y          float64       // Top-left corner
	Width, Height float64       // Size
	Speed         float64       // Horizontal units per frame
	ShootCooldown time.Duration // Time until the next shot is allowed; may dip below zero
}

// NewPlayer creates a player centered horizontally near the bottom of the screen.
func NewPlayer(screen Screen) Player {
	return Player{
		X:      screen.Width/2 - config.PlayerWidth/2,
		Y:      screen.Height - config.PlayerBottomMargin,
		Width:  config.PlayerWidth,
		Height: config.PlayerHeight,
		Speed:  config.PlayerSpeed,
	}
}

// Bounds returns the player's bounding box.
func (p Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Move applies horizontal input and keeps the player inside the screen.
// Left and right are applied independently, so holding both cancels out.
func (p *Player) Move(left, right bool, screen Screen) {
	if left {
		p.X -= p.Speed
	}
	if right {
		p.X += p.Speed
	}
	p.X = physics.Clamp(p.X, 0, screen.Width-p.Width)
}

// Cool counts the shoot cooldown down by dt. The timer only runs while positive.
func (p *Player) Cool(dt time.Duration) {
	if p.ShootCooldown > 0 {
		p.ShootCooldown -= dt
	}
}

// CanShoot reports whether the cooldown has expired.
func (p Player) CanShoot() bool {
	return p.ShootCooldown <= 0
}

// Shoot returns a new bullet leaving the player's nose and restarts the cooldown.
func (p *Player) Shoot() Projectile {
	p.ShootCooldown = config.PlayerShootCooldown
	return NewPlayerBullet(p.Bounds().CenterX(), p.Y)
}
