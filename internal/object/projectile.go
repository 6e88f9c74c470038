package object

import (
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/physics"
)

// Projectile is a bullet fired by the player or by an invader.
type Projectile struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	VY            float64 // Units per frame; negative travels up
}

// NewPlayerBullet creates an upward bullet horizontally centered on centerX.
func NewPlayerBullet(centerX, y float64) Projectile {
	return Projectile{
		X:      centerX - config.BulletWidth/2,
		Y:      y,
		Width:  config.BulletWidth,
		Height: config.BulletHeight,
		VY:     -config.PlayerBulletSpeed,
	}
}

// NewEnemyBullet creates a downward bullet horizontally centered on centerX.
func NewEnemyBullet(centerX, y float64) Projectile {
	return Projectile{
		X:      centerX - config.BulletWidth/2,
		Y:      y,
		Width:  config.BulletWidth,
		Height: config.BulletHeight,
		VY:     config.EnemyBulletSpeed,
	}
}

// Bounds returns the projectile's bounding box.
func (p Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Advance moves the projectile by one frame.
func (p *Projectile) Advance() {
	p.Y += p.VY
}

// AboveTop reports whether the projectile has fully left through the top edge.
func (p Projectile) AboveTop() bool {
	return p.Y+p.Height < 0
}

// BelowBottom reports whether the projectile has fully left through the bottom edge.
func (p Projectile) BelowBottom(screen Screen) bool {
	return p.Y >= screen.Height
}
