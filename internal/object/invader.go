package object

import (
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/physics"
)

// InvaderType represents the kind of invader.
type InvaderType int

const (
	InvaderNormal InvaderType = iota
	InvaderFast
)

func (t InvaderType) String() string {
	switch t {
	case InvaderFast:
		return "fast"
	default:
		return "normal"
	}
}

// Points returns the score awarded for destroying an invader of this type.
func (t InvaderType) Points() int {
	if t == InvaderFast {
		return config.ScoreFastInvader
	}
	return config.ScoreNormalInvader
}

// Invader is one member of the formation. Hit invaders stay in the slice with
// Alive cleared so that grid order never changes during a round.
type Invader struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Speed multiplier; fixed at 1 for the single level
	Alive         bool
	Type          InvaderType
}

// NewFormation builds the full invader grid in row-major order.
func NewFormation() []Invader {
	invaders := make([]Invader, 0, config.InvaderRows*config.InvaderCols)
	for row := 0; row < config.InvaderRows; row++ {
		typ := InvaderNormal
		if row < config.InvaderFastRows {
			typ = InvaderFast
		}
		for col := 0; col < config.InvaderCols; col++ {
			invaders = append(invaders, Invader{
				X:      float64(config.InvaderStartX + col*config.InvaderSpacing),
				Y:      float64(config.InvaderStartY + row*config.InvaderSpacing),
				Width:  config.InvaderWidth,
				Height: config.InvaderHeight,
				Speed:  1,
				Alive:  true,
				Type:   typ,
			})
		}
	}
	return invaders
}

// Bounds returns the invader's bounding box.
func (i Invader) Bounds() physics.Rect {
	return physics.Rect{X: i.X, Y: i.Y, Width: i.Width, Height: i.Height}
}

// AtEdge reports whether the invader touches the screen edge it is heading towards.
func (i Invader) AtEdge(direction int, screen Screen) bool {
	return (direction < 0 && i.X <= 0) || (direction > 0 && i.X >= screen.Width-i.Width)
}

// Shoot returns an enemy bullet leaving the invader's bottom edge.
func (i Invader) Shoot() Projectile {
	b := i.Bounds()
	return NewEnemyBullet(b.CenterX(), b.Bottom())
}
