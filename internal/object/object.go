// Package object defines the plain entity records moved around by the simulation.
package object

import "github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/physics"

// Screen describes the logical playfield dimensions.
type Screen struct {
	Width  float64
	Height float64
}

// Contains reports whether r lies fully inside the screen.
func (s Screen) Contains(r physics.Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= s.Width && r.Bottom() <= s.Height
}

// CountAlive returns the number of invaders that have not been hit.
func CountAlive(invaders []Invader) int {
	n := 0
	for i := range invaders {
		if invaders[i].Alive {
			n++
		}
	}
	return n
}

// AliveIndices appends the index of every alive invader to dst, in grid order.
func AliveIndices(dst []int, invaders []Invader) []int {
	for i := range invaders {
		if invaders[i].Alive {
			dst = append(dst, i)
		}
	}
	return dst
}
