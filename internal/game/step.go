package game

import (
	"slices"
	"time"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/loop/config"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/object"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/physics"
)

// Rand picks the invader that fires next. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Step advances a playing round by one frame.
//
// The sub-steps run in a fixed order: player, player bullets, invaders,
// enemy bullets, collisions, clear check. Each one sees the results of the
// ones before it. Once the round reaches a terminal phase the remaining
// sub-steps are skipped.
//
// prev is never modified. On a precondition failure Step returns prev
// unchanged together with the error.
func Step(prev State, in Input, dt time.Duration, rng Rand) (State, []Event, error) {
	if err := prev.validate(dt); err != nil {
		return prev, nil, err
	}
	if rng == nil {
		return prev, nil, ErrInvalidState
	}

	next := prev.Clone()
	f := frame{State: &next, rng: rng}

	f.updatePlayer(in, dt)
	f.updateBullets()
	f.updateInvaders(dt)
	f.updateEnemyBullets()
	f.checkCollisions()
	f.checkClear()

	return next, f.events, nil
}

// frame carries the state being mutated and the events raised during one Step.
type frame struct {
	*State
	rng    Rand
	events []Event
}

func (f *frame) emit(e Event) {
	e.Score = f.Score
	e.Lives = f.Lives
	f.events = append(f.events, e)
}

// end moves the round into a terminal phase. Only the first call has any effect.
func (f *frame) end(phase Phase, reason EndReason) {
	if f.Phase != PhasePlaying {
		return
	}
	f.Phase = phase
	if phase == PhaseGameClear {
		f.emit(Event{Kind: EventGameClear})
		return
	}
	f.emit(Event{Kind: EventGameOver, Reason: reason})
}

func (f *frame) playing() bool {
	return f.Phase == PhasePlaying
}

// updatePlayer applies movement, counts the cooldown down and fires.
func (f *frame) updatePlayer(in Input, dt time.Duration) {
	f.Player.Move(in.Left, in.Right, f.Screen)
	f.Player.Cool(dt)

	if in.Fire && f.Player.CanShoot() {
		f.Bullets = append(f.Bullets, f.Player.Shoot())
		f.emit(Event{Kind: EventPlayerFired})
	}
}

// updateBullets moves player bullets up and drops the ones that left the field.
func (f *frame) updateBullets() {
	kept := f.Bullets[:0]
	for _, b := range f.Bullets {
		b.Advance()
		if !b.AboveTop() {
			kept = append(kept, b)
		}
	}
	f.Bullets = kept
}

// updateInvaders runs the formation's march timer and its firing timer.
func (f *frame) updateInvaders(dt time.Duration) {
	f.MoveTimer += dt
	if f.MoveTimer > config.InvaderMoveInterval {
		f.MoveTimer = 0
		f.marchInvaders()
	}

	f.ShootTimer += dt
	if f.ShootTimer > config.InvaderShootPeriod {
		f.ShootTimer = 0
		f.enemyShoot()
	}
}

// marchInvaders performs one formation move: at most one bounce and drop, then a sideways step.
func (f *frame) marchInvaders() {
	for i := range f.Invaders {
		inv := &f.Invaders[i]
		if inv.Alive && inv.AtEdge(f.Direction, f.Screen) {
			f.Direction = -f.Direction
			for j := range f.Invaders {
				if f.Invaders[j].Alive {
					f.Invaders[j].Y += f.DropDistance
				}
			}
			break
		}
	}

	dx := float64(f.Direction * config.InvaderStep)
	for i := range f.Invaders {
		if f.Invaders[i].Alive {
			f.Invaders[i].X += dx * f.Invaders[i].Speed
		}
	}
}

// enemyShoot lets one uniformly chosen alive invader fire.
func (f *frame) enemyShoot() {
	alive := object.AliveIndices(nil, f.Invaders)
	if len(alive) == 0 {
		return
	}
	idx := alive[f.rng.Intn(len(alive))]
	f.EnemyBullets = append(f.EnemyBullets, f.Invaders[idx].Shoot())
	f.emit(Event{Kind: EventEnemyFired, Invader: idx})
}

// updateEnemyBullets moves invader bullets down and drops the ones that left the field.
func (f *frame) updateEnemyBullets() {
	kept := f.EnemyBullets[:0]
	for _, b := range f.EnemyBullets {
		b.Advance()
		if !b.BelowBottom(f.Screen) {
			kept = append(kept, b)
		}
	}
	f.EnemyBullets = kept
}

// checkCollisions resolves hits greedily in priority order:
// player bullets vs invaders, enemy bullets vs player, invasion line.
func (f *frame) checkCollisions() {
	f.checkBulletInvaderCollisions()
	if !f.playing() {
		return
	}
	f.checkEnemyBulletPlayerCollisions()
	if !f.playing() {
		return
	}
	f.checkInvasion()
}

// checkBulletInvaderCollisions scans bullets newest first. The first alive
// invader in grid order that a bullet overlaps is destroyed along with the bullet.
func (f *frame) checkBulletInvaderCollisions() {
	for i := len(f.Bullets) - 1; i >= 0; i-- {
		b := f.Bullets[i].Bounds()
		for j := range f.Invaders {
			inv := &f.Invaders[j]
			if !inv.Alive || !physics.Intersects(b, inv.Bounds()) {
				continue
			}
			inv.Alive = false
			f.Bullets = slices.Delete(f.Bullets, i, i+1)
			points := inv.Type.Points()
			f.Score += points
			f.emit(Event{Kind: EventInvaderKilled, Invader: j, Points: points})
			break
		}
	}
}

// checkEnemyBulletPlayerCollisions scans enemy bullets newest first.
// At most one bullet hits the player per frame.
func (f *frame) checkEnemyBulletPlayerCollisions() {
	player := f.Player.Bounds()
	for i := len(f.EnemyBullets) - 1; i >= 0; i-- {
		if !physics.Intersects(f.EnemyBullets[i].Bounds(), player) {
			continue
		}
		f.EnemyBullets = slices.Delete(f.EnemyBullets, i, i+1)
		if f.Lives > 0 {
			f.Lives--
		}
		f.emit(Event{Kind: EventPlayerHit})
		if f.Lives == 0 {
			f.end(PhaseGameOver, ReasonOutOfLives)
		}
		return
	}
}

// checkInvasion ends the round as soon as any alive invader's bottom edge reaches the player's row.
func (f *frame) checkInvasion() {
	for i := range f.Invaders {
		inv := &f.Invaders[i]
		if inv.Alive && inv.Bounds().Bottom() >= f.Player.Y {
			f.end(PhaseGameOver, ReasonInvaded)
			return
		}
	}
}

// checkClear ends the round once no invader is left standing.
func (f *frame) checkClear() {
	if !f.playing() {
		return
	}
	if object.CountAlive(f.Invaders) == 0 {
		f.end(PhaseGameClear, ReasonNone)
	}
}
