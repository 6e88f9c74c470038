package game_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/game"
	"github.com/Shirashoji/invader-game-created-by-Copilot-claude-sonnet-4/internal/object"
)

const frame = 16 * time.Millisecond

// fixedRand always picks the same position among the candidates.
type fixedRand struct {
	pick  int
	calls int
}

func (r *fixedRand) Intn(n int) int {
	r.calls++
	return r.pick % n
}

func newRound() game.State {
	return game.NewRound(game.DefaultScreen)
}

func step(t *testing.T, s game.State, in game.Input, dt time.Duration) (game.State, []game.Event) {
	t.Helper()
	next, events, err := game.Step(s, in, dt, &fixedRand{})
	require.NoError(t, err)
	return next, events
}

func kinds(events []game.Event) []game.EventKind {
	out := make([]game.EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func countKind(events []game.Event, kind game.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewRound(t *testing.T) {
	s := newRound()

	assert.Equal(t, game.PhasePlaying, s.Phase)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 3, s.Lives)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 1, s.Direction)
	assert.Equal(t, 20.0, s.DropDistance)
	assert.Zero(t, s.MoveTimer)
	assert.Zero(t, s.ShootTimer)
	assert.Empty(t, s.Bullets)
	assert.Empty(t, s.EnemyBullets)

	assert.Equal(t, 375.0, s.Player.X)
	assert.Equal(t, 540.0, s.Player.Y)

	require.Len(t, s.Invaders, 50)
	assert.Equal(t, 50, s.AliveInvaders())
	for i, inv := range s.Invaders {
		row, col := i/10, i%10
		assert.Equal(t, float64(50+col*60), inv.X, "invader %d", i)
		assert.Equal(t, float64(50+row*60), inv.Y, "invader %d", i)
		if row < 2 {
			assert.Equal(t, object.InvaderFast, inv.Type, "invader %d", i)
		} else {
			assert.Equal(t, object.InvaderNormal, inv.Type, "invader %d", i)
		}
	}
}

func TestStep_InvadersMarchAfterInterval(t *testing.T) {
	s := newRound()
	start := newRound()

	var all []game.Event
	for i := 0; i < 31; i++ {
		var events []game.Event
		s, events = step(t, s, game.Input{}, frame)
		all = append(all, events...)
	}
	assert.Equal(t, 496*time.Millisecond, s.MoveTimer)
	for i := range s.Invaders {
		assert.Equal(t, start.Invaders[i].X, s.Invaders[i].X, "no move before the interval elapses")
	}

	s, events := step(t, s, game.Input{}, frame)
	all = append(all, events...)

	assert.Zero(t, s.MoveTimer, "move timer wraps to zero")
	assert.Equal(t, 1, s.Direction)
	for i := range s.Invaders {
		assert.Equal(t, start.Invaders[i].X+20, s.Invaders[i].X, "invader %d", i)
		assert.Equal(t, start.Invaders[i].Y, s.Invaders[i].Y, "invader %d", i)
	}
	assert.Equal(t, 0, s.Score)
	assert.Empty(t, all)
}

func TestStep_LongGapIsNotClamped(t *testing.T) {
	s, _ := step(t, newRound(), game.Input{}, 400*time.Millisecond)

	assert.Equal(t, 400*time.Millisecond, s.MoveTimer)
	assert.Equal(t, 400*time.Millisecond, s.ShootTimer)
}

func TestStep_BulletKillsFirstInvaderOnly(t *testing.T) {
	s := newRound()
	// Tall bullet overlapping invader 0 (fast, row 0) and invader 10 (fast, row 1).
	s.Bullets = append(s.Bullets, object.Projectile{X: 60, Y: 60, Width: 4, Height: 100, VY: -8})

	s, events := step(t, s, game.Input{}, frame)

	assert.False(t, s.Invaders[0].Alive)
	assert.True(t, s.Invaders[10].Alive)
	assert.Equal(t, 49, s.AliveInvaders())
	assert.Empty(t, s.Bullets)
	assert.Equal(t, 20, s.Score)
	require.Equal(t, []game.EventKind{game.EventInvaderKilled}, kinds(events))
	assert.Equal(t, 0, events[0].Invader)
	assert.Equal(t, 20, events[0].Points)
	assert.Equal(t, 20, events[0].Score)
}

func TestStep_ScoreByInvaderType(t *testing.T) {
	tests := []struct {
		name    string
		invader int
		want    int
	}{
		{"fast top row", 3, 20},
		{"fast second row", 15, 20},
		{"normal third row", 20, 10},
		{"normal bottom row", 49, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRound()
			inv := s.Invaders[tt.invader]
			s.Bullets = append(s.Bullets, object.NewPlayerBullet(inv.X+inv.Width/2, inv.Y+inv.Height))

			s, _ = step(t, s, game.Input{}, frame)

			assert.False(t, s.Invaders[tt.invader].Alive)
			assert.Equal(t, tt.want, s.Score)
			assert.Empty(t, s.Bullets)
		})
	}
}

func TestStep_EachBulletHitsOnce(t *testing.T) {
	s := newRound()
	for _, idx := range []int{0, 1, 25} {
		inv := s.Invaders[idx]
		s.Bullets = append(s.Bullets, object.NewPlayerBullet(inv.X+inv.Width/2, inv.Y+inv.Height))
	}
	// A bullet that overlaps nothing survives.
	s.Bullets = append(s.Bullets, object.NewPlayerBullet(20, 400))

	s, events := step(t, s, game.Input{}, frame)

	assert.Equal(t, 3, countKind(events, game.EventInvaderKilled))
	assert.Equal(t, 20+20+10, s.Score)
	require.Len(t, s.Bullets, 1)
	assert.Equal(t, 392.0, s.Bullets[0].Y)
}

func TestStep_EnemyBulletHitsPlayer(t *testing.T) {
	s := newRound()
	s.EnemyBullets = append(s.EnemyBullets, object.NewEnemyBullet(400, 545))

	s, events := step(t, s, game.Input{}, frame)

	assert.Equal(t, 2, s.Lives)
	assert.Equal(t, game.PhasePlaying, s.Phase)
	assert.Empty(t, s.EnemyBullets)
	assert.Equal(t, []game.EventKind{game.EventPlayerHit}, kinds(events))
	assert.Equal(t, 2, events[0].Lives)
}

func TestStep_OneLifeLostPerFrame(t *testing.T) {
	s := newRound()
	s.EnemyBullets = append(s.EnemyBullets,
		object.NewEnemyBullet(390, 545),
		object.NewEnemyBullet(410, 550),
	)

	s, _ = step(t, s, game.Input{}, frame)

	assert.Equal(t, 2, s.Lives)
	require.Len(t, s.EnemyBullets, 1, "only the newest bullet is consumed")
	assert.Equal(t, 388.0, s.EnemyBullets[0].X)
}

func TestStep_LastLifeEndsRound(t *testing.T) {
	s := newRound()
	s.Lives = 1
	s.EnemyBullets = append(s.EnemyBullets, object.NewEnemyBullet(400, 545))

	s, events := step(t, s, game.Input{}, frame)

	assert.Equal(t, 0, s.Lives)
	assert.Equal(t, game.PhaseGameOver, s.Phase)
	assert.Equal(t, []game.EventKind{game.EventPlayerHit, game.EventGameOver}, kinds(events))
	assert.Equal(t, game.ReasonOutOfLives, events[1].Reason)
}

func TestStep_InvasionEndsRound(t *testing.T) {
	s := newRound()
	s.Invaders[45].Y = s.Player.Y - s.Invaders[45].Height

	s, events := step(t, s, game.Input{}, frame)

	assert.Equal(t, game.PhaseGameOver, s.Phase)
	assert.Equal(t, 3, s.Lives, "invasion ends the round regardless of lives")
	require.Equal(t, []game.EventKind{game.EventGameOver}, kinds(events))
	assert.Equal(t, game.ReasonInvaded, events[0].Reason)
}

func TestStep_InvasionIgnoresDeadInvaders(t *testing.T) {
	s := newRound()
	s.Invaders[45].Y = s.Player.Y
	s.Invaders[45].Alive = false

	s, _ = step(t, s, game.Input{}, frame)

	assert.Equal(t, game.PhasePlaying, s.Phase)
}

func TestStep_AllInvadersDownClearsRound(t *testing.T) {
	s := newRound()
	for i := range s.Invaders {
		s.Invaders[i].Alive = false
	}

	s, events := step(t, s, game.Input{}, frame)

	assert.Equal(t, game.PhaseGameClear, s.Phase)
	assert.Equal(t, []game.EventKind{game.EventGameClear}, kinds(events))
}

func TestStep_LastKillClearsRound(t *testing.T) {
	s := newRound()
	for i := range s.Invaders {
		s.Invaders[i].Alive = i == 7
	}
	inv := s.Invaders[7]
	s.Bullets = append(s.Bullets, object.NewPlayerBullet(inv.X+inv.Width/2, inv.Y+inv.Height))

	s, events := step(t, s, game.Input{}, frame)

	assert.Equal(t, game.PhaseGameClear, s.Phase)
	assert.Equal(t, 20, s.Score)
	assert.Equal(t, []game.EventKind{game.EventInvaderKilled, game.EventGameClear}, kinds(events))
}

func TestStep_GameOverTakesPrecedenceOverClear(t *testing.T) {
	s := newRound()
	s.Lives = 1
	for i := range s.Invaders {
		s.Invaders[i].Alive = i == 0
	}
	inv := s.Invaders[0]
	s.Bullets = append(s.Bullets, object.NewPlayerBullet(inv.X+inv.Width/2, inv.Y+inv.Height))
	s.EnemyBullets = append(s.EnemyBullets, object.NewEnemyBullet(400, 545))

	s, events := step(t, s, game.Input{}, frame)

	assert.Equal(t, game.PhaseGameOver, s.Phase)
	assert.Equal(t, 0, s.AliveInvaders())
	assert.Equal(t, 1, countKind(events, game.EventGameOver))
	assert.Zero(t, countKind(events, game.EventGameClear))
}

func TestStep_PlayerMovement(t *testing.T) {
	tests := []struct {
		name  string
		in    game.Input
		steps int
		want  float64
	}{
		{"left", game.Input{Left: true}, 3, 360},
		{"right", game.Input{Right: true}, 3, 390},
		{"both cancel", game.Input{Left: true, Right: true}, 3, 375},
		{"clamped left", game.Input{Left: true}, 200, 0},
		{"clamped right", game.Input{Right: true}, 200, 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRound()
			for i := 0; i < tt.steps; i++ {
				s, _ = step(t, s, tt.in, 0)
			}
			assert.Equal(t, tt.want, s.Player.X)
		})
	}
}

func TestStep_FireCooldown(t *testing.T) {
	s := newRound()
	fire := game.Input{Fire: true}

	s, events := step(t, s, fire, frame)
	require.Len(t, s.Bullets, 1)
	assert.Equal(t, []game.EventKind{game.EventPlayerFired}, kinds(events))
	assert.Equal(t, 398.0, s.Bullets[0].X, "bullet is centered on the player")
	assert.Equal(t, 532.0, s.Bullets[0].Y, "bullet moves in the frame it is fired")
	assert.Equal(t, 300*time.Millisecond, s.Player.ShootCooldown)

	for i := 0; i < 18; i++ {
		s, _ = step(t, s, fire, frame)
	}
	assert.Len(t, s.Bullets, 1, "still cooling down")

	s, _ = step(t, s, fire, frame)
	assert.Len(t, s.Bullets, 2)
}

func TestStep_CooldownOnlyRunsWhilePositive(t *testing.T) {
	s := newRound()
	s.Player.ShootCooldown = 10 * time.Millisecond

	s, _ = step(t, s, game.Input{}, frame)
	assert.Equal(t, -6*time.Millisecond, s.Player.ShootCooldown)

	s, _ = step(t, s, game.Input{}, frame)
	assert.Equal(t, -6*time.Millisecond, s.Player.ShootCooldown)
}

func TestStep_ProjectilesPrunedOffField(t *testing.T) {
	s := newRound()
	s.Bullets = append(s.Bullets,
		object.Projectile{X: 5, Y: -5, Width: 4, Height: 10, VY: -8},
		object.Projectile{X: 5, Y: 0, Width: 4, Height: 10, VY: -8},
	)
	s.EnemyBullets = append(s.EnemyBullets,
		object.Projectile{X: 5, Y: 597, Width: 4, Height: 10, VY: 3},
		object.Projectile{X: 5, Y: 590, Width: 4, Height: 10, VY: 3},
	)

	s, _ = step(t, s, game.Input{}, frame)

	require.Len(t, s.Bullets, 1)
	assert.Equal(t, -8.0, s.Bullets[0].Y)
	require.Len(t, s.EnemyBullets, 1)
	assert.Equal(t, 593.0, s.EnemyBullets[0].Y)
}

func TestStep_EdgeBounce(t *testing.T) {
	tests := []struct {
		name      string
		direction int
		x         float64
		wantDir   int
		wantX     float64
	}{
		{"right edge", 1, 760, -1, 740},
		{"left edge", -1, 0, 1, 20},
		{"heading away from left edge", 1, 0, 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRound()
			for i := range s.Invaders {
				s.Invaders[i].Alive = i == 0 || i == 1
			}
			s.Invaders[0].X = tt.x
			s.Invaders[1].X = 400
			s.Direction = tt.direction
			s.MoveTimer = 500 * time.Millisecond
			deadY := s.Invaders[2].Y

			s, _ = step(t, s, game.Input{}, time.Millisecond)

			assert.Equal(t, tt.wantDir, s.Direction)
			assert.Equal(t, tt.wantX, s.Invaders[0].X)
			wantY := 50.0
			if tt.wantDir != tt.direction {
				wantY += 20
			}
			assert.Equal(t, wantY, s.Invaders[0].Y)
			assert.Equal(t, wantY, s.Invaders[1].Y)
			assert.Equal(t, deadY, s.Invaders[2].Y, "dead invaders do not move")
		})
	}
}

func TestStep_SingleReversalPerTick(t *testing.T) {
	s := newRound()
	for i := range s.Invaders {
		s.Invaders[i].X = 760
	}
	s.MoveTimer = 500 * time.Millisecond

	s, _ = step(t, s, game.Input{}, time.Millisecond)

	assert.Equal(t, -1, s.Direction)
	assert.Equal(t, 740.0, s.Invaders[0].X)
	assert.Equal(t, 70.0, s.Invaders[0].Y, "dropped exactly once")
}

func TestStep_EnemyShootPicksAliveInvader(t *testing.T) {
	s := newRound()
	for i := 0; i < 5; i++ {
		s.Invaders[i].Alive = false
	}
	s.ShootTimer = 1000 * time.Millisecond
	rng := &fixedRand{pick: 0}

	next, events, err := game.Step(s, game.Input{}, time.Millisecond, rng)
	require.NoError(t, err)

	assert.Equal(t, 1, rng.calls)
	assert.Zero(t, next.ShootTimer)
	require.Len(t, next.EnemyBullets, 1)
	assert.Equal(t, 368.0, next.EnemyBullets[0].X)
	assert.Equal(t, 83.0, next.EnemyBullets[0].Y)
	require.Equal(t, []game.EventKind{game.EventEnemyFired}, kinds(events))
	assert.Equal(t, 5, events[0].Invader)
}

func TestStep_EnemyShootSkippedWhenNoneAlive(t *testing.T) {
	s := newRound()
	for i := range s.Invaders {
		s.Invaders[i].Alive = false
	}
	s.ShootTimer = 1000 * time.Millisecond
	rng := &fixedRand{}

	next, _, err := game.Step(s, game.Input{}, time.Millisecond, rng)
	require.NoError(t, err)

	assert.Zero(t, rng.calls)
	assert.Empty(t, next.EnemyBullets)
}

func TestStep_DoesNotModifyInput(t *testing.T) {
	s := newRound()
	inv := s.Invaders[0]
	s.Bullets = append(s.Bullets, object.NewPlayerBullet(inv.X+inv.Width/2, inv.Y+inv.Height))
	before := s.Clone()

	_, _, err := game.Step(s, game.Input{Fire: true, Left: true}, 600*time.Millisecond, &fixedRand{})
	require.NoError(t, err)

	assert.Equal(t, before, s)
}

func TestStep_Preconditions(t *testing.T) {
	t.Run("negative elapsed", func(t *testing.T) {
		s := newRound()
		next, events, err := game.Step(s, game.Input{}, -time.Millisecond, &fixedRand{})
		assert.ErrorIs(t, err, game.ErrNegativeElapsed)
		assert.Nil(t, events)
		assert.Equal(t, s, next)
	})

	t.Run("not playing", func(t *testing.T) {
		s := game.NewState(game.DefaultScreen)
		_, _, err := game.Step(s, game.Input{}, frame, &fixedRand{})
		assert.ErrorIs(t, err, game.ErrNotPlaying)
	})

	t.Run("terminal phase", func(t *testing.T) {
		s := newRound()
		s.Phase = game.PhaseGameOver
		_, _, err := game.Step(s, game.Input{}, frame, &fixedRand{})
		assert.ErrorIs(t, err, game.ErrNotPlaying)
	})

	t.Run("nan position", func(t *testing.T) {
		s := newRound()
		s.Player.X = math.NaN()
		_, _, err := game.Step(s, game.Input{}, frame, &fixedRand{})
		assert.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("nil random source", func(t *testing.T) {
		_, _, err := game.Step(newRound(), game.Input{}, frame, nil)
		assert.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("zero elapsed is valid", func(t *testing.T) {
		s := newRound()
		next, events, err := game.Step(s, game.Input{}, 0, &fixedRand{})
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Equal(t, s.Invaders, next.Invaders)
		assert.Zero(t, next.MoveTimer)
	})
}

// TestStep_Invariants drives random rounds and checks the properties that must
// hold across any sequence of frames.
func TestStep_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		src := rand.New(rand.NewSource(seed))
		s := newRound()

		for i := 0; i < 4000 && s.Phase == game.PhasePlaying; i++ {
			in := game.Input{
				Left:  src.Intn(3) == 0,
				Right: src.Intn(3) == 0,
				Fire:  src.Intn(2) == 0,
			}
			dt := time.Duration(src.Intn(40)) * time.Millisecond

			next, events, err := game.Step(s, in, dt, src)
			require.NoError(t, err)

			gained := 0
			terminal := 0
			for _, e := range events {
				switch e.Kind {
				case game.EventInvaderKilled:
					require.Contains(t, []int{10, 20}, e.Points)
					gained += e.Points
				case game.EventGameOver, game.EventGameClear:
					terminal++
				}
			}
			require.Equal(t, s.Score+gained, next.Score, "score changes only by kills")
			require.GreaterOrEqual(t, next.Score, s.Score)
			require.LessOrEqual(t, next.Lives, s.Lives)
			require.GreaterOrEqual(t, next.Lives, 0)
			require.LessOrEqual(t, next.AliveInvaders(), s.AliveInvaders())
			require.Len(t, next.Invaders, 50)
			if next.Lives == 0 {
				require.Equal(t, game.PhaseGameOver, next.Phase)
			}
			if next.Phase.Terminal() {
				require.Equal(t, 1, terminal, "exactly one terminal event")
			} else {
				require.Zero(t, terminal)
			}
			for _, b := range next.Bullets {
				require.False(t, b.AboveTop())
			}
			for _, b := range next.EnemyBullets {
				require.False(t, b.BelowBottom(next.Screen))
			}
			require.GreaterOrEqual(t, next.Player.X, 0.0)
			require.LessOrEqual(t, next.Player.X, 750.0)

			s = next
		}
	}
}
