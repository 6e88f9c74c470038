// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - logical coordinates used by the simulation.
// Front-ends scale this to whatever surface they draw on.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Player
const (
	PlayerWidth         = 50
	PlayerHeight        = 40
	PlayerBottomMargin  = 60 // Distance from the bottom of the field to the player's top edge
	PlayerSpeed         = 5  // Units per frame
	PlayerShootCooldown = 300 * time.Millisecond
	InitialLives        = 3
	InitialLevel        = 1
)

// Projectiles. Speeds are units per frame, not time-integrated.
const (
	BulletWidth       = 4
	BulletHeight      = 10
	PlayerBulletSpeed = 8
	EnemyBulletSpeed  = 3
)

// Invader formation
const (
	InvaderRows         = 5
	InvaderCols         = 10
	InvaderWidth        = 40
	InvaderHeight       = 30
	InvaderStartX       = 50
	InvaderStartY       = 50
	InvaderSpacing      = 60
	InvaderFastRows     = 2 // Top rows that are the fast type
	InvaderStep         = 20
	InvaderDropDistance = 20
	InvaderMoveInterval = 500 * time.Millisecond
	InvaderShootPeriod  = 1000 * time.Millisecond
)

// Scoring
const (
	ScoreNormalInvader = 10
	ScoreFastInvader   = 20
)

// Leaderboard
const (
	TopScoreCount     = 5
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Terminal rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxTermWidth    = 160 // Columns; larger terminals render centered with a border
	MaxTermHeight   = 60  // Rows
)

// Round flow
const (
	RestartDelaySeconds = 1.0 // Terminal screens ignore restart keys this long
	ScorePopupSeconds   = 0.6 // How long a "+N" label stays where an invader died

	// MaxFrameDelta caps the frame gap the terminal driver hands to game.Step,
	// so a stalled connection resumes with one ordinary frame.
	// The simulation itself accepts any non-negative elapsed time unclamped.
	MaxFrameDelta = 100 * time.Millisecond
)
