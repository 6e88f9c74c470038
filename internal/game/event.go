package game

// EventKind identifies what happened during a frame.
type EventKind int

const (
	EventPlayerFired EventKind = iota
	EventEnemyFired
	EventInvaderKilled
	EventPlayerHit
	EventGameOver
	EventGameClear
)

func (k EventKind) String() string {
	switch k {
	case EventPlayerFired:
		return "playerFired"
	case EventEnemyFired:
		return "enemyFired"
	case EventInvaderKilled:
		return "invaderKilled"
	case EventPlayerHit:
		return "playerHit"
	case EventGameOver:
		return "gameOver"
	case EventGameClear:
		return "gameClear"
	default:
		return "unknown"
	}
}

// EndReason explains a game-over.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonOutOfLives
	ReasonInvaded
)

func (r EndReason) String() string {
	switch r {
	case ReasonOutOfLives:
		return "out of lives"
	case ReasonInvaded:
		return "invaders reached the player"
	default:
		return ""
	}
}

// Event is a single outcome raised by Step.
type Event struct {
	Kind    EventKind
	Invader int       // Grid index for EventInvaderKilled and EventEnemyFired
	Points  int       // Score gained, EventInvaderKilled only
	Score   int       // Score after the event
	Lives   int       // Lives after the event
	Reason  EndReason // EventGameOver only
}

// Terminal reports whether the event ends the round.
func (e Event) Terminal() bool {
	return e.Kind == EventGameOver || e.Kind == EventGameClear
}
