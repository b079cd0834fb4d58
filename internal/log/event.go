package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventGameStart EventType = iota
	EventStarterChosen
	EventDeal
	EventReveal
	EventTeamAdd
	EventTeamReplace
	EventSkip
	EventGameOver
	EventReset
)

func (e EventType) String() string {
	switch e {
	case EventGameStart:
		return "GameStart"
	case EventStarterChosen:
		return "StarterChosen"
	case EventDeal:
		return "Deal"
	case EventReveal:
		return "Reveal"
	case EventTeamAdd:
		return "TeamAdd"
	case EventTeamReplace:
		return "TeamReplace"
	case EventSkip:
		return "Skip"
	case EventGameOver:
		return "GameOver"
	case EventReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a play session.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Attempt int       // attempt counter at the time of the event
	Phase   string    // game phase name (e.g. "playing")
	Type    EventType // event type
	Line    string    // evolution line name (if applicable)
	Details string    // human-readable detail string
}
