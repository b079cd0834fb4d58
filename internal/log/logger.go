package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 18 chars for alignment
	for len(phase) < 18 {
		phase += " "
	}
	return fmt.Sprintf("A%-2d %s| %s", e.Attempt, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewGameStartEvent(phase, game string) GameEvent {
	return GameEvent{
		Phase:   phase,
		Type:    EventGameStart,
		Details: fmt.Sprintf("=== New game: %s ===", game),
	}
}

func NewStarterChosenEvent(phase string, attempt int, line string) GameEvent {
	return GameEvent{
		Attempt: attempt,
		Phase:   phase,
		Type:    EventStarterChosen,
		Line:    line,
		Details: fmt.Sprintf("Starter joins the team: %s", line),
	}
}

func NewDealEvent(phase string, attempt, count int) GameEvent {
	return GameEvent{
		Attempt: attempt,
		Phase:   phase,
		Type:    EventDeal,
		Details: fmt.Sprintf("Dealt %d cards", count),
	}
}

func NewRevealEvent(phase string, attempt, index int, line string) GameEvent {
	return GameEvent{
		Attempt: attempt,
		Phase:   phase,
		Type:    EventReveal,
		Line:    line,
		Details: fmt.Sprintf("Card %d revealed: %s", index+1, line),
	}
}

func NewTeamAddEvent(phase string, attempt int, line string, teamSize int) GameEvent {
	return GameEvent{
		Attempt: attempt,
		Phase:   phase,
		Type:    EventTeamAdd,
		Line:    line,
		Details: fmt.Sprintf("%s joins the team (%d/6)", line, teamSize),
	}
}

func NewTeamReplaceEvent(phase string, attempt int, newLine, oldLine string) GameEvent {
	return GameEvent{
		Attempt: attempt,
		Phase:   phase,
		Type:    EventTeamReplace,
		Line:    newLine,
		Details: fmt.Sprintf("%s replaces %s (released)", newLine, oldLine),
	}
}

func NewSkipEvent(phase string, attempt int, line string) GameEvent {
	return GameEvent{
		Attempt: attempt,
		Phase:   phase,
		Type:    EventSkip,
		Line:    line,
		Details: fmt.Sprintf("%s skipped", line),
	}
}

func NewGameOverEvent(phase string, attempt, teamSize int, reason string) GameEvent {
	return GameEvent{
		Attempt: attempt,
		Phase:   phase,
		Type:    EventGameOver,
		Details: fmt.Sprintf("Game over after %d attempts, team of %d (%s)", attempt, teamSize, reason),
	}
}

func NewResetEvent() GameEvent {
	return GameEvent{
		Type:    EventReset,
		Details: "Game reset",
	}
}
