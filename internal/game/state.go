package game

import (
	"sort"

	"github.com/peterkuimelis/pokedraft/internal/dex"
)

// --- Phases ---

// Phase is the game's lifecycle phase. Progression is strictly linear;
// the only backward transition is a full reset.
type Phase int

const (
	PhasePickingGeneration Phase = iota
	PhaseStarterReveal
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePickingGeneration:
		return "picking-generation"
	case PhaseStarterReveal:
		return "starter-reveal"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

const (
	// MaxTeamSize is the team slot count.
	MaxTeamSize = 6
	// HandSize is how many cards a round deals.
	HandSize = 3
)

// Snapshot is a read-only copy of the game state. Rendering layers are a
// pure function of this; mutating a snapshot never affects the game.
type Snapshot struct {
	Phase       Phase
	Generation  *dex.Generation
	GameVersion *dex.GameVersion

	Team     []dex.EvolutionLine
	Attempts int

	// Cards is the currently dealt hand (at most HandSize lines).
	Cards []dex.EvolutionLine
	// RevealedIndex is the chosen card index within Cards, -1 if none.
	RevealedIndex int

	// ExcludedLineIDs are lines removed from future draws, sorted.
	ExcludedLineIDs []int

	// PoolSize is the full candidate pool size for the active game.
	PoolSize int
}

// Revealed returns the currently revealed line, or nil.
func (s Snapshot) Revealed() *dex.EvolutionLine {
	if s.RevealedIndex < 0 || s.RevealedIndex >= len(s.Cards) {
		return nil
	}
	return &s.Cards[s.RevealedIndex]
}

func (g *Game) snapshotExcluded() []int {
	ids := make([]int, 0, len(g.excluded))
	for id := range g.excluded {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Phase:           g.phase,
		Generation:      g.generation,
		GameVersion:     g.gameVersion,
		Team:            append([]dex.EvolutionLine(nil), g.team...),
		Attempts:        g.attempts,
		Cards:           append([]dex.EvolutionLine(nil), g.cards...),
		RevealedIndex:   g.revealed,
		ExcludedLineIDs: g.snapshotExcluded(),
		PoolSize:        len(g.pool),
	}
}
