package game

import (
	"math/rand"
	"testing"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/log"
)

// line builds a single-stage evolution line for tests.
func line(id int, name string, types ...dex.Type) dex.EvolutionLine {
	return dex.EvolutionLine{
		LineID: id,
		Stages: []dex.Stage{{
			ID:        id,
			Name:      name,
			Types:     types,
			Stage:     0,
			Locations: []string{},
		}},
		Types: types,
	}
}

// starterLine builds a single-stage starter line.
func starterLine(id int, name string, types ...dex.Type) dex.EvolutionLine {
	l := line(id, name, types...)
	l.IsStarter = true
	return l
}

func testRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// startPlaying builds a game, starts it on the given pool and confirms the
// pool's first starter line, returning the game in the playing phase.
func startPlaying(t *testing.T, pool []dex.EvolutionLine, seed int64) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g := New(Config{Logger: logger, Seed: seed})

	generation := dex.Generation{ID: 1, Name: "generation-i", DisplayName: "Generation I", Region: "Kanto"}
	version := dex.GameVersion{Slug: "test-game", DisplayName: "Test Game", GenerationID: 1, Region: "Kanto"}
	if err := g.StartGame(generation, version, pool); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	starter, err := g.DrawStarter()
	if err != nil {
		t.Fatalf("DrawStarter: %v", err)
	}
	if err := g.ConfirmStarter(starter); err != nil {
		t.Fatalf("ConfirmStarter: %v", err)
	}
	return g, logger
}

// revealAndAdd flips the first card and adds it to the team, then deals a
// new round.
func revealAndAdd(t *testing.T, g *Game) {
	t.Helper()
	if err := g.RevealCard(0); err != nil {
		t.Fatalf("RevealCard: %v", err)
	}
	if err := g.AddToTeam(); err != nil {
		t.Fatalf("AddToTeam: %v", err)
	}
	if err := g.NewRound(); err != nil {
		t.Fatalf("NewRound: %v", err)
	}
}
