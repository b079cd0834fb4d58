package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/game"
	"github.com/peterkuimelis/pokedraft/internal/log"
)

// GameSession holds the state of a single MCP game session. One stdio
// process drives at most one game at a time, so a singleton is enough.
type GameSession struct {
	game    *game.Game
	logger  *log.MemoryLogger
	starter *dex.EvolutionLine
	drained int // events already reported to the agent
}

// NewGameSession starts a session for the given game slug.
func NewGameSession(dataDir, slug string, seed int64) (*GameSession, error) {
	gv := dex.GetGameVersion(slug)
	if gv == nil {
		return nil, fmt.Errorf("unknown game %q", slug)
	}
	generation := dex.GenerationForGame(*gv)
	if generation == nil {
		return nil, fmt.Errorf("game %q has no generation", slug)
	}
	pool, err := dex.LoadDataset(dataDir, slug)
	if err != nil {
		return nil, err
	}

	logger := log.NewMemoryLogger()
	g := game.New(game.Config{Logger: logger, Seed: seed})
	if err := g.StartGame(*generation, *gv, pool); err != nil {
		return nil, err
	}
	starter, err := g.DrawStarter()
	if err != nil {
		return nil, err
	}
	return &GameSession{game: g, logger: logger, starter: &starter}, nil
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events []string   `json:"events"`
	State  *StateView `json:"state"`
}

// StateView is the game state as presented to the agent.
type StateView struct {
	Phase           string              `json:"phase"`
	Game            string              `json:"game,omitempty"`
	Team            []dex.EvolutionLine `json:"team"`
	Attempts        int                 `json:"attempts"`
	Cards           []dex.EvolutionLine `json:"cards"`
	RevealedIndex   int                 `json:"revealedIndex"`
	Coverage        int                 `json:"coverage"`
	PoolSize        int                 `json:"poolSize"`
	ExcludedLineIDs []int               `json:"excludedLineIds"`

	Starter            *dex.EvolutionLine `json:"starter,omitempty"`
	Scenario           string             `json:"scenario,omitempty"`
	ReplaceableIndices []int              `json:"replaceableIndices,omitempty"`
	GameOver           bool               `json:"gameOver"`
}

func (s *GameSession) gameOver() bool {
	return s.game.Phase() == game.PhaseGameOver
}

// respond builds the tool response: new events since the last call plus a
// fresh state view.
func (s *GameSession) respond() string {
	events := s.logger.Events()
	var lines []string
	for _, e := range events[s.drained:] {
		lines = append(lines, log.FormatEvent(e))
	}
	s.drained = len(events)
	if lines == nil {
		lines = []string{}
	}

	snap := s.game.Snapshot()
	view := &StateView{
		Phase:           snap.Phase.String(),
		Team:            snap.Team,
		Attempts:        snap.Attempts,
		Cards:           snap.Cards,
		RevealedIndex:   snap.RevealedIndex,
		Coverage:        game.TypeCoverage(snap.Team),
		PoolSize:        snap.PoolSize,
		ExcludedLineIDs: snap.ExcludedLineIDs,
		Starter:         s.starter,
		GameOver:        snap.Phase == game.PhaseGameOver,
	}
	if snap.GameVersion != nil {
		view.Game = snap.GameVersion.Slug
	}
	if revealed := snap.Revealed(); revealed != nil {
		view.Scenario = string(game.GetActionScenario(snap.Team, *revealed))
		view.ReplaceableIndices = game.ReplaceableIndices(snap.Team)
	}
	if view.Team == nil {
		view.Team = []dex.EvolutionLine{}
	}
	if view.Cards == nil {
		view.Cards = []dex.EvolutionLine{}
	}

	data, err := json.MarshalIndent(ToolResponse{Events: lines, State: view}, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
