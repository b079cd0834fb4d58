package game

import (
	"fmt"
	"math/rand"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/log"
)

// Game drives a single play session: a deterministic state machine over an
// immutable per-game dataset. All commands are synchronous and
// non-blocking; illegal transitions return errors and leave the state
// untouched. Not safe for concurrent use; callers serialize access.
type Game struct {
	phase       Phase
	generation  *dex.Generation
	gameVersion *dex.GameVersion
	pool        []dex.EvolutionLine

	team     []dex.EvolutionLine
	attempts int
	cards    []dex.EvolutionLine
	revealed int
	excluded map[int]bool

	rng    *rand.Rand
	logger log.EventLogger
}

// Config holds the session knobs.
type Config struct {
	Logger log.EventLogger // nil for an in-memory logger
	Seed   int64           // rng seed (0 for random)
}

// New creates a game in the picking-generation phase.
func New(cfg Config) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	g := &Game{
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.phase = PhasePickingGeneration
	g.generation = nil
	g.gameVersion = nil
	g.pool = nil
	g.team = nil
	g.attempts = 0
	g.cards = nil
	g.revealed = -1
	g.excluded = make(map[int]bool)
}

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// StartGame installs the chosen generation, game version and candidate
// pool and enters starter-reveal.
func (g *Game) StartGame(generation dex.Generation, gameVersion dex.GameVersion, pool []dex.EvolutionLine) error {
	if g.phase != PhasePickingGeneration {
		return fmt.Errorf("cannot start a game in phase %s", g.phase)
	}
	g.phase = PhaseStarterReveal
	g.generation = &generation
	g.gameVersion = &gameVersion
	g.pool = pool
	g.team = nil
	g.attempts = 0
	g.cards = nil
	g.revealed = -1
	g.excluded = make(map[int]bool)
	g.logger.Log(log.NewGameStartEvent(g.phase.String(), gameVersion.DisplayName))
	return nil
}

// DrawStarter picks the starter line to reveal, uniformly among the
// pool's starter-flagged lines.
func (g *Game) DrawStarter() (dex.EvolutionLine, error) {
	if g.phase != PhaseStarterReveal {
		return dex.EvolutionLine{}, fmt.Errorf("cannot draw a starter in phase %s", g.phase)
	}
	starter, ok := RandomStarter(g.pool, g.rng)
	if !ok {
		return dex.EvolutionLine{}, fmt.Errorf("game %s has no starter lines", g.gameVersion.Slug)
	}
	return starter, nil
}

// ConfirmStarter places the starter in team slot 0, excludes its sibling
// starters from future draws, and deals the first hand. If the remaining
// pool is already exhausted the game ends immediately.
func (g *Game) ConfirmStarter(starter dex.EvolutionLine) error {
	if g.phase != PhaseStarterReveal {
		return fmt.Errorf("cannot confirm a starter in phase %s", g.phase)
	}
	if !starter.IsStarter {
		return fmt.Errorf("%s is not a starter line", starter)
	}

	g.team = []dex.EvolutionLine{starter}
	for _, line := range g.pool {
		if line.IsStarter && line.LineID != starter.LineID {
			g.excluded[line.LineID] = true
		}
	}
	g.logger.Log(log.NewStarterChosenEvent(g.phase.String(), g.attempts, starter.String()))

	cards := DealCards(g.pool, g.team, HandSize, g.excluded, g.rng)
	if len(cards) == 0 {
		g.gameOver("pool exhausted")
		return nil
	}

	g.phase = PhasePlaying
	g.cards = cards
	g.revealed = -1
	g.logger.Log(log.NewDealEvent(g.phase.String(), g.attempts, len(cards)))
	return nil
}

// RevealCard records which dealt card the player flipped and counts the
// attempt. It does not mutate the team.
func (g *Game) RevealCard(index int) error {
	if g.phase != PhasePlaying {
		return fmt.Errorf("cannot reveal a card in phase %s", g.phase)
	}
	if index < 0 || index >= len(g.cards) {
		return fmt.Errorf("card index %d out of range (have %d cards)", index, len(g.cards))
	}
	if g.revealed >= 0 {
		return fmt.Errorf("card %d is already revealed", g.revealed)
	}
	g.revealed = index
	g.attempts++
	g.logger.Log(log.NewRevealEvent(g.phase.String(), g.attempts, index, g.cards[index].String()))
	return nil
}

// AddToTeam appends the revealed line to the team.
func (g *Game) AddToTeam() error {
	line, err := g.revealedLine()
	if err != nil {
		return err
	}
	if IsTeamFull(g.team) {
		return fmt.Errorf("team is full")
	}
	if IsDuplicate(g.team, *line) {
		return fmt.Errorf("%s is already on the team", line)
	}
	g.team = append(g.team, *line)
	g.logger.Log(log.NewTeamAddEvent(g.phase.String(), g.attempts, line.String(), len(g.team)))
	g.checkGameOver(false)
	return nil
}

// Replace substitutes team[index] with the revealed line. The displaced
// line is excluded from future draws. The starter slot is never
// replaceable.
func (g *Game) Replace(index int) error {
	line, err := g.revealedLine()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(g.team) {
		return fmt.Errorf("team index %d out of range (team of %d)", index, len(g.team))
	}
	if g.team[index].IsStarter {
		return fmt.Errorf("the starter cannot be replaced")
	}
	if IsDuplicate(g.team, *line) {
		return fmt.Errorf("%s is already on the team", line)
	}
	displaced := g.team[index]
	g.team[index] = *line
	g.excluded[displaced.LineID] = true
	g.logger.Log(log.NewTeamReplaceEvent(g.phase.String(), g.attempts, line.String(), displaced.String()))
	g.checkGameOver(false)
	return nil
}

// Skip declines the revealed line without mutating the team. The line
// stays in the pool; callers follow up with NewRound.
func (g *Game) Skip() error {
	line, err := g.revealedLine()
	if err != nil {
		return err
	}
	g.logger.Log(log.NewSkipEvent(g.phase.String(), g.attempts, line.String()))
	return nil
}

// NewRound re-deals the hand, excluding team and excluded lineIds. An
// empty deal means the pool is exhausted: the game ends — normal
// termination, not a failure.
func (g *Game) NewRound() error {
	if g.phase == PhaseGameOver {
		return nil
	}
	if g.phase != PhasePlaying {
		return fmt.Errorf("cannot deal a new round in phase %s", g.phase)
	}
	cards := DealCards(g.pool, g.team, HandSize, g.excluded, g.rng)
	if len(cards) == 0 {
		g.cards = nil
		g.revealed = -1
		g.gameOver("pool exhausted")
		return nil
	}
	g.cards = cards
	g.revealed = -1
	g.logger.Log(log.NewDealEvent(g.phase.String(), g.attempts, len(cards)))
	return nil
}

// Reset returns to picking-generation from any phase.
func (g *Game) Reset() {
	g.reset()
	g.logger.Log(log.NewResetEvent())
}

func (g *Game) revealedLine() (*dex.EvolutionLine, error) {
	if g.phase != PhasePlaying {
		return nil, fmt.Errorf("no revealed card in phase %s", g.phase)
	}
	if g.revealed < 0 || g.revealed >= len(g.cards) {
		return nil, fmt.Errorf("no card has been revealed")
	}
	return &g.cards[g.revealed], nil
}

func (g *Game) checkGameOver(poolExhausted bool) {
	if IsGameOver(g.team, poolExhausted) {
		reason := "team full"
		if poolExhausted {
			reason = "pool exhausted"
		}
		g.gameOver(reason)
	}
}

func (g *Game) gameOver(reason string) {
	g.phase = PhaseGameOver
	g.logger.Log(log.NewGameOverEvent(g.phase.String(), g.attempts, len(g.team), reason))
}
