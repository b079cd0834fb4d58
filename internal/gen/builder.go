package gen

import (
	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/pokeapi"
)

// maxStandardSpeciesID is the top of the standard species id range.
// Ids above it are alternate forms (mega, gigantamax) that never form
// evolution lines of their own.
const maxStandardSpeciesID = 10000

// SpeciesInfo is the species metadata the builder consumes.
type SpeciesInfo struct {
	ID                int
	IsLegendary       bool
	IsMythical        bool
	EvolutionChainURL string
}

// PokemonInfo is the per-form detail the builder consumes.
type PokemonInfo struct {
	ID    int
	Name  string
	Types []dex.Type
	Stats dex.BaseStats
}

// treeWalker carries the per-chain state of one recursive walk: the branch
// counter and emitted lines live here so sibling branches are numbered in
// emission order, not by recursion bookkeeping shared across frames.
type treeWalker struct {
	pokemon     map[int]PokemonInfo
	gameSpecies map[int]bool
	species     map[int]SpeciesInfo
	starters    map[int]bool

	branchCount int
	lines       []dex.EvolutionLine
}

// BuildLines walks one evolution chain tree depth-first and returns the
// evolution lines valid for a single game. gameSpecies is the game's valid
// species id set; pokemon and species are the global detail and metadata
// maps; starterIDs are the game's designated starters.
//
// Species that are absent from the game (or above the standard id range,
// or missing detail records) truncate the walk mid-chain, emitting the
// stages accumulated so far. An absent base form instead restarts the walk
// at each child, so a game can contain a mid-chain form without its
// pre-evolution — its line simply starts there.
func BuildLines(
	root pokeapi.ChainNode,
	pokemon map[int]PokemonInfo,
	gameSpecies map[int]bool,
	species map[int]SpeciesInfo,
	starterIDs []int,
) []dex.EvolutionLine {
	starters := make(map[int]bool, len(starterIDs))
	for _, id := range starterIDs {
		starters[id] = true
	}
	w := &treeWalker{
		pokemon:     pokemon,
		gameSpecies: gameSpecies,
		species:     species,
		starters:    starters,
	}
	w.walk(root, nil, false)
	return w.lines
}

// walk recurses into node with the stages accumulated so far. branching is
// true once any ancestor on this path had multiple children.
func (w *treeWalker) walk(node pokeapi.ChainNode, path []dex.Stage, branching bool) {
	id := node.SpeciesID()

	if id > maxStandardSpeciesID || !w.gameSpecies[id] || !hasPokemon(w.pokemon, id) {
		if len(path) == 0 {
			// Base form missing from this game — treat each child as a
			// fresh potential base form.
			for _, child := range node.EvolvesTo {
				w.walk(child, nil, branching)
			}
			return
		}
		// Mid-chain gap: truncate here and emit what we have.
		w.emit(path, branching)
		return
	}

	p := w.pokemon[id]
	stage := dex.Stage{
		ID:        p.ID,
		Name:      p.Name,
		Types:     p.Types,
		Sprite:    pokeapi.SpriteURL(p.ID),
		Stats:     p.Stats,
		Stage:     len(path),
		Locations: []string{},
	}
	next := make([]dex.Stage, len(path), len(path)+1)
	copy(next, path)
	next = append(next, stage)

	if len(node.EvolvesTo) == 0 {
		w.emit(next, branching)
		return
	}

	childBranching := branching || len(node.EvolvesTo) > 1
	for _, child := range node.EvolvesTo {
		w.walk(child, next, childBranching)
	}
}

// emit turns a completed path into an evolution line, unless the path is
// empty or contains a legendary/mythical stage without a starter.
func (w *treeWalker) emit(path []dex.Stage, branching bool) {
	if len(path) == 0 {
		return
	}

	hasLegendary := false
	hasStarter := false
	for _, s := range path {
		if sp, ok := w.species[s.ID]; ok && (sp.IsLegendary || sp.IsMythical) {
			hasLegendary = true
		}
		if w.starters[s.ID] {
			hasStarter = true
		}
	}
	if hasLegendary && !hasStarter {
		return
	}

	line := dex.EvolutionLine{
		LineID:    path[0].ID,
		Stages:    path,
		Types:     path[0].Types,
		IsStarter: hasStarter,
	}
	if branching {
		idx := w.branchCount
		w.branchCount++
		line.BranchIndex = &idx
	}
	w.lines = append(w.lines, line)
}

func hasPokemon(pokemon map[int]PokemonInfo, id int) bool {
	_, ok := pokemon[id]
	return ok
}
