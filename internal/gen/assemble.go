package gen

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/pokeapi"
)

// Catalog is the slice of the upstream client the assembler needs. Tests
// substitute an in-memory implementation.
type Catalog interface {
	Pokedex(ctx context.Context, id int) (*pokeapi.Pokedex, error)
	Species(ctx context.Context, id int) (*pokeapi.Species, error)
	Pokemon(ctx context.Context, id int) (*pokeapi.Pokemon, error)
	Encounters(ctx context.Context, id int) ([]pokeapi.EncounterEntry, error)
	EvolutionChainByURL(ctx context.Context, url string) (*pokeapi.EvolutionChain, error)
}

// Assembler runs the whole dataset build: five strictly sequential fetch
// phases (each internally concurrent), then per-game assembly, validation
// and serialization. The id-keyed maps are owned by the assembler and live
// for exactly one build run; every key is written once.
type Assembler struct {
	catalog Catalog
	games   []dex.GameVersion

	mu             sync.Mutex
	pokedexSpecies map[int]map[int]bool // pokedex id → species id set
	species        map[int]SpeciesInfo
	chains         map[int]pokeapi.ChainNode // chain id → tree root
	pokemon        map[int]PokemonInfo
	encounters     map[int][]pokeapi.EncounterEntry
}

// NewAssembler builds datasets for the given games using catalog.
func NewAssembler(catalog Catalog, games []dex.GameVersion) *Assembler {
	return &Assembler{
		catalog:        catalog,
		games:          games,
		pokedexSpecies: make(map[int]map[int]bool),
		species:        make(map[int]SpeciesInfo),
		chains:         make(map[int]pokeapi.ChainNode),
		pokemon:        make(map[int]PokemonInfo),
		encounters:     make(map[int][]pokeapi.EncounterEntry),
	}
}

// Run executes the build and writes per-game JSON files plus the index to
// outDir. Any fetch exhaustion or validation violation aborts the whole
// build: a partial dataset must never be published.
func (a *Assembler) Run(ctx context.Context, outDir string) error {
	if err := a.fetchPokedexes(ctx); err != nil {
		return err
	}
	if err := a.fetchSpecies(ctx); err != nil {
		return err
	}
	if err := a.fetchChains(ctx); err != nil {
		return err
	}
	if err := a.fetchPokemonAndEncounters(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	slugs := make([]string, 0, len(a.games))
	for _, game := range a.games {
		lines := a.assembleGame(game)
		if err := Validate(game, lines); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if err := dex.WriteDataset(outDir, game.Slug, lines); err != nil {
			return err
		}
		slugs = append(slugs, game.Slug)
		log.Printf("%s: %d evolution lines", game.Slug, len(lines))
	}

	return dex.WriteIndex(outDir, slugs)
}

// fetchPokedexes resolves the union of pokedex ids across all games and
// fetches each exactly once.
func (a *Assembler) fetchPokedexes(ctx context.Context) error {
	ids := make(map[int]bool)
	for _, game := range a.games {
		for _, id := range game.PokedexIDs {
			ids[id] = true
		}
	}
	log.Printf("fetching %d pokedexes for %d games", len(ids), len(a.games))

	g, ctx := errgroup.WithContext(ctx)
	for id := range ids {
		g.Go(func() error {
			dexResp, err := a.catalog.Pokedex(ctx, id)
			if err != nil {
				return err
			}
			speciesSet := make(map[int]bool)
			for _, sid := range dexResp.SpeciesIDs() {
				speciesSet[sid] = true
			}
			a.mu.Lock()
			a.pokedexSpecies[id] = speciesSet
			a.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// fetchSpecies fetches metadata once per unique species id.
func (a *Assembler) fetchSpecies(ctx context.Context) error {
	ids := a.allSpeciesIDs()
	log.Printf("fetching %d species", len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			sp, err := a.catalog.Species(ctx, id)
			if err != nil {
				return err
			}
			a.mu.Lock()
			a.species[id] = SpeciesInfo{
				ID:                sp.ID,
				IsLegendary:       sp.IsLegendary,
				IsMythical:        sp.IsMythical,
				EvolutionChainURL: sp.EvolutionChain.URL,
			}
			a.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// fetchChains fetches each evolution chain referenced by species metadata
// exactly once.
func (a *Assembler) fetchChains(ctx context.Context) error {
	urls := make(map[string]bool)
	for _, sp := range a.species {
		if sp.EvolutionChainURL != "" {
			urls[sp.EvolutionChainURL] = true
		}
	}
	log.Printf("fetching %d evolution chains", len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for url := range urls {
		g.Go(func() error {
			chain, err := a.catalog.EvolutionChainByURL(ctx, url)
			if err != nil {
				return err
			}
			a.mu.Lock()
			a.chains[chain.ID] = chain.Chain
			a.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// fetchPokemonAndEncounters fetches detail and encounter records for every
// species in the standard id range.
func (a *Assembler) fetchPokemonAndEncounters(ctx context.Context) error {
	var ids []int
	for _, id := range a.allSpeciesIDs() {
		if id <= maxStandardSpeciesID {
			ids = append(ids, id)
		}
	}
	log.Printf("fetching %d pokemon details and encounter lists", len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			p, err := a.catalog.Pokemon(ctx, id)
			if err != nil {
				return err
			}
			info := PokemonInfo{
				ID:    p.ID,
				Name:  p.Name,
				Types: parseTypes(p),
				Stats: parseStats(p),
			}
			a.mu.Lock()
			a.pokemon[id] = info
			a.mu.Unlock()
			return nil
		})
		g.Go(func() error {
			encs, err := a.catalog.Encounters(ctx, id)
			if err != nil {
				return err
			}
			a.mu.Lock()
			a.encounters[id] = encs
			a.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// assembleGame builds the sorted, location-annotated line set for one game.
func (a *Assembler) assembleGame(game dex.GameVersion) []dex.EvolutionLine {
	// The game's valid species set: the union of its pokedexes minus the
	// version-exclusive removals.
	gameSpecies := make(map[int]bool)
	for _, pokedexID := range game.PokedexIDs {
		for id := range a.pokedexSpecies[pokedexID] {
			gameSpecies[id] = true
		}
	}
	for _, id := range game.ExcludedSpeciesIDs {
		delete(gameSpecies, id)
	}

	// Group the game's species by evolution chain, then walk each chain.
	chainIDs := make(map[int]bool)
	for id := range gameSpecies {
		sp, ok := a.species[id]
		if !ok {
			continue
		}
		if chainID := pokeapi.IDFromURL(sp.EvolutionChainURL); chainID > 0 {
			chainIDs[chainID] = true
		}
	}

	var lines []dex.EvolutionLine
	for chainID := range chainIDs {
		root, ok := a.chains[chainID]
		if !ok {
			continue
		}
		lines = append(lines, BuildLines(root, a.pokemon, gameSpecies, a.species, game.StarterIDs)...)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].LineID != lines[j].LineID {
			return lines[i].LineID < lines[j].LineID
		}
		return branchOrd(lines[i]) < branchOrd(lines[j])
	})

	ResolveLocations(lines, a.encounters, game.VersionSlugs())
	return lines
}

// branchOrd orders lines by branch index, unset sorting lowest.
func branchOrd(l dex.EvolutionLine) int {
	if l.BranchIndex == nil {
		return -1
	}
	return *l.BranchIndex
}

func (a *Assembler) allSpeciesIDs() []int {
	set := make(map[int]bool)
	for _, speciesSet := range a.pokedexSpecies {
		for id := range speciesSet {
			set[id] = true
		}
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func parseStats(p *pokeapi.Pokemon) dex.BaseStats {
	var out dex.BaseStats
	for _, s := range p.Stats {
		switch s.Stat.Name {
		case "hp":
			out.HP = s.BaseStat
		case "attack":
			out.Attack = s.BaseStat
		case "defense":
			out.Defense = s.BaseStat
		case "special-attack":
			out.SpAtk = s.BaseStat
		case "special-defense":
			out.SpDef = s.BaseStat
		case "speed":
			out.Speed = s.BaseStat
		}
	}
	return out
}

func parseTypes(p *pokeapi.Pokemon) []dex.Type {
	types := make([]dex.Type, 0, len(p.Types))
	for _, name := range p.TypeNames() {
		types = append(types, dex.Type(name))
	}
	return types
}
