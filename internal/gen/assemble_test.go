package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/pokeapi"
)

// fakeCatalog serves a small fixed universe: the Bulbasaur chain (1→2→3)
// plus a run of single-species chains, all listed in pokedex 1.
type fakeCatalog struct {
	t          *testing.T
	speciesIDs []int
	encounters map[int][]pokeapi.EncounterEntry
}

func newFakeCatalog(t *testing.T) *fakeCatalog {
	ids := []int{1, 2, 3}
	for id := 10; id <= 24; id++ {
		ids = append(ids, id)
	}
	return &fakeCatalog{
		t:          t,
		speciesIDs: ids,
		encounters: map[int][]pokeapi.EncounterEntry{
			2: {
				encounterJSON(t, "mt-moon-1f", "test-red"),
				encounterJSON(t, "mt-moon-b1f", "test-red"),
			},
		},
	}
}

// chainID groups the Bulbasaur evolution family; every other species is
// its own chain.
func chainID(speciesID int) int {
	if speciesID <= 3 {
		return 1
	}
	return speciesID
}

func (f *fakeCatalog) Pokedex(ctx context.Context, id int) (*pokeapi.Pokedex, error) {
	if id != 1 {
		return nil, fmt.Errorf("unknown pokedex %d", id)
	}
	entries := make([]string, len(f.speciesIDs))
	for i, sid := range f.speciesIDs {
		entries[i] = fmt.Sprintf(
			`{"pokemon_species": {"name": "species-%d", "url": "https://pokeapi.test/api/v2/pokemon-species/%d/"}}`,
			sid, sid)
	}
	var out pokeapi.Pokedex
	raw := fmt.Sprintf(`{"pokemon_entries": [%s]}`, strings.Join(entries, ","))
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		f.t.Fatalf("fake pokedex: %v", err)
	}
	return &out, nil
}

func (f *fakeCatalog) Species(ctx context.Context, id int) (*pokeapi.Species, error) {
	var out pokeapi.Species
	raw := fmt.Sprintf(
		`{"id": %d, "is_legendary": false, "is_mythical": false,
		  "evolution_chain": {"url": "https://pokeapi.test/api/v2/evolution-chain/%d/"}}`,
		id, chainID(id))
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		f.t.Fatalf("fake species: %v", err)
	}
	return &out, nil
}

func (f *fakeCatalog) Pokemon(ctx context.Context, id int) (*pokeapi.Pokemon, error) {
	types := `{"type": {"name": "normal", "url": ""}}`
	if id <= 3 {
		types = `{"type": {"name": "grass", "url": ""}}, {"type": {"name": "poison", "url": ""}}`
	}
	var out pokeapi.Pokemon
	raw := fmt.Sprintf(`{
		"id": %d, "name": "species-%d",
		"types": [%s],
		"stats": [
			{"base_stat": 45, "stat": {"name": "hp", "url": ""}},
			{"base_stat": 49, "stat": {"name": "attack", "url": ""}},
			{"base_stat": 49, "stat": {"name": "defense", "url": ""}},
			{"base_stat": 65, "stat": {"name": "special-attack", "url": ""}},
			{"base_stat": 65, "stat": {"name": "special-defense", "url": ""}},
			{"base_stat": 45, "stat": {"name": "speed", "url": ""}}
		]}`, id, id, types)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		f.t.Fatalf("fake pokemon: %v", err)
	}
	return &out, nil
}

func (f *fakeCatalog) Encounters(ctx context.Context, id int) ([]pokeapi.EncounterEntry, error) {
	return f.encounters[id], nil
}

func (f *fakeCatalog) EvolutionChainByURL(ctx context.Context, url string) (*pokeapi.EvolutionChain, error) {
	id := pokeapi.IDFromURL(url)
	root := node(id)
	if id == 1 {
		root = node(1, node(2, node(3)))
	}
	return &pokeapi.EvolutionChain{ID: id, Chain: root}, nil
}

func testGameVersion() dex.GameVersion {
	return dex.GameVersion{
		Slug:               "test-game",
		DisplayName:        "Test Game",
		GenerationID:       1,
		Region:             "Kanto",
		PokedexIDs:         []int{1},
		StarterIDs:         []int{1},
		ExcludedSpeciesIDs: []int{24},
		Games:              []string{"Test Red"},
	}
}

// TestAssemblerRun: the full build against the fake catalog, checked
// through the same loader the runtime uses.
func TestAssemblerRun(t *testing.T) {
	dir := t.TempDir()
	game := testGameVersion()

	a := NewAssembler(newFakeCatalog(t), []dex.GameVersion{game})
	if err := a.Run(context.Background(), dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	index, err := dex.LoadIndex(dir)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if index["test-game"] != "test-game.json" {
		t.Errorf("index = %v, want test-game mapped", index)
	}

	lines, err := dex.LoadDataset(dir, "test-game")
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	// 1 Bulbasaur line + species 10..23; 24 is version-excluded.
	if len(lines) != 15 {
		t.Fatalf("got %d lines, want 15", len(lines))
	}
	if !sort.SliceIsSorted(lines, func(i, j int) bool { return lines[i].LineID < lines[j].LineID }) {
		t.Error("dataset is not sorted by lineId")
	}
	for _, line := range lines {
		if line.LineID == 24 {
			t.Error("excluded species 24 leaked into the dataset")
		}
		if line.LineID != line.Stages[0].ID {
			t.Errorf("lineId %d does not match base stage %d", line.LineID, line.Stages[0].ID)
		}
	}

	bulba := lines[0]
	if bulba.LineID != 1 || len(bulba.Stages) != 3 || !bulba.IsStarter {
		t.Fatalf("bulbasaur line = %+v", bulba)
	}
	if len(bulba.Types) != 2 || bulba.Types[0] != dex.TypeGrass || bulba.Types[1] != dex.TypePoison {
		t.Errorf("types = %v, want [grass poison]", bulba.Types)
	}
	if bulba.Stages[0].Stats.HP != 45 || bulba.Stages[0].Stats.SpAtk != 65 {
		t.Errorf("stats = %+v, want parsed base stats", bulba.Stages[0].Stats)
	}
	if bulba.Stages[0].Sprite == "" {
		t.Error("sprite URL missing")
	}

	// Ivysaur's floor encounters collapse to one landmark.
	got := bulba.Stages[1].Locations
	if len(got) != 1 || got[0] != "Mt. Moon" {
		t.Errorf("ivysaur locations = %v, want [Mt. Moon]", got)
	}
}

// TestAssemblerRunAbortsOnValidation: a violation must fail the whole
// build before any index is written.
func TestAssemblerRunAbortsOnValidation(t *testing.T) {
	dir := t.TempDir()
	game := testGameVersion()
	game.StarterIDs = []int{99}

	a := NewAssembler(newFakeCatalog(t), []dex.GameVersion{game})
	err := a.Run(context.Background(), dir)
	if err == nil || !strings.Contains(err.Error(), "starter 99") {
		t.Fatalf("Run = %v, want a starter validation failure", err)
	}

	if _, err := dex.LoadIndex(dir); err == nil {
		t.Error("index written despite an aborted build")
	}
}
