package pokeapi

import (
	"strconv"
	"strings"
)

// Response types for the upstream API. Only the fields we consume are
// declared; the schema is assumed stable for these.

// NamedResource is the ubiquitous {name, url} reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokedex is the response of /pokedex/{id}.
type Pokedex struct {
	PokemonEntries []struct {
		PokemonSpecies NamedResource `json:"pokemon_species"`
	} `json:"pokemon_entries"`
}

// SpeciesIDs extracts the species ids of every pokedex entry.
func (p Pokedex) SpeciesIDs() []int {
	ids := make([]int, 0, len(p.PokemonEntries))
	for _, e := range p.PokemonEntries {
		ids = append(ids, IDFromURL(e.PokemonSpecies.URL))
	}
	return ids
}

// Species is the response of /pokemon-species/{id}.
type Species struct {
	ID                 int            `json:"id"`
	IsLegendary        bool           `json:"is_legendary"`
	IsMythical         bool           `json:"is_mythical"`
	EvolvesFromSpecies *NamedResource `json:"evolves_from_species"`
	EvolutionChain     struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// Pokemon is the response of /pokemon/{id}.
type Pokemon struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Types []struct {
		Type NamedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     NamedResource `json:"stat"`
	} `json:"stats"`
}

// TypeNames returns the pokemon's type names in slot order.
func (p Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// EncounterEntry is one element of the /pokemon/{id}/encounters response.
type EncounterEntry struct {
	LocationArea   NamedResource `json:"location_area"`
	VersionDetails []struct {
		MaxChance int           `json:"max_chance"`
		Version   NamedResource `json:"version"`
	} `json:"version_details"`
}

// ChainNode is one node of an evolution chain tree.
type ChainNode struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainNode   `json:"evolves_to"`
}

// SpeciesID returns the node's species id, parsed from its resource URL.
func (n ChainNode) SpeciesID() int {
	return IDFromURL(n.Species.URL)
}

// EvolutionChain is the response of an evolution-chain URL.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainNode `json:"chain"`
}

// IDFromURL extracts the trailing numeric id from a resource URL like
// ".../pokemon-species/25/". Returns 0 if the URL has no numeric tail.
func IDFromURL(url string) int {
	trimmed := strings.TrimSuffix(url, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	if idx < 0 {
		return 0
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0
	}
	return id
}
