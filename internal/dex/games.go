package dex

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Generation groups game versions for display.
type Generation struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	DisplayName string `yaml:"displayName" json:"displayName"`
	Region      string `yaml:"region" json:"region"`
	StarterIDs  []int  `yaml:"starterIds" json:"starterIds"`
}

// GameVersion is the static configuration for one playable game version
// (or version pair, e.g. Red & Blue).
type GameVersion struct {
	// Slug is the unique routing key, e.g. "firered-leafgreen".
	Slug        string `yaml:"slug" json:"slug"`
	DisplayName string `yaml:"displayName" json:"displayName"`
	GenerationID int   `yaml:"generationId" json:"generationId"`
	Region      string `yaml:"region" json:"region"`

	// PokedexIDs are the upstream pokedex ids that make up this game's
	// species pool. Some games draw from several.
	PokedexIDs []int `yaml:"pokedexIds" json:"pokedexIds"`

	// StarterIDs are the national dex ids of this game's starters.
	StarterIDs []int `yaml:"starterIds" json:"starterIds"`

	// ExcludedSpeciesIDs removes version-exclusive species from the pool.
	ExcludedSpeciesIDs []int `yaml:"excludedSpeciesIds,omitempty" json:"excludedSpeciesIds,omitempty"`

	// Games are the upstream display names of the individual games in this
	// version group, used to match encounter version strings.
	Games []string `yaml:"games" json:"games"`
}

// VersionSlugs returns the upstream version slugs for this game's
// constituent games, e.g. "Let's Go, Pikachu!" → "lets-go-pikachu".
func (gv GameVersion) VersionSlugs() []string {
	out := make([]string, len(gv.Games))
	for i, name := range gv.Games {
		out[i] = versionSlug(name)
	}
	return out
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugSpaces = regexp.MustCompile(`\s+`)

func versionSlug(displayName string) string {
	s := strings.ToLower(displayName)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugSpaces.ReplaceAllString(s, "-")
}

//go:embed games.yaml
var gamesYAML []byte

type configFile struct {
	Generations []Generation  `yaml:"generations"`
	Games       []GameVersion `yaml:"games"`
}

// Generations and GameVersions are the full static configuration tables,
// parsed once from the embedded games.yaml.
var (
	Generations  []Generation
	GameVersions []GameVersion
)

func init() {
	var cf configFile
	if err := yaml.Unmarshal(gamesYAML, &cf); err != nil {
		panic(fmt.Sprintf("parse embedded games.yaml: %v", err))
	}
	Generations = cf.Generations
	GameVersions = cf.Games
}

// GetGameVersion returns the game version with the given slug, or nil.
func GetGameVersion(slug string) *GameVersion {
	for i := range GameVersions {
		if GameVersions[i].Slug == slug {
			return &GameVersions[i]
		}
	}
	return nil
}

// GamesByGeneration returns all game versions in the given generation.
func GamesByGeneration(generationID int) []GameVersion {
	var out []GameVersion
	for _, gv := range GameVersions {
		if gv.GenerationID == generationID {
			out = append(out, gv)
		}
	}
	return out
}

// GetGeneration returns the generation with the given id, or nil.
func GetGeneration(id int) *Generation {
	for i := range Generations {
		if Generations[i].ID == id {
			return &Generations[i]
		}
	}
	return nil
}

// GenerationForGame returns the generation a game version belongs to, or nil.
func GenerationForGame(gv GameVersion) *Generation {
	return GetGeneration(gv.GenerationID)
}
