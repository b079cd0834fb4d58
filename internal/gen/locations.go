package gen

import (
	"regexp"
	"sort"
	"strings"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/pokeapi"
)

// regionPrefixes are stripped from location-area slugs. Checked in order;
// only the first match is removed.
var regionPrefixes = []string{
	"kanto-", "johto-", "hoenn-", "sinnoh-", "unova-",
	"kalos-", "alola-", "galar-", "paldea-", "hisui-", "pasio-",
}

var (
	areaSuffix      = regexp.MustCompile(`-area$`)
	routeDescriptor = regexp.MustCompile(`(route-\d+)-.+$`)
	mtWord          = regexp.MustCompile(`\bMt\b`)
	ssWord          = regexp.MustCompile(`\bSs\b`)
	pokemonWord     = regexp.MustCompile(`\bPokemon\b`)
	floorToken      = regexp.MustCompile(`\b[Bb]?\d+[Ff]\b`)
	floorSuffix     = regexp.MustCompile(`(?i)\s+\d*b?\d+f$`)
)

// FormatLocationName converts a location-area slug to a human-readable
// name:
//
//	"kanto-viridian-forest-area"                → "Viridian Forest"
//	"kanto-route-2-south-towards-viridian-city" → "Route 2"
//	"mt-moon-1f"                                → "Mt. Moon 1F"
func FormatLocationName(slug string) string {
	name := slug
	for _, prefix := range regionPrefixes {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	name = areaSuffix.ReplaceAllString(name, "")
	name = routeDescriptor.ReplaceAllString(name, "$1")

	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	result := strings.Join(words, " ")

	result = mtWord.ReplaceAllString(result, "Mt.")
	result = ssWord.ReplaceAllString(result, "S.S.")
	result = pokemonWord.ReplaceAllString(result, "Pokémon")
	result = floorToken.ReplaceAllStringFunc(result, strings.ToUpper)

	return result
}

// ResolveLocations fills in the location list of every stage in lines from
// the raw encounter records, scoped to the given upstream version slugs.
// Floor variants of one landmark ("Mt. Moon 1F", "Mt. Moon B1F") collapse
// to the shared base name. Lists come out sorted and deduplicated.
func ResolveLocations(lines []dex.EvolutionLine, encounters map[int][]pokeapi.EncounterEntry, versionSlugs []string) {
	versions := make(map[string]bool, len(versionSlugs))
	for _, v := range versionSlugs {
		versions[v] = true
	}

	for li := range lines {
		for si := range lines[li].Stages {
			stage := &lines[li].Stages[si]

			names := make(map[string]bool)
			for _, enc := range encounters[stage.ID] {
				for _, vd := range enc.VersionDetails {
					if versions[vd.Version.Name] {
						names[FormatLocationName(enc.LocationArea.Name)] = true
					}
				}
			}

			collapsed := make(map[string]bool, len(names))
			for name := range names {
				base := strings.TrimSpace(floorSuffix.ReplaceAllString(name, ""))
				collapsed[base] = true
			}

			locations := make([]string, 0, len(collapsed))
			for name := range collapsed {
				locations = append(locations, name)
			}
			sort.Strings(locations)
			stage.Locations = locations
		}
	}
}
