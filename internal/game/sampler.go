package game

import (
	"math/rand"

	"github.com/peterkuimelis/pokedraft/internal/dex"
)

// uncoveredWeightBonus is the per-novel-type weight bonus. The formula
// 1 + 2*novelTypes is a tuned heuristic: a dual-type line with both types
// new to the team weighs 5, one novel type weighs 3, fully redundant
// weighs 1. Covered types stay drawable, just less likely.
const uncoveredWeightBonus = 2

// DealCards draws up to count distinct lines from the pool, excluding the
// team's lineIds and the excluded set, biased toward lines whose types the
// team does not cover yet. An empty return signals pool exhaustion.
//
// Sampling is without replacement over an explicit array pool: draw a
// uniform value in [0, totalWeight), linear-scan-subtract to find the
// pick, remove it, recompute. The scan order is the tie-break, so a
// seeded rng reproduces hands exactly.
func DealCards(pool, team []dex.EvolutionLine, count int, excluded map[int]bool, rng *rand.Rand) []dex.EvolutionLine {
	onTeam := make(map[int]bool, len(team))
	for _, member := range team {
		onTeam[member.LineID] = true
	}

	type weightedLine struct {
		line   dex.EvolutionLine
		weight int
	}

	covered := make(map[dex.Type]bool)
	for _, member := range team {
		for _, t := range member.Types {
			covered[t] = true
		}
	}

	var candidates []weightedLine
	for _, line := range pool {
		if onTeam[line.LineID] || excluded[line.LineID] {
			continue
		}
		novel := 0
		for _, t := range line.Types {
			if !covered[t] {
				novel++
			}
		}
		candidates = append(candidates, weightedLine{line: line, weight: 1 + novel*uncoveredWeightBonus})
	}

	if len(candidates) == 0 {
		return nil
	}

	draws := count
	if draws > len(candidates) {
		draws = len(candidates)
	}

	selected := make([]dex.EvolutionLine, 0, draws)
	for i := 0; i < draws; i++ {
		total := 0
		for _, c := range candidates {
			total += c.weight
		}

		r := rng.Float64() * float64(total)
		chosen := 0
		for j, c := range candidates {
			r -= float64(c.weight)
			if r <= 0 {
				chosen = j
				break
			}
		}

		selected = append(selected, candidates[chosen].line)
		candidates = append(candidates[:chosen], candidates[chosen+1:]...)
	}

	return selected
}

// RandomStarter picks a starter line uniformly from the pool's
// starter-flagged lines. Returns false if the pool has none.
func RandomStarter(pool []dex.EvolutionLine, rng *rand.Rand) (dex.EvolutionLine, bool) {
	var starters []dex.EvolutionLine
	for _, line := range pool {
		if line.IsStarter {
			starters = append(starters, line)
		}
	}
	if len(starters) == 0 {
		return dex.EvolutionLine{}, false
	}
	return starters[rng.Intn(len(starters))], true
}
