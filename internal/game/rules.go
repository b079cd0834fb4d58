package game

import "github.com/peterkuimelis/pokedraft/internal/dex"

// Pure team rules shared by the engine and any rendering layer. None of
// these mutate their arguments.

// ActionScenario names the affordances available for a revealed line.
type ActionScenario string

const (
	ScenarioAdd            ActionScenario = "add"
	ScenarioAddWithOverlap ActionScenario = "add-with-overlap"
	ScenarioReplaceOrSkip  ActionScenario = "replace-or-skip"
)

// IsDuplicate reports whether a team member shares the candidate's lineId.
func IsDuplicate(team []dex.EvolutionLine, line dex.EvolutionLine) bool {
	return IsLineOnTeam(team, line.LineID)
}

// IsLineOnTeam reports whether the lineId is already on the team.
func IsLineOnTeam(team []dex.EvolutionLine, lineID int) bool {
	for _, member := range team {
		if member.LineID == lineID {
			return true
		}
	}
	return false
}

// IsTeamFull reports whether the team has no open slot.
func IsTeamFull(team []dex.EvolutionLine) bool {
	return len(team) >= MaxTeamSize
}

// IsGameOver reports the terminal condition: team full or pool exhausted.
func IsGameOver(team []dex.EvolutionLine, poolExhausted bool) bool {
	return IsTeamFull(team) || poolExhausted
}

// TeamTypes returns the distinct types on the team, in first-seen order.
func TeamTypes(team []dex.EvolutionLine) []dex.Type {
	seen := make(map[dex.Type]bool)
	var out []dex.Type
	for _, member := range team {
		for _, t := range member.Types {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// TypeCoverage is the count of distinct types on the team, at most 18.
func TypeCoverage(team []dex.EvolutionLine) int {
	return len(TeamTypes(team))
}

// TypeOverlap returns the candidate's types already present on the team,
// preserving the candidate's type order.
func TypeOverlap(team []dex.EvolutionLine, line dex.EvolutionLine) []dex.Type {
	covered := make(map[dex.Type]bool)
	for _, t := range TeamTypes(team) {
		covered[t] = true
	}
	var out []dex.Type
	for _, t := range line.Types {
		if covered[t] {
			out = append(out, t)
		}
	}
	return out
}

// OverlappingIndices returns the team indices sharing at least one type
// with the candidate.
func OverlappingIndices(team []dex.EvolutionLine, line dex.EvolutionLine) []int {
	candidate := make(map[dex.Type]bool, len(line.Types))
	for _, t := range line.Types {
		candidate[t] = true
	}
	var out []int
	for i, member := range team {
		for _, t := range member.Types {
			if candidate[t] {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// CoverageDelta describes how adding a candidate would change coverage.
type CoverageDelta struct {
	Before int `json:"before"`
	After  int `json:"after"`
	Delta  int `json:"delta"`
}

// TypeCoverageDelta computes the before/after coverage if line were added,
// without mutating anything.
func TypeCoverageDelta(team []dex.EvolutionLine, line dex.EvolutionLine) CoverageDelta {
	before := TypeCoverage(team)
	covered := make(map[dex.Type]bool)
	for _, t := range TeamTypes(team) {
		covered[t] = true
	}
	for _, t := range line.Types {
		covered[t] = true
	}
	after := len(covered)
	return CoverageDelta{Before: before, After: after, Delta: after - before}
}

// GetActionScenario determines what the player can do with a revealed line.
func GetActionScenario(team []dex.EvolutionLine, line dex.EvolutionLine) ActionScenario {
	if IsTeamFull(team) {
		return ScenarioReplaceOrSkip
	}
	if len(TypeOverlap(team, line)) > 0 {
		return ScenarioAddWithOverlap
	}
	return ScenarioAdd
}

// ReplaceableIndices returns the team indices open to replacement. The
// starter is never replaceable.
func ReplaceableIndices(team []dex.EvolutionLine) []int {
	var out []int
	for i, member := range team {
		if !member.IsStarter {
			out = append(out, i)
		}
	}
	return out
}
