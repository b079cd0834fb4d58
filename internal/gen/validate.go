package gen

import (
	"errors"
	"fmt"

	"github.com/peterkuimelis/pokedraft/internal/dex"
)

// MinLinesPerGame is the smallest plausible pool. Anything below it means
// the build dropped data somewhere.
const MinLinesPerGame = 15

// Validate checks one game's generated lines against every rule and
// returns all violations joined together, not just the first — a partial
// report makes build failures miserable to debug.
func Validate(game dex.GameVersion, lines []dex.EvolutionLine) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(game.Slug+": "+format, args...))
	}

	if len(lines) < MinLinesPerGame {
		fail("expected at least %d evolution lines, got %d", MinLinesPerGame, len(lines))
	}

	for _, starterID := range game.StarterIDs {
		found := false
		for _, line := range lines {
			if line.IsStarter && line.HasStage(starterID) {
				found = true
				break
			}
		}
		if !found {
			fail("starter %d is missing from evolution lines", starterID)
		}
	}

	for _, line := range lines {
		if len(line.Stages) < 1 {
			fail("evolution line %d has no stages", line.LineID)
			continue
		}
		for _, stage := range line.Stages {
			if stage.ID <= 0 {
				fail("stage has invalid id %d", stage.ID)
			}
			if stage.Name == "" {
				fail("stage %d has empty name", stage.ID)
			}
			if len(stage.Types) < 1 {
				fail("stage %d (%s) has no types", stage.ID, stage.Name)
			}
		}
		if line.LineID != line.Stages[0].ID {
			fail("lineId %d does not match first stage id %d", line.LineID, line.Stages[0].ID)
		}
	}

	return errors.Join(errs...)
}
