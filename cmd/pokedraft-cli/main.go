package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/game"
	"github.com/peterkuimelis/pokedraft/internal/history"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "games":
		runGames()
	case "play":
		runPlay(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  pokedraft games")
	fmt.Println("  pokedraft play --game SLUG [--data DIR] [--seed N] [--history FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  games   List playable game versions")
	fmt.Println("  play    Draft a team for one game version")
}

func runGames() {
	for _, generation := range dex.Generations {
		fmt.Printf("%s (%s)\n", generation.DisplayName, generation.Region)
		for _, gv := range dex.GamesByGeneration(generation.ID) {
			fmt.Printf("  %-34s %s\n", gv.Slug, gv.DisplayName)
		}
	}
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	slug := fs.String("game", "", "game version slug (see 'pokedraft games')")
	dataDir := fs.String("data", "data", "path to generated dataset directory")
	seed := fs.Int64("seed", 0, "RNG seed (0 for random)")
	historyFile := fs.String("history", "team-history.json", "path to team history file")
	fs.Parse(args)

	gv := dex.GetGameVersion(*slug)
	if gv == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", *slug)
		os.Exit(1)
	}
	generation := dex.GenerationForGame(*gv)
	if generation == nil {
		fmt.Fprintf(os.Stderr, "Error: game %q has no generation\n", *slug)
		os.Exit(1)
	}
	pool, err := dex.LoadDataset(*dataDir, *slug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g := game.New(game.Config{Seed: *seed})
	if err := g.StartGame(*generation, *gv, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("=== %s — %s ===\n", gv.DisplayName, gv.Region)

	starter, err := g.DrawStarter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nYour starter: %s\n", describeLine(starter))
	prompt(reader, "Press enter to accept your starter...")
	if err := g.ConfirmStarter(starter); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for g.Phase() == game.PhasePlaying {
		playRound(g, reader)
	}

	snap := g.Snapshot()
	fmt.Printf("\n=== Game over after %d attempts ===\n", snap.Attempts)
	fmt.Printf("Team (%d/%d, %d/%d types):\n", len(snap.Team), game.MaxTeamSize, game.TypeCoverage(snap.Team), dex.TypeCount)
	for i, member := range snap.Team {
		fmt.Printf("  %d. %s\n", i+1, describeLine(member))
	}

	store := history.NewStore(*historyFile)
	entry := history.NewEntry(*generation, gv, snap.Team, snap.Attempts)
	if err := store.Append(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save history: %v\n", err)
	} else {
		fmt.Printf("Saved to %s.\n", *historyFile)
	}
}

func playRound(g *game.Game, reader *bufio.Reader) {
	snap := g.Snapshot()
	fmt.Printf("\nTeam %d/%d, %d/%d types covered. %d cards on the table.\n",
		len(snap.Team), game.MaxTeamSize, game.TypeCoverage(snap.Team), dex.TypeCount, len(snap.Cards))

	idx := promptInt(reader, fmt.Sprintf("Flip which card? [1-%d] ", len(snap.Cards)), 1, len(snap.Cards)) - 1
	if err := g.RevealCard(idx); err != nil {
		fmt.Printf("  %v\n", err)
		return
	}

	snap = g.Snapshot()
	revealed := *snap.Revealed()
	fmt.Printf("\nRevealed: %s\n", describeLine(revealed))
	if delta := game.TypeCoverageDelta(snap.Team, revealed); delta.Delta > 0 {
		fmt.Printf("  Coverage %d → %d\n", delta.Before, delta.After)
	}
	if overlap := game.TypeOverlap(snap.Team, revealed); len(overlap) > 0 {
		fmt.Printf("  Overlapping types: %s\n", joinTypes(overlap))
	}

	switch game.GetActionScenario(snap.Team, revealed) {
	case game.ScenarioReplaceOrSkip:
		resolveReplaceOrSkip(g, reader, snap)
	default:
		if promptYesNo(reader, "Add to team? [y/n] ") {
			if err := g.AddToTeam(); err != nil {
				fmt.Printf("  %v\n", err)
			}
		} else {
			g.Skip()
		}
	}

	g.NewRound()
}

func resolveReplaceOrSkip(g *game.Game, reader *bufio.Reader, snap game.Snapshot) {
	fmt.Println("Team is full. Replace someone, or skip.")
	replaceable := game.ReplaceableIndices(snap.Team)
	for _, i := range replaceable {
		fmt.Printf("  %d. %s\n", i+1, describeLine(snap.Team[i]))
	}
	fmt.Println("  0. Skip")

	for {
		choice := promptInt(reader, "Replace which slot? ", 0, len(snap.Team))
		if choice == 0 {
			g.Skip()
			return
		}
		if err := g.Replace(choice - 1); err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		return
	}
}

// --- Display helpers ---

func describeLine(line dex.EvolutionLine) string {
	names := make([]string, len(line.Stages))
	for i, stage := range line.Stages {
		names[i] = capitalize(stage.Name)
	}
	return fmt.Sprintf("%s (%s)", strings.Join(names, " → "), joinTypes(line.Types))
}

func joinTypes(types []dex.Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, "/")
}

// capitalize turns an API slug name into display form, e.g.
// "mr-mime" → "Mr-Mime".
func capitalize(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}

// --- Input helpers ---

func prompt(reader *bufio.Reader, msg string) {
	fmt.Print(msg)
	reader.ReadString('\n')
}

func promptInt(reader *bufio.Reader, msg string, min, max int) int {
	for {
		fmt.Print(msg)
		text, err := reader.ReadString('\n')
		if err != nil {
			os.Exit(1)
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err == nil && n >= min && n <= max {
			return n
		}
		fmt.Printf("  Enter a number between %d and %d.\n", min, max)
	}
}

func promptYesNo(reader *bufio.Reader, msg string) bool {
	for {
		fmt.Print(msg)
		text, err := reader.ReadString('\n')
		if err != nil {
			os.Exit(1)
		}
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
