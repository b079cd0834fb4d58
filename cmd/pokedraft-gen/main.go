package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/gen"
	"github.com/peterkuimelis/pokedraft/internal/pokeapi"
)

func main() {
	out := flag.String("out", "data", "output directory for generated datasets")
	baseURL := flag.String("api", "", "upstream API base URL (default: public instance)")
	only := flag.String("only", "", "comma-separated game slugs to build (default: all)")
	flag.Parse()

	log.SetFlags(0)

	games := dex.GameVersions
	if *only != "" {
		games = nil
		for _, slug := range strings.Split(*only, ",") {
			gv := dex.GetGameVersion(strings.TrimSpace(slug))
			if gv == nil {
				fmt.Fprintf(os.Stderr, "Error: unknown game slug %q\n", slug)
				os.Exit(1)
			}
			games = append(games, *gv)
		}
	}

	start := time.Now()
	assembler := gen.NewAssembler(pokeapi.NewClient(*baseURL), games)
	if err := assembler.Run(context.Background(), *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Printf("generated data for %d games in %s (written to %s)", len(games), time.Since(start).Round(time.Second), *out)
}
