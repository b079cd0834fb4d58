package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/pokedraft/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	dataDir := flag.String("data", "data", "path to generated dataset directory")
	flag.Parse()

	srv, err := web.NewServer(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("pokedraft API listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
