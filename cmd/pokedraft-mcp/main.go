package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	pokemcp "github.com/peterkuimelis/pokedraft/internal/mcp"
)

func main() {
	dataDir := flag.String("data", "data", "path to generated dataset directory")
	flag.Parse()

	pokemcp.SetDataDir(*dataDir)

	s := server.NewMCPServer("pokedraft", "1.0.0")
	pokemcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
