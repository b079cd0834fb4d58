package web

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/peterkuimelis/pokedraft/internal/dex"
)

// Server exposes the static per-game datasets, the game/generation
// configuration, and WebSocket play sessions. All game-time data is
// pre-generated; the server never calls the upstream API.
type Server struct {
	dataDir string
	mux     *http.ServeMux
}

// NewServer creates a server over the given generated-data directory.
func NewServer(dataDir string) (*Server, error) {
	// Fail fast if the dataset index is unreadable; serving a game UI
	// with no data behind it helps nobody.
	if _, err := dex.LoadIndex(dataDir); err != nil {
		return nil, err
	}
	s := &Server{
		dataDir: dataDir,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/generations", s.handleGenerations)
	s.mux.HandleFunc("GET /api/games", s.handleGames)
	s.mux.HandleFunc("GET /api/data/{slug}", s.handleData)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleGenerations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, dex.Generations)
}

// handleGames lists game versions, optionally filtered by ?generation=N.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	games := dex.GameVersions
	if q := r.URL.Query().Get("generation"); q != "" {
		id, err := strconv.Atoi(q)
		if err != nil {
			http.Error(w, "generation must be an integer", http.StatusBadRequest)
			return
		}
		games = dex.GamesByGeneration(id)
	}
	if games == nil {
		games = []dex.GameVersion{}
	}
	writeJSON(w, games)
}

// handleData serves one game's dataset file verbatim. The file is the
// source of truth; no transformation happens at serve time.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	index, err := dex.LoadIndex(s.dataDir)
	if err != nil {
		http.Error(w, "dataset index unavailable", http.StatusInternalServerError)
		return
	}
	file, ok := index[slug]
	if !ok {
		http.Error(w, "unknown game", http.StatusNotFound)
		return
	}
	data, err := os.ReadFile(filepath.Join(s.dataDir, file))
	if err != nil {
		log.Printf("read dataset %s: %v", slug, err)
		http.Error(w, "dataset unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
