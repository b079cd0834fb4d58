package web

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/peterkuimelis/pokedraft/internal/dex"
)

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	lines := []dex.EvolutionLine{{
		LineID: 1,
		Stages: []dex.Stage{{
			ID: 1, Name: "bulbasaur",
			Types:     []dex.Type{dex.TypeGrass, dex.TypePoison},
			Locations: []string{},
		}},
		Types:     []dex.Type{dex.TypeGrass, dex.TypePoison},
		IsStarter: true,
	}}
	if err := dex.WriteDataset(dir, "red-blue", lines); err != nil {
		t.Fatal(err)
	}
	if err := dex.WriteIndex(dir, []string{"red-blue"}); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(writeTestData(t))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func TestNewServerMissingData(t *testing.T) {
	if _, err := NewServer(t.TempDir()); err == nil {
		t.Error("expected error for a directory without an index")
	}
}

func TestHandleGenerations(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/generations", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var generations []dex.Generation
	if err := json.Unmarshal(rec.Body.Bytes(), &generations); err != nil {
		t.Fatal(err)
	}
	if len(generations) != len(dex.Generations) {
		t.Errorf("got %d generations, want %d", len(generations), len(dex.Generations))
	}
}

func TestHandleGamesFilter(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/games?generation=1", nil))
	var games []dex.GameVersion
	if err := json.Unmarshal(rec.Body.Bytes(), &games); err != nil {
		t.Fatal(err)
	}
	if len(games) == 0 {
		t.Fatal("no generation 1 games returned")
	}
	for _, gv := range games {
		if gv.GenerationID != 1 {
			t.Errorf("%s has generation %d", gv.Slug, gv.GenerationID)
		}
	}

	rec = httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/games?generation=bogus", nil))
	if rec.Code != 400 {
		t.Errorf("non-integer filter: status = %d, want 400", rec.Code)
	}

	// An unknown generation yields an empty list, not an error.
	rec = httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/games?generation=999", nil))
	if rec.Code != 200 || rec.Body.String() == "null\n" {
		t.Errorf("unknown generation: status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestHandleData(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/data/red-blue", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var lines []dex.EvolutionLine
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0].LineID != 1 {
		t.Errorf("lines = %+v", lines)
	}

	rec = httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/data/no-such-game", nil))
	if rec.Code != 404 {
		t.Errorf("unknown game: status = %d, want 404", rec.Code)
	}
}
