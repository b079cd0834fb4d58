package pokeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func fastClient(baseURL string) *Client {
	c := NewClient(baseURL)
	c.baseDelay = time.Millisecond
	return c
}

func TestSpeciesFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon-species/1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id": 1, "is_legendary": false, "is_mythical": false,
			"evolution_chain": {"url": "https://pokeapi.test/api/v2/evolution-chain/1/"}}`)
	}))
	defer srv.Close()

	sp, err := fastClient(srv.URL).Species(context.Background(), 1)
	if err != nil {
		t.Fatalf("Species: %v", err)
	}
	if sp.ID != 1 {
		t.Errorf("id = %d, want 1", sp.ID)
	}
	if got := IDFromURL(sp.EvolutionChain.URL); got != 1 {
		t.Errorf("chain id = %d, want 1", got)
	}
}

// TestRetryRecovers: transient failures are retried with backoff and the
// fetch still succeeds.
func TestRetryRecovers(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"id": 25, "name": "pikachu", "types": [], "stats": []}`)
	}))
	defer srv.Close()

	p, err := fastClient(srv.URL).Pokemon(context.Background(), 25)
	if err != nil {
		t.Fatalf("Pokemon: %v", err)
	}
	if p.Name != "pikachu" {
		t.Errorf("name = %q, want pikachu", p.Name)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

// TestRetriesExhausted: a persistently failing endpoint gives up after the
// full retry budget.
func TestRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Pokedex(context.Background(), 2)
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if !strings.Contains(err.Error(), "failed after 3 attempts") {
		t.Errorf("err = %v, want retry exhaustion", err)
	}
	if got := calls.Load(); got != maxRetries {
		t.Errorf("server saw %d requests, want %d", got, maxRetries)
	}
}

func TestFetchCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fastClient(srv.URL).Species(ctx, 1); err == nil {
		t.Fatal("expected an error with a canceled context")
	}
}

func TestIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want int
	}{
		{"https://pokeapi.co/api/v2/pokemon-species/25/", 25},
		{"https://pokeapi.co/api/v2/evolution-chain/67", 67},
		{"https://pokeapi.co/api/v2/", 0},
		{"nonsense", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := IDFromURL(tc.url); got != tc.want {
			t.Errorf("IDFromURL(%q) = %d, want %d", tc.url, got, tc.want)
		}
	}
}

func TestSpriteURL(t *testing.T) {
	want := SpritesBaseURL + "/25.png"
	if got := SpriteURL(25); got != want {
		t.Errorf("SpriteURL(25) = %q, want %q", got, want)
	}
}
