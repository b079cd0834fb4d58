package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	// DefaultBaseURL is the public upstream API root.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// SpritesBaseURL is where official artwork sprites live, keyed by id.
	SpritesBaseURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork"

	// MaxConcurrency bounds in-flight requests system-wide. The upstream
	// API is rate-limit-sensitive.
	MaxConcurrency = 30

	maxRetries = 3
	baseDelay  = time.Second
)

// SpriteURL returns the official artwork URL for a species id.
func SpriteURL(id int) string {
	return fmt.Sprintf("%s/%d.png", SpritesBaseURL, id)
}

// Client fetches species catalog data with retries and bounded concurrency.
// A single Client is shared across the whole build so the concurrency gate
// applies globally. The zero value is not usable; use NewClient.
type Client struct {
	baseURL string
	httpc   *http.Client

	// gate admits at most MaxConcurrency logical fetches. A freed slot is
	// handed to the longest-waiting request (semaphore.Weighted queues
	// waiters FIFO), so request order is roughly preserved under load.
	gate *semaphore.Weighted

	retries   int
	baseDelay time.Duration
}

// NewClient returns a client for the given API root. Pass "" for the
// public upstream.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		httpc:     &http.Client{Timeout: 30 * time.Second},
		gate:      semaphore.NewWeighted(MaxConcurrency),
		retries:   maxRetries,
		baseDelay: baseDelay,
	}
}

// Pokedex fetches /pokedex/{id}.
func (c *Client) Pokedex(ctx context.Context, id int) (*Pokedex, error) {
	var out Pokedex
	label := fmt.Sprintf("pokedex/%d", id)
	if err := c.getJSON(ctx, c.baseURL+"/"+label, label, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Species fetches /pokemon-species/{id}.
func (c *Client) Species(ctx context.Context, id int) (*Species, error) {
	var out Species
	label := fmt.Sprintf("pokemon-species/%d", id)
	if err := c.getJSON(ctx, c.baseURL+"/"+label, label, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pokemon fetches /pokemon/{id}.
func (c *Client) Pokemon(ctx context.Context, id int) (*Pokemon, error) {
	var out Pokemon
	label := fmt.Sprintf("pokemon/%d", id)
	if err := c.getJSON(ctx, c.baseURL+"/"+label, label, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Encounters fetches /pokemon/{id}/encounters.
func (c *Client) Encounters(ctx context.Context, id int) ([]EncounterEntry, error) {
	var out []EncounterEntry
	label := fmt.Sprintf("pokemon/%d/encounters", id)
	if err := c.getJSON(ctx, c.baseURL+"/"+label, label, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EvolutionChainByURL fetches an evolution chain by the absolute URL a
// species record points at. The URL may belong to a different host than
// the client's base; species records are trusted to point at the same API.
func (c *Client) EvolutionChainByURL(ctx context.Context, url string) (*EvolutionChain, error) {
	var out EvolutionChain
	label := fmt.Sprintf("evolution-chain/%d", IDFromURL(url))
	if err := c.getJSON(ctx, url, label, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getJSON performs one logical fetch: acquire a concurrency slot, then up
// to maxRetries attempts with exponential backoff (1s, 2s, 4s). The slot
// is held across retries so a flapping endpoint cannot multiply load.
// Every logical fetch gets its own independent retry budget.
func (c *Client) getJSON(ctx context.Context, url, label string, v any) error {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.gate.Release(1)

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		lastErr = c.attempt(ctx, url, v)
		if lastErr == nil {
			return nil
		}
		if attempt == c.retries {
			break
		}
		delay := c.baseDelay << (attempt - 1)
		log.Printf("retry %d/%d for %s: %v (waiting %s)", attempt, c.retries, label, lastErr, delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("fetch %s: failed after %d attempts: %w", label, c.retries, lastErr)
}

func (c *Client) attempt(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
