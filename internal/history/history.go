// Package history persists finished teams. The record shape is shared
// with the browser front end's client-side storage, so reads must accept
// the older single-stage team shape and upgrade it.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/peterkuimelis/pokedraft/internal/dex"
)

// Entry is one finished game: the team, how it was built, and when.
type Entry struct {
	Generation  dex.Generation      `json:"generation"`
	GameVersion *dex.GameVersion    `json:"gameVersion,omitempty"`
	Team        []dex.EvolutionLine `json:"team"`
	Attempts    int                 `json:"attempts"`
	Date        string              `json:"date"` // RFC 3339
}

// NewEntry builds an entry stamped with the current time.
func NewEntry(generation dex.Generation, gameVersion *dex.GameVersion, team []dex.EvolutionLine, attempts int) Entry {
	return Entry{
		Generation:  generation,
		GameVersion: gameVersion,
		Team:        team,
		Attempts:    attempts,
		Date:        time.Now().UTC().Format(time.RFC3339),
	}
}

// legacyPokemon is the old flat team-member shape: a single form with no
// line identity.
type legacyPokemon struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Types     []dex.Type    `json:"types"`
	Sprite    string        `json:"sprite"`
	IsStarter bool          `json:"isStarter"`
	Stats     dex.BaseStats `json:"stats"`
}

type legacyEntry struct {
	Generation  dex.Generation   `json:"generation"`
	GameVersion *dex.GameVersion `json:"gameVersion,omitempty"`
	Team        []legacyPokemon  `json:"team"`
	Attempts    int              `json:"attempts"`
	Date        string           `json:"date"`
}

// upgrade converts a legacy record into the modern shape: each flat
// member becomes a single-stage evolution line keyed by its species id.
func (le legacyEntry) upgrade() Entry {
	team := make([]dex.EvolutionLine, 0, len(le.Team))
	for _, p := range le.Team {
		team = append(team, dex.EvolutionLine{
			LineID: p.ID,
			Stages: []dex.Stage{{
				ID:        p.ID,
				Name:      p.Name,
				Types:     p.Types,
				Sprite:    p.Sprite,
				Stats:     p.Stats,
				Stage:     0,
				Locations: []string{},
			}},
			Types:     p.Types,
			IsStarter: p.IsStarter,
		})
	}
	return Entry{
		Generation:  le.Generation,
		GameVersion: le.GameVersion,
		Team:        team,
		Attempts:    le.Attempts,
		Date:        le.Date,
	}
}

// DecodeEntries parses a history array, upgrading legacy records in
// place. The shape is detected structurally — the modern shape has a
// lineId on the first team member — never assumed.
func DecodeEntries(data []byte) ([]Entry, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}

	entries := make([]Entry, 0, len(raws))
	for i, raw := range raws {
		entry, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("parse history entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(raw json.RawMessage) (Entry, error) {
	var probe struct {
		Team []map[string]json.RawMessage `json:"team"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Entry{}, err
	}

	modern := true
	if len(probe.Team) > 0 {
		_, modern = probe.Team[0]["lineId"]
	}

	if modern {
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return Entry{}, err
		}
		return entry, nil
	}

	var legacy legacyEntry
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return Entry{}, err
	}
	return legacy.upgrade(), nil
}

// EncodeEntries serializes entries in the modern shape.
func EncodeEntries(entries []Entry) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return append(data, '\n'), nil
}
