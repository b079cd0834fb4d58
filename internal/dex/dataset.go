package dex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IndexFileName is the name of the slug → dataset file index written
// alongside the per-game JSON files.
const IndexFileName = "index.json"

// WriteDataset writes one game's evolution lines to <dir>/<slug>.json.
func WriteDataset(dir, slug string, lines []EvolutionLine) error {
	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset %s: %w", slug, err)
	}
	data = append(data, '\n')
	path := filepath.Join(dir, slug+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", slug, err)
	}
	return nil
}

// WriteIndex writes the slug → file index for runtime lookup.
func WriteIndex(dir string, slugs []string) error {
	index := make(map[string]string, len(slugs))
	for _, slug := range slugs {
		index[slug] = slug + ".json"
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dir, IndexFileName), data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// LoadIndex reads the slug → file index from dir.
func LoadIndex(dir string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	if err != nil {
		return nil, err
	}
	var index map[string]string
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return index, nil
}

// LoadDataset reads one game's evolution lines by slug, going through the
// index so a renamed dataset file stays resolvable.
func LoadDataset(dir, slug string) ([]EvolutionLine, error) {
	index, err := LoadIndex(dir)
	if err != nil {
		return nil, err
	}
	file, ok := index[slug]
	if !ok {
		return nil, fmt.Errorf("no dataset for game %q", slug)
	}
	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return nil, err
	}
	var lines []EvolutionLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", slug, err)
	}
	return lines, nil
}
