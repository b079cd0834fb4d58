package dex

import (
	"reflect"
	"testing"
)

func TestDatasetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lines := []EvolutionLine{testLine()}

	if err := WriteDataset(dir, "test-game", lines); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	if err := WriteIndex(dir, []string{"test-game"}); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}

	index, err := LoadIndex(dir)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if index["test-game"] != "test-game.json" {
		t.Errorf("index = %v", index)
	}

	loaded, err := LoadDataset(dir, "test-game")
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if !reflect.DeepEqual(lines, loaded) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", lines, loaded)
	}
}

func TestLoadDatasetUnknownSlug(t *testing.T) {
	dir := t.TempDir()
	if err := WriteIndex(dir, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDataset(dir, "missing"); err == nil {
		t.Error("expected error for a slug absent from the index")
	}
}

func TestLoadIndexMissingDir(t *testing.T) {
	if _, err := LoadIndex(t.TempDir()); err == nil {
		t.Error("expected error when no index exists")
	}
}
