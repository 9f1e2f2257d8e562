package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// ModelUser is one user entry of a test model artifact.
type ModelUser struct {
	Factors []float64 `json:"factors"`
	Rated   []uint    `json:"rated"`
}

// ModelGame is one game entry of a test model artifact.
type ModelGame struct {
	Factors    []float64 `json:"factors"`
	Popularity float64   `json:"popularity"`
	Cluster    int       `json:"cluster"`
}

// WriteModelArtifact writes a model.json under dir/site and fails the test on
// any filesystem error.
func WriteModelArtifact(t *testing.T, dir, site string, users map[string]ModelUser, games map[string]ModelGame) {
	t.Helper()

	payload := map[string]any{
		"site":  site,
		"users": users,
		"games": games,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal model artifact: %v", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, site), 0o755); err != nil {
		t.Fatalf("create model dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, site, "model.json"), raw, 0o644); err != nil {
		t.Fatalf("write model artifact: %v", err)
	}
}
