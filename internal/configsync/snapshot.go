package configsync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is a saved configuration document
type Snapshot struct {
	Config      map[string]any `json:"config"`
	Timestamp   time.Time      `json:"timestamp"`
	Description string         `json:"description"`
}

// TakeSnapshot captures the assistant's current configuration
func TakeSnapshot(ctx context.Context, client ConfigClient, description string) (*Snapshot, error) {
	cfg, err := client.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch configuration for snapshot: %w", err)
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	return &Snapshot{
		Config:      cfg,
		Timestamp:   time.Now(),
		Description: description,
	}, nil
}

// WriteFile stores the snapshot as JSON with user-only permissions
func (s *Snapshot) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteFile
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if s.Config == nil {
		return nil, fmt.Errorf("snapshot %s has no configuration", path)
	}
	return &s, nil
}
