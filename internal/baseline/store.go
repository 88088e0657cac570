package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"phonebox-scanner/internal/slotid"
)

// Store loads and saves a baseline profile map.
type Store interface {
	Load() (map[string]Profile, error)
	Save(profiles map[string]Profile) error
}

// FileStore persists profiles as a JSON array on disk.
type FileStore struct {
	Path string
}

// NewFileStore creates a store backed by the given file.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the profile file. A missing file yields an empty map.
// Keys are re-normalized so hand-edited files still join correctly.
func (fs *FileStore) Load() (map[string]Profile, error) {
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Profile), nil
		}
		return nil, fmt.Errorf("failed to read baselines: %w", err)
	}

	var records []Profile
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse baselines: %w", err)
	}

	profiles := make(map[string]Profile, len(records))
	for _, r := range records {
		id := slotid.Normalize(r.SecurityNumber)
		if id == "" {
			continue
		}
		r.SecurityNumber = id
		profiles[id] = r
	}
	return profiles, nil
}

// Save writes the profiles as an indented JSON array sorted by
// identifier, creating the parent directory if needed.
func (fs *FileStore) Save(profiles map[string]Profile) error {
	records := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		records = append(records, p)
	}
	sortProfiles(records)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize baselines: %w", err)
	}

	if dir := filepath.Dir(fs.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create baseline directory: %w", err)
		}
	}

	if err := os.WriteFile(fs.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write baselines: %w", err)
	}
	return nil
}

// DefaultPath returns the per-user baseline file location, creating its
// directory. Falls back to ~/.config when the platform config directory
// cannot be determined.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine config directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	appDir := filepath.Join(configDir, "phonebox-scanner")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}

	return filepath.Join(appDir, "baselines.json"), nil
}
