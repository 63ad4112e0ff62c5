package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileEntry records provenance of one cached dataset file.
type FileEntry struct {
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Manifest tracks checksums and fetch times of cached dataset files.
type Manifest struct {
	Files     map[string]FileEntry `json:"files"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// LoadManifest reads the cache manifest from a JSON file. Returns an empty
// manifest if the file doesn't exist.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{Files: map[string]FileEntry{}}, nil
		}
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Files == nil {
		m.Files = map[string]FileEntry{}
	}
	return &m, nil
}

// SaveManifest writes the cache manifest to a JSON file.
func SaveManifest(path string, m *Manifest) error {
	m.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
