package save

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore keeps one pretty-printed JSON file per save under a single
// directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, sanitizeName(name)+".json")
}

// sanitizeName strips anything that could escape the save directory.
func sanitizeName(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".json")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "save"
	}
	return b.String()
}

func (s *FileStore) Save(_ context.Context, name string, snap *Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), raw, 0o644)
}

func (s *FileStore) List(_ context.Context) ([]Info, error) {
	out := []Info{}
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return nil // skip unreadable saves rather than failing the list
		}
		name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		out = append(out, Info{Name: name, RoomID: snap.RoomID, SavedAt: snap.SavedAt})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

func (s *FileStore) Load(_ context.Context, name string) (*Snapshot, error) {
	raw, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Decode parses and validates a snapshot blob. Also used for saves uploaded
// directly by a client.
func Decode(raw []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}
