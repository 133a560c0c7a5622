package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store handles persistence of the seen-set.
type Store struct {
	path string
}

// state is the on-disk layout. Posted keeps its historical name so state
// files written by earlier deployments stay readable.
type state struct {
	Posted []string `json:"posted"`
}

// New creates a store writing to path, expanding a leading ~/.
func New(path string) (*Store, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	return &Store{path: path}, nil
}

// Load reads the seen-set. A missing file yields an empty set, which the
// pipeline treats as a bootstrap run.
func (s *Store) Load() (map[string]struct{}, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]struct{}), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}

	seen := make(map[string]struct{}, len(st.Posted))
	for _, uid := range st.Posted {
		seen[uid] = struct{}{}
	}
	return seen, nil
}

// Save writes the seen-set, sorted, replacing the previous file. Called
// exactly once per successful run.
func (s *Store) Save(seen map[string]struct{}) error {
	uids := make([]string, 0, len(seen))
	for uid := range seen {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	data, err := json.MarshalIndent(state{Posted: uids}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
