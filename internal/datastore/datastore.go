package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store keeps timestamped JSON snapshots on disk, one file per fetch,
// named {symbol}_{prefix}_{timestamp}.json. Agents receive the file
// paths and decide whether a stored snapshot is fresh enough to reuse.
type Store struct {
	dir string
}

const timestampLayout = "20060102_150405"

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Put stores v as a new snapshot file and returns its path.
func (s *Store) Put(symbol, prefix string, v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.json", symbol, prefix, time.Now().Format(timestampLayout))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}

// Latest returns the path and age of the newest snapshot for the symbol
// and prefix, or ok=false when none exists.
func (s *Store) Latest(symbol, prefix string) (path string, age time.Duration, ok bool) {
	matches := s.glob(symbol, prefix)
	if len(matches) == 0 {
		return "", 0, false
	}
	sort.Strings(matches)
	latest := matches[len(matches)-1]

	ts, err := parseTimestamp(latest, symbol, prefix)
	if err != nil {
		// Fall back to file mtime for names we cannot parse.
		info, statErr := os.Stat(latest)
		if statErr != nil {
			return "", 0, false
		}
		ts = info.ModTime()
	}
	return latest, time.Since(ts), true
}

// Read unmarshals the latest snapshot for the symbol and prefix into v.
func (s *Store) Read(symbol, prefix string, v any) error {
	path, _, ok := s.Latest(symbol, prefix)
	if !ok {
		return fmt.Errorf("no snapshot for %s/%s", symbol, prefix)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	return json.Unmarshal(b, v)
}

// List returns all snapshot paths, optionally filtered by prefix.
func (s *Store) List(prefix string) []string {
	pattern := "*.json"
	if prefix != "" {
		pattern = fmt.Sprintf("*_%s_*.json", prefix)
	}
	matches, _ := filepath.Glob(filepath.Join(s.dir, pattern))
	sort.Strings(matches)
	return matches
}

// Prune deletes snapshots older than maxAge and returns how many were
// removed.
func (s *Store) Prune(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	deleted := 0
	for _, path := range s.List("") {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				continue
			}
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) glob(symbol, prefix string) []string {
	pattern := filepath.Join(s.dir, fmt.Sprintf("%s_%s_*.json", symbol, prefix))
	matches, _ := filepath.Glob(pattern)
	return matches
}

func parseTimestamp(path, symbol, prefix string) (time.Time, error) {
	base := filepath.Base(path)
	lead := fmt.Sprintf("%s_%s_", symbol, prefix)
	raw := strings.TrimSuffix(strings.TrimPrefix(base, lead), ".json")
	return time.ParseInLocation(timestampLayout, raw, time.Local)
}
