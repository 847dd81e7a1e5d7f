package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndRead(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	in := map[string]any{"sector": "Technology"}
	path, err := s.Put("MSFT", "corporate_info", in)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Contains(t, filepath.Base(path), "MSFT_corporate_info_")

	var out map[string]any
	require.NoError(t, s.Read("MSFT", "corporate_info", &out))
	assert.Equal(t, "Technology", out["sector"])
}

func TestLatestPicksNewest(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	old := filepath.Join(s.Dir(), "MSFT_corporate_info_20240101_000000.json")
	newer := filepath.Join(s.Dir(), "MSFT_corporate_info_20250101_000000.json")
	require.NoError(t, os.WriteFile(old, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("{}"), 0o644))

	path, age, ok := s.Latest("MSFT", "corporate_info")
	require.True(t, ok)
	assert.Equal(t, newer, path)
	assert.Greater(t, age, time.Duration(0))
}

func TestLatestMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, ok := s.Latest("MSFT", "corporate_info")
	assert.False(t, ok)
}

func TestLatestIgnoresOtherSymbols(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Put("AAPL", "corporate_info", map[string]any{})
	require.NoError(t, err)

	_, _, ok := s.Latest("MSFT", "corporate_info")
	assert.False(t, ok)
}

func TestListByPrefix(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Put("MSFT", "corporate_info", map[string]any{})
	require.NoError(t, err)
	_, err = s.Put("MSFT", "industry_info", map[string]any{})
	require.NoError(t, err)

	assert.Len(t, s.List("corporate_info"), 1)
	assert.Len(t, s.List("industry_info"), 1)
	assert.Len(t, s.List(""), 2)
}

func TestPrune(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	stale := filepath.Join(s.Dir(), "MSFT_corporate_info_20200101_000000.json")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o644))
	past := time.Now().Add(-40 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(stale, past, past))

	_, err = s.Put("MSFT", "corporate_info", map[string]any{})
	require.NoError(t, err)

	deleted, err := s.Prune(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Len(t, s.List(""), 1)
}
