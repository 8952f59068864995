package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(sourceID, source, format string, at time.Time) *types.Run {
	return &types.Run{
		SourceID:   sourceID,
		Source:     source,
		Lines:      3,
		Format:     format,
		DetectedAt: at,
	}
}

func TestNew(t *testing.T) {
	t.Run("requires path", func(t *testing.T) {
		_, err := New(Config{})
		assert.Error(t, err)
	})

	t.Run("memory backend", func(t *testing.T) {
		s, err := New(Config{Path: ":memory:"})
		require.NoError(t, err)
		defer s.Close()

		_, ok := s.(*MemoryStore)
		assert.True(t, ok)
	})

	t.Run("sqlite backend", func(t *testing.T) {
		s, err := New(Config{Path: filepath.Join(t.TempDir(), "test.db")})
		require.NoError(t, err)
		defer s.Close()

		_, ok := s.(*SQLiteStore)
		assert.True(t, ok)
	})
}

// storeContract exercises the behavior both backends must share.
func storeContract(t *testing.T, s Store) {
	base := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.AddRun(testRun("aaa", "dates-a.txt", "%Y-%m-%d", base)))
	require.NoError(t, s.AddRun(testRun("bbb", "dates-b.txt", "%d %b %Y", base.Add(time.Minute))))

	failed := &types.Run{
		SourceID:   "ccc",
		Source:     "garbage.txt",
		Lines:      1,
		Failure:    "unmatched",
		DetectedAt: base.Add(2 * time.Minute),
	}
	require.NoError(t, s.AddRun(failed))

	exists, err := s.RunExists("aaa")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.RunExists("nope")
	require.NoError(t, err)
	assert.False(t, exists)

	runs, err := s.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Most recent first.
	assert.Equal(t, "ccc", runs[0].SourceID)
	assert.Equal(t, "unmatched", runs[0].Failure)
	assert.Empty(t, runs[0].Format)
	assert.Equal(t, "bbb", runs[1].SourceID)
	assert.Equal(t, "%d %b %Y", runs[1].Format)
	assert.Equal(t, "aaa", runs[2].SourceID)

	// Re-running the same source replaces the record.
	require.NoError(t, s.AddRun(testRun("aaa", "dates-a.txt", "%Y/%m/%d", base.Add(3*time.Minute))))

	runs, err = s.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "aaa", runs[0].SourceID)
	assert.Equal(t, "%Y/%m/%d", runs[0].Format)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	storeContract(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()

	storeContract(t, s)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.AddRun(testRun("aaa", "dates-a.txt", "%Y-%m-%d", time.Now())))
	require.NoError(t, s.Close())

	// Runs survive reopening.
	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	exists, err := s.RunExists("aaa")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestComputeSourceID(t *testing.T) {
	a := types.ComputeSourceID([]string{"2014-12-15", "2015-01-09"})
	b := types.ComputeSourceID([]string{"2014-12-15", "2015-01-09"})
	assert.Equal(t, a, b, "same content, same ID")

	reordered := types.ComputeSourceID([]string{"2015-01-09", "2014-12-15"})
	assert.NotEqual(t, a, reordered, "order is part of the identity")

	resplit := types.ComputeSourceID([]string{"2014-12-152015-01-09"})
	assert.NotEqual(t, a, resplit, "line boundaries are part of the identity")
}
