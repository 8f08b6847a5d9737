package scanstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := OpenSQLite(context.Background(), filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "last_scan_time.json")),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(90 * time.Minute)

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.LastScan(ctx)
			require.NoError(t, err)
			assert.Nil(t, got, "fresh store has no scan")

			require.NoError(t, store.SetLastScan(ctx, first))
			require.NoError(t, store.SetLastScan(ctx, second))

			got, err = store.LastScan(ctx)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, second.Equal(*got), "got %v", got)
		})
	}
}

func TestFileStoreGarbledFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := NewFileStore(path).LastScan(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreWritesBothFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, NewFileStore(path).SetLastScan(context.Background(), ts))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"last_scan_time": "2024-05-01T12:00:00Z"`)
	assert.Contains(t, string(data), `"scan_date"`)
}

func TestForceFullHidesLastScan(t *testing.T) {
	ctx := context.Background()
	inner := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, inner.SetLastScan(ctx, ts))

	forced := ForceFull(inner)
	got, err := forced.LastScan(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	later := ts.Add(time.Hour)
	require.NoError(t, forced.SetLastScan(ctx, later))
	got, err = inner.LastScan(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, later.Equal(*got))
}

func TestFormatForDisplay(t *testing.T) {
	assert.Equal(t, "never", FormatForDisplay(nil))

	ts := time.Date(2024, 5, 1, 12, 30, 45, 0, time.Local)
	assert.Equal(t, "2024-05-01 12:30:45", FormatForDisplay(&ts))
}
