package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipguard/clipguard/pkg/keychain"
	"github.com/clipguard/clipguard/pkg/policy"
)

func snapshotPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.bin")
}

func TestSnapshotRoundTrip(t *testing.T) {
	clk := newFakeClock()
	path := snapshotPath(t)

	src := newTestStore(t, clk, 0)
	plain, err := src.Insert("meeting notes for tomorrow")
	require.NoError(t, err)
	_, err = src.Insert(segwitSample)
	require.NoError(t, err)
	require.NoError(t, src.Pin(plain.ID))

	require.NoError(t, src.SaveSnapshot(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dst := newTestStore(t, clk, 0)
	require.NoError(t, dst.LoadSnapshot(path))

	list := dst.List()
	require.Len(t, list, 2)

	byState := map[State]int{}
	for _, r := range list {
		byState[r.State]++
		assert.Equal(t, clk.Now(), r.CreatedAt)
	}
	assert.Equal(t, 1, byState[StatePinned])
	assert.Equal(t, 1, byState[StateActive])

	// Restored content is intact.
	buf, err := dst.Reveal(list[0].ID)
	require.NoError(t, err)
	defer buf.Destroy()
	assert.Equal(t, "meeting notes for tomorrow", buf.String())
}

func TestSnapshotExcludesHighRisk(t *testing.T) {
	clk := newFakeClock()
	path := snapshotPath(t)

	src := newTestStore(t, clk, 0)
	_, err := src.Insert(nsecSample)
	require.NoError(t, err)
	_, err = src.Insert("harmless reminder text")
	require.NoError(t, err)

	require.NoError(t, src.SaveSnapshot(path))

	dst := newTestStore(t, clk, 0)
	require.NoError(t, dst.LoadSnapshot(path))

	list := dst.List()
	require.Len(t, list, 1)
	assert.Equal(t, policy.Minimal, list[0].Risk)

	buf, err := dst.Reveal(list[0].ID)
	require.NoError(t, err)
	defer buf.Destroy()
	assert.Equal(t, "harmless reminder text", buf.String())
}

func TestSnapshotDropsElapsedRecords(t *testing.T) {
	clk := newFakeClock()
	path := snapshotPath(t)

	src := newTestStore(t, clk, 0)
	_, err := src.Insert(segwitSample)
	require.NoError(t, err)
	_, err = src.Insert("note without any findings")
	require.NoError(t, err)
	require.NoError(t, src.SaveSnapshot(path))

	// The address record's window elapses between save and load.
	clk.Advance(time.Minute)

	dst := newTestStore(t, clk, 0)
	require.NoError(t, dst.LoadSnapshot(path))

	list := dst.List()
	require.Len(t, list, 1)
	assert.Equal(t, policy.Minimal, list[0].Risk)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	st := newTestStore(t, newFakeClock(), 0)
	assert.NoError(t, st.LoadSnapshot(snapshotPath(t)))
	assert.Empty(t, st.List())
}

func TestLoadSnapshotRejectsGarbage(t *testing.T) {
	st := newTestStore(t, newFakeClock(), 0)

	short := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(short, []byte("tiny"), 0o600))
	assert.ErrorIs(t, st.LoadSnapshot(short), ErrCorrupt)

	garbage := filepath.Join(t.TempDir(), "garbage.bin")
	require.NoError(t, os.WriteFile(garbage, make([]byte, 64), 0o600))
	assert.ErrorIs(t, st.LoadSnapshot(garbage), ErrCorrupt)
}

func TestLoadSnapshotRejectsForeignKey(t *testing.T) {
	clk := newFakeClock()
	path := snapshotPath(t)

	src := newTestStore(t, clk, 0)
	_, err := src.Insert("some text")
	require.NoError(t, err)
	require.NoError(t, src.SaveSnapshot(path))

	other := make([]byte, keychain.KeySize)
	for i := range other {
		other[i] = byte(0xa0 + i)
	}
	dst := New(keychain.Static{K: other}, Options{Clock: clk.Now})
	assert.ErrorIs(t, dst.LoadSnapshot(path), ErrCorrupt)
}

func TestLoadSnapshotDisabledStore(t *testing.T) {
	st := New(keychain.Static{}, Options{})
	assert.ErrorIs(t, st.LoadSnapshot("unused"), ErrPersistenceDisabled)
}
