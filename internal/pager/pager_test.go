package pager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minidb/internal/layout"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestOpenFreshFileHasZeroPages(t *testing.T) {
	p, err := Open(tempDBPath(t), nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), p.NumPages())
}

func TestGetPageCacheMissAllocatesZeroedPage(t *testing.T) {
	p, err := Open(tempDBPath(t), nil)
	require.NoError(t, err)

	page, err := p.GetPage(0)
	require.NoError(t, err)
	for _, b := range page.Buffer {
		require.Equal(t, byte(0), b)
	}
	assert.Equal(t, uint32(1), p.NumPages())
}

func TestGetPageBeyondMaxPagesFails(t *testing.T) {
	p, err := Open(tempDBPath(t), nil)
	require.NoError(t, err)

	_, err = p.GetPage(layout.MaxPages + 1)
	require.Error(t, err)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindPagesFull, pe.Kind)
	assert.Equal(t, "PagesFull", pe.String())
}

func TestFlushThenReopenRoundTrips(t *testing.T) {
	path := tempDBPath(t)

	p, err := Open(path, nil)
	require.NoError(t, err)

	page, err := p.GetPage(0)
	require.NoError(t, err)
	page.Buffer[0] = 0xAB
	page.Buffer[layout.PageSize-1] = 0xCD

	require.NoError(t, p.Flush())
	require.NoError(t, p.Close())

	p2, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p2.NumPages())

	page2, err := p2.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), page2.Buffer[0])
	assert.Equal(t, byte(0xCD), page2.Buffer[layout.PageSize-1])
}

func TestOpenRejectsCorruptLength(t *testing.T) {
	path := tempDBPath(t)

	require.NoError(t, os.WriteFile(path, make([]byte, layout.PageSize+17), 0666))

	_, err := Open(path, nil)
	require.Error(t, err)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindCorruptFile, pe.Kind)
	assert.Equal(t, "CorruptFile", pe.String())
}

func TestShortReadOnExistingPageIsCorrupt(t *testing.T) {
	path := tempDBPath(t)

	// Two whole pages on disk...
	require.NoError(t, os.WriteFile(path, make([]byte, 2*layout.PageSize), 0666))

	p, err := Open(path, nil)
	require.NoError(t, err)

	// ...but truncate out from under the pager before it reads page 1.
	require.NoError(t, os.Truncate(path, layout.PageSize+10))

	_, err = p.GetPage(1)
	require.Error(t, err)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindCorruptFile, pe.Kind)
}
