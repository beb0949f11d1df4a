package printer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpoolPrinter_WritesJobFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewSpoolPrinter(dir)

	require.NoError(t, p.Print([]byte("first")))
	require.NoError(t, p.Print([]byte("second")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.Regexp(t, `^receipt-.*\.escpos$`, e.Name())
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSpoolPrinter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "spool")
	p := NewSpoolPrinter(dir)

	require.NoError(t, p.Print([]byte("job")))
	assert.DirExists(t, dir)
	assert.True(t, p.IsConnected())
}
