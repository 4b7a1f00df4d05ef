package geocode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeed(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeSeedFile(t, `
- address: "100 Main St, Springfield, MA 01103"
  lat: 42.1015
  lon: -72.5898
- address: "1 City Hall Square, Boston, MA 02201"
  lat: 42.3601
  lon: -71.0589
`)

		known, err := LoadSeed(path)
		require.NoError(t, err)
		require.Len(t, known, 2)
		assert.Equal(t, 42.1015, known["100 Main St, Springfield, MA 01103"].Lat)
		assert.Equal(t, -71.0589, known["1 City Hall Square, Boston, MA 02201"].Lon)
	})

	t.Run("missing address", func(t *testing.T) {
		path := writeSeedFile(t, "- lat: 1.0\n  lon: 2.0\n")
		_, err := LoadSeed(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing address")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeSeedFile(t, "{not yaml")
		_, err := LoadSeed(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
