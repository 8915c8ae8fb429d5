package surface

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifestJSON = `{
	"width": 1500,
	"height": 2100,
	"layers": [
		{"name": "Text and Icons", "group": true, "children": [
			{"name": "Card Name", "is_text": true, "bounds": {"left": 100, "top": 100, "right": 1200, "bottom": 180}},
			{"name": "Typeline", "is_text": true}
		]},
		{"name": "Background", "group": true, "children": [
			{"name": "W", "hidden": true},
			{"name": "U", "hidden": true}
		]}
	]
}`

func writeManifest(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestManifestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "normal.json", testManifestJSON)

	ld := &ManifestLoader{Dir: dir}
	doc, err := ld.Load(filepath.Join(dir, "normal.psd"))
	require.NoError(t, err)

	assert.Equal(t, "normal", doc.Name())

	mem, ok := doc.(*MemDocument)
	require.True(t, ok)
	canvas := mem.Flatten().Bounds()
	assert.Equal(t, 1500, canvas.Dx())
	assert.Equal(t, 2100, canvas.Dy())

	name := doc.FindLayer("Card Name")
	require.NotNil(t, name)
	bounds, err := doc.Bounds(name)
	require.NoError(t, err)
	assert.Equal(t, 100.0, bounds.Left)
	assert.Equal(t, 180.0, bounds.Bottom)

	w := doc.FindLayer("W")
	require.NotNil(t, w)
	assert.False(t, mem.Visible(w))
}

func TestManifestLoaderCachesParsedManifests(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "normal.json", testManifestJSON)

	ld := &ManifestLoader{Dir: dir}
	_, err := ld.Load(filepath.Join(dir, "normal.psd"))
	require.NoError(t, err)

	// A later load must not re-read the file.
	require.NoError(t, os.Remove(path))
	doc, err := ld.Load(filepath.Join(dir, "normal.psd"))
	require.NoError(t, err)
	assert.NotNil(t, doc.FindLayer("Typeline"))
}

func TestManifestLoaderMissingManifest(t *testing.T) {
	dir := t.TempDir()
	ld := &ManifestLoader{Dir: dir}

	_, err := ld.Load(filepath.Join(dir, "saga.psd"))
	assert.Error(t, err)
}

func TestManifestLoaderPing(t *testing.T) {
	dir := t.TempDir()

	ld := &ManifestLoader{Dir: dir}
	assert.NoError(t, ld.Ping())

	ld = &ManifestLoader{Dir: filepath.Join(dir, "gone")}
	err := ld.Ping()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestReadManifestRejectsEmptyTree(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "empty.json", `{"width": 10, "height": 10}`)

	_, err := ReadManifest(path)
	assert.Error(t, err)
}
