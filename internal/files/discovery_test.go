package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("id\n"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	discovery := NewDiscovery("/test/base")

	assert.NotNil(t, discovery)
	assert.Equal(t, "/test/base", discovery.basePath)
}

func TestListFiles(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		subdirs   []string
		wantNames []string
	}{
		{
			name:      "sorted regardless of creation order",
			files:     []string{"c.dat", "a.dat", "b.dat"},
			wantNames: []string{"a.dat", "b.dat", "c.dat"},
		},
		{
			name:      "any extension is listed",
			files:     []string{"employees.dat", "extra.tsv", "notes.txt"},
			wantNames: []string{"employees.dat", "extra.tsv", "notes.txt"},
		},
		{
			name:      "sub-directories are skipped",
			files:     []string{"top.dat"},
			subdirs:   []string{"nested"},
			wantNames: []string{"top.dat"},
		},
		{
			name:      "empty directory",
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFiles(t, dir, tt.files...)
			for _, sub := range tt.subdirs {
				require.NoError(t, os.Mkdir(filepath.Join(dir, sub), 0755))
				createFiles(t, filepath.Join(dir, sub), "hidden.dat")
			}

			files, err := NewDiscovery("").ListFiles(dir)
			require.NoError(t, err)

			var names []string
			for _, f := range files {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestListFiles_RelativeToBase(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "input"), 0755))
	createFiles(t, filepath.Join(base, "input"), "x.dat")

	files, err := NewDiscovery(base).ListFiles("input")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "input", "x.dat"), files[0].Path)
	assert.Equal(t, int64(3), files[0].Size)
}

func TestListFiles_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery("").ListFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFilesByPattern(t *testing.T) {
	dir := t.TempDir()
	createFiles(t, dir, "b.dat", "a.dat", "c.csv")

	files, err := NewDiscovery("").FindFilesByPattern(dir, "*.dat")
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "a.dat"), filepath.Join(dir, "b.dat")}, Paths(files))
}

func TestFindFilesByPattern_InvalidPattern(t *testing.T) {
	_, err := NewDiscovery("").FindFilesByPattern(t.TempDir(), "[")
	assert.Error(t, err)
}
