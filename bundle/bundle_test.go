package bundle

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	for name, contents := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}
}

func archiveNames(t *testing.T, archive string) (names []string) {
	f, err := os.Open(archive)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
	sort.Strings(names)
	return
}

func TestPack(t *testing.T) {
	srcDir := t.TempDir()
	writeTree(t, srcDir, map[string]string{
		"index.js":    "app\n",
		"lib/util.js": "util\n",
	})

	b := New(srcDir, nil)
	archive, err := b.Pack()
	require.NoError(t, err)

	assert.Equal(t, b.ArchivePath(), archive)
	assert.Equal(t, []string{"index.js", "lib/util.js"}, archiveNames(t, archive))

	// staged files are left on disk for inspection
	_, err = os.Stat(filepath.Join(b.StageDir(), "lib", "util.js"))
	assert.NoError(t, err)
}

func TestPackPatterns(t *testing.T) {
	srcDir := t.TempDir()
	writeTree(t, srcDir, map[string]string{
		"index.js":     "app\n",
		"readme.md":    "docs\n",
		"lib/util.js":  "util\n",
		"lib/notes.md": "notes\n",
	})

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			"empty list includes everything",
			nil,
			[]string{"index.js", "lib/notes.md", "lib/util.js", "readme.md"},
		},
		{
			"include only matching files",
			[]string{"*.js"},
			[]string{"index.js", "lib/util.js"},
		},
		{
			"exclusions apply to the default include",
			[]string{"!*.md"},
			[]string{"index.js", "lib/util.js"},
		},
		{
			"later patterns override earlier ones",
			[]string{"*.js", "!lib/*"},
			[]string{"index.js"},
		},
		{
			"re-include after exclusion",
			[]string{"*", "!*.md", "readme.md"},
			[]string{"index.js", "lib/util.js", "readme.md"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(srcDir, tt.patterns)
			archive, err := b.Pack()
			require.NoError(t, err)
			assert.Equal(t, tt.want, archiveNames(t, archive))
		})
	}
}

func TestPackNeverNestsOlderBundle(t *testing.T) {
	srcDir := t.TempDir()
	writeTree(t, srcDir, map[string]string{"index.js": "app\n"})

	b := New(srcDir, nil)
	_, err := b.Pack()
	require.NoError(t, err)

	// the working area from the first pack must not leak into the second
	archive, err := b.Pack()
	require.NoError(t, err)
	assert.Equal(t, []string{"index.js"}, archiveNames(t, archive))
}

func TestClear(t *testing.T) {
	srcDir := t.TempDir()
	writeTree(t, srcDir, map[string]string{"index.js": "app\n"})

	b := New(srcDir, nil)
	_, err := b.Pack()
	require.NoError(t, err)

	require.NoError(t, b.Clear())
	_, err = os.Stat(b.StageDir())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(b.ArchivePath())
	assert.True(t, os.IsNotExist(err))

	// clearing an absent bundle is a no-op, not an error
	assert.NoError(t, b.Clear())
}

func TestSelected(t *testing.T) {
	tests := []struct {
		name     string
		rel      string
		base     string
		patterns []string
		want     bool
	}{
		{"no patterns includes", "a/b.js", "b.js", nil, true},
		{"basename match", "a/b.js", "b.js", []string{"*.js"}, true},
		{"path match", "a/b.js", "b.js", []string{"a/*"}, true},
		{"non-match with includes present", "a/b.md", "b.md", []string{"*.js"}, false},
		{"non-match with only exclusions", "a/b.js", "b.js", []string{"!*.md"}, true},
		{"last match wins", "a/b.js", "b.js", []string{"*.js", "!a/*"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selected(tt.rel, tt.base, tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
