package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectScanner(t *testing.T) {
	tempDir := t.TempDir()

	files := map[string]string{
		"main.xq":             "1 + 1",
		"lib.xqm":             "module namespace m = \"urn:m\";",
		"notes.txt":           "This is a text file",
		"subdir/query.xquery": "<a/>",
		"subdir/UPPER.XQY":    "()",
		".git/hooks/pre.xq":   "1",
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}

	scannedFiles, err := New(tempDir, QueryExtensions...).Scan()
	require.NoError(t, err)

	var paths []string
	for _, file := range scannedFiles {
		paths = append(paths, file.Path)
		assert.Greater(t, file.Size, int64(0), "File size should be greater than 0")
	}

	assert.Equal(t, []string{
		filepath.Join(tempDir, "lib.xqm"),
		filepath.Join(tempDir, "main.xq"),
		filepath.Join(tempDir, "subdir/UPPER.XQY"),
		filepath.Join(tempDir, "subdir/query.xquery"),
	}, paths)
}

func TestScanAllFiles(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "b.xq"), []byte("b"), 0o644))

	scannedFiles, err := New(tempDir).Scan()
	require.NoError(t, err)
	assert.Len(t, scannedFiles, 2)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), ".xq").Scan()
	assert.Error(t, err)
}

func TestIsQueryFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.xq", true},
		{"dir/b.xqy", true},
		{"c.xql", true},
		{"d.xqm", true},
		{"e.XQuery", true},
		{"f.xml", false},
		{"xq", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsQueryFile(tt.path), tt.path)
	}
}
