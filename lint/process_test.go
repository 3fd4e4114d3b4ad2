package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
)

// TestProcessPathContextCancellation tests that a cancelled context stops
// dispatching files
func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	for i := 0; i < 10; i++ {
		filename := filepath.Join(tempDir, fmt.Sprintf("test%d.xq", i))
		content := fmt.Sprintf("xquery version \"1.0\";\n\"%d\" || \"x\"\n", i)
		require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	}

	engine, err := New("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	issues, err := ProcessPath(ctx, nil, engine, tempDir, ProcessFile)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, issues)
}

// TestProcessPathCollectsAllFiles tests that every worker result is kept
func TestProcessPathCollectsAllFiles(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	// file i has i+1 unknown entity references
	for i := 0; i < 5; i++ {
		filename := filepath.Join(tempDir, fmt.Sprintf("test%d.xq", i))
		content := ""
		for j := 0; j <= i; j++ {
			content += "\"&bogus;\",\n"
		}
		content += "()\n"
		require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	}

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, tempDir, ProcessFile)
	require.NoError(t, err)

	perFile := make(map[string]int)
	for _, issue := range issues {
		assert.Equal(t, "unknown-entity", issue.Rule)
		perFile[filepath.Base(issue.Filename)]++
	}
	assert.Len(t, perFile, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, i+1, perFile[fmt.Sprintf("test%d.xq", i)])
	}
}

// TestConcurrentProcessingWithErrors tests that unreadable files are
// reported without dropping the issues of the others
func TestConcurrentProcessingWithErrors(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	for i := 0; i < 3; i++ {
		filename := filepath.Join(tempDir, fmt.Sprintf("invalid%d.xq", i))
		require.NoError(t, os.WriteFile(filename, []byte("(1 +"), 0o644))
	}

	// a dangling link is listed but cannot be read
	broken := filepath.Join(tempDir, "broken.xq")
	require.NoError(t, os.Symlink(filepath.Join(tempDir, "missing.xq"), broken))

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, tempDir, ProcessFile)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.xq")

	files := make(map[string]bool)
	for _, issue := range issues {
		assert.Equal(t, "syntax-error", issue.Rule)
		files[filepath.Base(issue.Filename)] = true
	}
	assert.Len(t, files, 3)
}

// TestSyntaxErrorsAreIssues tests that a malformed query yields issues
// rather than an error
func TestSyntaxErrorsAreIssues(t *testing.T) {
	t.Parallel()

	invalidFile := filepath.Join(t.TempDir(), "invalid.xq")
	require.NoError(t, os.WriteFile(invalidFile, []byte("for $x in"), 0o644))

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, invalidFile, ProcessFile)
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	for _, issue := range issues {
		assert.Equal(t, tt.SeverityError, issue.Severity)
	}
}

func TestProcessPathEmptyDirectory(t *testing.T) {
	t.Parallel()

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, t.TempDir(), ProcessFile)
	require.NoError(t, err)
	assert.Equal(t, []tt.Issue{}, issues)
}
