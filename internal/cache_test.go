package internal

import (
	"context"
	"go/token"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
)

func testIssues(filename string) []tt.Issue {
	return []tt.Issue{
		{
			Rule:     "test-rule",
			Category: "test-category",
			Filename: filename,
			Message:  "test issue",
			Start:    token.Position{Filename: filename, Line: 1, Column: 1},
			End:      token.Position{Filename: filename, Line: 1, Column: 10},
			Severity: tt.SeverityWarning,
		},
	}
}

func TestCache(t *testing.T) {
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "cache")
	cache, err := NewCache(cacheDir, "key")
	require.NoError(t, err)

	t.Run("SaveAndLoad", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "test.xq")
		writeTestFile(t, filename, "1 + 1\n")
		issues := testIssues(filename)

		require.NoError(t, cache.Set(filename, issues))

		loaded, found := cache.Get(filename)
		assert.True(t, found)
		assert.Equal(t, issues, loaded)

		reopened, err := NewCache(cacheDir, "key")
		require.NoError(t, err)
		loaded, found = reopened.Get(filename)
		assert.True(t, found)
		assert.Equal(t, issues, loaded)

		// issues produced under other settings are not reused
		otherKey, err := NewCache(cacheDir, "other")
		require.NoError(t, err)
		_, found = otherKey.Get(filename)
		assert.False(t, found)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.xq")
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "modified.xq")
		writeTestFile(t, filename, "1 + 1\n")
		require.NoError(t, cache.Set(filename, testIssues(filename)))

		writeTestFile(t, filename, "2 + 2\n")
		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("Expired", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "expired.xq")
		writeTestFile(t, filename, "1\n")
		require.NoError(t, cache.Set(filename, testIssues(filename)))

		cache.SetMaxAge(-1)
		defer cache.SetMaxAge(defaultMaxAge)
		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "all.xq")
		writeTestFile(t, filename, "1\n")
		require.NoError(t, cache.Set(filename, testIssues(filename)))

		cache.InvalidateAll()
		_, found := cache.Get(filename)
		assert.False(t, found)
	})
}

func TestCacheDependencyChanged(t *testing.T) {
	tmpDir := t.TempDir()
	config := filepath.Join(tmpDir, ".xqlint.yaml")
	writeTestFile(t, config, "name: xqlint\n")
	filename := filepath.Join(tmpDir, "test.xq")
	writeTestFile(t, filename, "1\n")

	cache, err := NewCache(filepath.Join(tmpDir, "cache"), "key", config)
	require.NoError(t, err)
	require.NoError(t, cache.Set(filename, testIssues(filename)))

	_, found := cache.Get(filename)
	assert.True(t, found)

	writeTestFile(t, config, "name: changed\n")
	_, found = cache.Get(filename)
	assert.False(t, found)
}

func TestCacheWithEngine(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"), "key")
	require.NoError(t, err)

	engine, err := NewEngine(dialect.Default(), nil)
	require.NoError(t, err)
	engine.UseCache(cache)

	filename := filepath.Join(tmpDir, "test.xq")
	writeTestFile(t, filename, "(1 + \n")

	issues, err := engine.Run(context.Background(), filename)
	require.NoError(t, err)
	assert.NotEmpty(t, issues)

	cached, found := cache.Get(filename)
	require.True(t, found)
	assert.Equal(t, issues, cached)

	again, err := engine.Run(context.Background(), filename)
	require.NoError(t, err)
	assert.Equal(t, issues, again)

	writeTestFile(t, filename, "(1 + 2)\n")
	fixed, err := engine.Run(context.Background(), filename)
	require.NoError(t, err)
	assert.Empty(t, fixed)
}

func TestCacheConcurrency(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"), "key")
	require.NoError(t, err)

	testFile := filepath.Join(tmpDir, "test.xq")
	writeTestFile(t, testFile, "1\n")
	issues := testIssues(testFile)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.Set(testFile, issues))
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(testFile)
		}()
	}
	wg.Wait()

	loaded, found := cache.Get(testFile)
	assert.True(t, found)
	assert.Equal(t, issues, loaded)
}

func writeTestFile(t *testing.T, filename string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
}
