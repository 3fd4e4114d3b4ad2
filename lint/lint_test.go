package lint

import (
	"context"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/entity"
)

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) Run(_ context.Context, filePath string) ([]types.Issue, error) {
	args := m.Called(filePath)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) RunSource(_ context.Context, source []byte) ([]types.Issue, error) {
	args := m.Called(source)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func (m *mockLintEngine) IgnorePath(path string) {
	m.Called(path)
}

func issueAt(rule, filename, message string) types.Issue {
	return types.Issue{
		Rule:     rule,
		Filename: filename,
		Start:    token.Position{Filename: filename, Offset: 0, Line: 1, Column: 1},
		End:      token.Position{Filename: filename, Offset: 10, Line: 1, Column: 11},
		Message:  message,
	}
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expectedIssues := []types.Issue{issueAt("test-rule", "test.xq", "Test issue")}
	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", "test.xq").Return(expectedIssues, nil)

	issues, err := ProcessFile(context.Background(), mockEngine, "test.xq")

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	expectedIssues := []types.Issue{issueAt("test-rule", "", "Test issue")}
	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", []byte("1 + 1")).Return(expectedIssues, nil)

	issues, err := ProcessSource(context.Background(), mockEngine, []byte("1 + 1"))

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	tempDir := t.TempDir()

	paths := createTempFiles(t, tempDir, "test1.xq", "test2.xqm", "notes.txt")

	expectedIssues := []types.Issue{
		issueAt("rule1", paths[0], "Test issue 1"),
		issueAt("rule2", paths[1], "Test issue 2"),
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{expectedIssues[0]}, nil)
	mockEngine.On("Run", paths[1]).Return([]types.Issue{expectedIssues[1]}, nil)

	issues, err := ProcessPath(context.Background(), logger, mockEngine, tempDir, ProcessFile)

	assert.NoError(t, err)
	assert.Len(t, issues, 2)
	assert.Contains(t, issues, expectedIssues[0])
	assert.Contains(t, issues, expectedIssues[1])
	mockEngine.AssertExpectations(t)
	mockEngine.AssertNotCalled(t, "Run", paths[2])
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "query.xql", "readme.md")

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{issueAt("rule", paths[0], "m")}, nil)

	issues, err := ProcessPath(context.Background(), nil, mockEngine, paths[0], ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 1)

	issues, err = ProcessPath(context.Background(), nil, mockEngine, paths[1], ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, issues)

	_, err = ProcessPath(context.Background(), nil, mockEngine, filepath.Join(tempDir, "missing.xq"), ProcessFile)
	assert.Error(t, err)
	mockEngine.AssertNumberOfCalls(t, "Run", 1)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	tempDir := t.TempDir()

	paths := createTempFiles(t, tempDir, "test1.xq", "test2.xq")

	expectedIssues := []types.Issue{
		issueAt("rule1", paths[0], "Test issue 1"),
		issueAt("rule2", paths[1], "Test issue 2"),
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{expectedIssues[0]}, nil)
	mockEngine.On("Run", paths[1]).Return([]types.Issue{expectedIssues[1]}, nil)

	issues, err := ProcessFiles(context.Background(), logger, mockEngine, paths, ProcessFile)

	assert.NoError(t, err)
	assert.Len(t, issues, 2)
	assert.Contains(t, issues, expectedIssues[0])
	assert.Contains(t, issues, expectedIssues[1])
	mockEngine.AssertExpectations(t)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()

	expectedIssues := []types.Issue{
		issueAt("rule1", "", "Test issue 1"),
		issueAt("rule2", "", "Test issue 2"),
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", []byte("1")).Return([]types.Issue{expectedIssues[0]}, nil)
	mockEngine.On("RunSource", []byte("2")).Return([]types.Issue{expectedIssues[1]}, nil)

	issues, err := ProcessSources(context.Background(), logger, mockEngine, [][]byte{[]byte("1"), []byte("2")}, ProcessSource)

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		config, err := LoadConfig(filepath.Join(tempDir, "none.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(tempDir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		config, err := LoadConfig(path)
		require.NoError(t, err)
		cfg, err := config.Dialect.Build()
		require.NoError(t, err)
		assert.Equal(t, dialect.Default(), cfg)
	})

	t.Run("rules and dialect", func(t *testing.T) {
		path := filepath.Join(tempDir, "full.yaml")
		content := `name: project
dialect:
  product: marklogic
  product-version: "8.0"
rules:
  unknown-entity:
    severity: OFF
  syntax-error:
    severity: warning
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "project", config.Name)
		assert.Equal(t, types.SeverityOff, config.Rules["unknown-entity"].Severity)
		assert.Equal(t, types.SeverityWarning, config.Rules["syntax-error"].Severity)
		assert.Equal(t, types.SeverityError, config.Rules["lexical-error"].Severity)

		cfg, err := config.Dialect.Build()
		require.NoError(t, err)
		assert.Equal(t, dialect.ForProduct(dialect.MarkLogic80), cfg)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules: [\n"), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("bad severity", func(t *testing.T) {
		path := filepath.Join(tempDir, "severity.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  syntax-error:\n    severity: loud\n"), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestDialectConfigBuild(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		config  DialectConfig
		want    dialect.Config
		wantErr bool
	}{
		{
			name:   "defaults",
			config: DialectConfig{},
			want:   dialect.Default(),
		},
		{
			name:   "w3c 1.0",
			config: DialectConfig{Product: "w3c", XQuery: "1.0"},
			want:   dialect.Config{Product: dialect.XQuery, XQuery: dialect.XQuery10, Entities: entity.Predefined},
		},
		{
			name:   "latest product version",
			config: DialectConfig{Product: "basex"},
			want:   dialect.ForProduct(dialect.BaseX91),
		},
		{
			name:   "extensions and entities",
			config: DialectConfig{Extensions: []string{"full-text 1.0", "scripting"}, Entities: "html4"},
			want: dialect.Config{
				Product:    dialect.XQuery,
				XQuery:     dialect.XQuery31,
				Extensions: []dialect.Version{dialect.FullText10, dialect.Scripting10},
				Entities:   entity.HTML4,
			},
		},
		{name: "unknown product", config: DialectConfig{Product: "oracle"}, wantErr: true},
		{name: "extension as product", config: DialectConfig{Product: "full-text"}, wantErr: true},
		{name: "product version without product", config: DialectConfig{ProductVersion: "9.0"}, wantErr: true},
		{name: "unknown product version", config: DialectConfig{Product: "saxon", ProductVersion: "1.0"}, wantErr: true},
		{name: "unknown xquery version", config: DialectConfig{XQuery: "2.0"}, wantErr: true},
		{name: "product as extension", config: DialectConfig{Extensions: []string{"marklogic 9.0"}}, wantErr: true},
		{name: "malformed extension", config: DialectConfig{Extensions: []string{"full-text 1.0 extra"}}, wantErr: true},
		{name: "unknown entities", config: DialectConfig{Entities: "latin1"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.Build()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()
	a, err := DefaultConfig().CacheKey()
	require.NoError(t, err)
	b, err := DefaultConfig().CacheKey()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := DefaultConfig()
	other.Dialect.XQuery = "1.0"
	c, err := other.CacheKey()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	renamed := DefaultConfig()
	renamed.Name = "renamed"
	d, err := renamed.CacheKey()
	require.NoError(t, err)
	assert.Equal(t, a, d)
}

func TestNew(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("dialect:\n  xquery: \"1.0\"\n"), 0o644))

	engine, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, dialect.XQuery10, engine.Dialect().XQuery)

	issues, err := engine.RunSource(context.Background(), []byte(`"a" || "b"`))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "unsupported-construct", issues[0].Rule)

	require.NoError(t, os.WriteFile(path, []byte("dialect:\n  product: oracle\n"), 0o644))
	_, err = New(path)
	assert.ErrorIs(t, err, dialect.ErrUnknownVersion)
}

func TestOpenCache(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(configPath, []byte("name: a\n"), 0o644))
	query := createTempFiles(t, tempDir, "q.xq")[0]

	cache, err := OpenCache(filepath.Join(tempDir, "cache"), DefaultConfig(), configPath)
	require.NoError(t, err)
	require.NoError(t, cache.Set(query, nil))
	_, found := cache.Get(query)
	assert.True(t, found)

	require.NoError(t, os.WriteFile(configPath, []byte("name: b\n"), 0o644))
	_, found = cache.Get(query)
	assert.False(t, found)
}

func createTempFiles(t *testing.T, dir string, fileNames ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		filePath := filepath.Join(dir, fileName)
		require.NoError(t, os.WriteFile(filePath, []byte("()"), 0o644))
		paths = append(paths, filePath)
	}
	return paths
}
