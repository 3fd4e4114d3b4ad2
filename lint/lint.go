package lint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/xqlint/internal"
	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/scanner"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/entity"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = ".xqlint.yaml"

// cacheSchema changes whenever cached issues from older builds must not be
// reused.
const cacheSchema = "xqlint-cache-1"

type LintEngine interface {
	Run(ctx context.Context, filePath string) ([]tt.Issue, error)
	RunSource(ctx context.Context, source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// Processor lints one file or source through engine.
type Processor[T any] func(ctx context.Context, engine LintEngine, input T) ([]tt.Issue, error)

// New builds an engine from the configuration file at configurationPath.
// A missing file selects the default configuration.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewEngine(config)
}

// NewEngine builds an engine for an already loaded configuration.
func NewEngine(config Config) (*internal.Engine, error) {
	cfg, err := config.Dialect.Build()
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(cfg, config.Rules)
}

// OpenCache opens the issue cache for config in cacheDir. Entries are
// dropped when the configuration or the configuration file changes.
func OpenCache(cacheDir string, config Config, configurationPath string) (*internal.Cache, error) {
	key, err := config.CacheKey()
	if err != nil {
		return nil, err
	}
	var deps []string
	if configurationPath != "" {
		if _, err := os.Stat(configurationPath); err == nil {
			deps = append(deps, configurationPath)
		}
	}
	return internal.NewCache(cacheDir, key, deps...)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor Processor[[]byte],
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		issues, err := processor(ctx, engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor Processor[string],
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		allIssues = append(allIssues, issues...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
	}

	return allIssues, nil
}

// ProcessPath lints a query file, or every query file below a directory
// using one worker per CPU. Issues of the files that could be linted are
// returned together with the errors of those that could not. On
// cancellation the issues collected so far are returned with ctx.Err().
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor Processor[string],
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	issues := []tt.Issue{}
	if !info.IsDir() {
		if !scanner.IsQueryFile(path) {
			if logger != nil {
				logger.Debug("Skipping non-query file", zap.String("file", path))
			}
			return issues, nil
		}
		fileIssues, err := processor(ctx, engine, path)
		if err != nil {
			return issues, err
		}
		return append(issues, fileIssues...), nil
	}

	found, err := scanner.New(path, scanner.QueryExtensions...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}
	files := make([]string, len(found))
	for i, f := range found {
		files[i] = f.Path
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(len(files) > 1),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	type result struct {
		issues []tt.Issue
		err    error
	}

	jobs := make(chan string)
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	for range min(runtime.NumCPU(), max(len(files), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for fp := range jobs {
				fileIssues, err := processor(ctx, engine, fp)
				if err != nil && logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				results <- result{fileIssues, err}
				_ = bar.Add(1)
			}
		}()
	}

	var cancelled error
dispatch:
	for _, fp := range files {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- fp:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	var errs []error
	for r := range results {
		if r.err != nil {
			if !errors.Is(r.err, context.Canceled) && !errors.Is(r.err, context.DeadlineExceeded) {
				errs = append(errs, r.err)
			}
			continue
		}
		issues = append(issues, r.issues...)
	}
	if cancelled != nil {
		return issues, cancelled
	}
	if err := ctx.Err(); err != nil {
		return issues, err
	}
	return issues, errors.Join(errs...)
}

func ProcessFile(ctx context.Context, engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(ctx, filePath)
}

func ProcessSource(ctx context.Context, engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(ctx, source)
}

// Config represents the overall configuration: a name, the dialect queries
// are checked against and the rule settings.
type Config struct {
	Name    string                   `yaml:"name"`
	Dialect DialectConfig            `yaml:"dialect"`
	Rules   map[string]tt.ConfigRule `yaml:"rules"`
}

// DialectConfig is the `dialect` section of the configuration file.
//
//	dialect:
//	  product: marklogic
//	  product-version: "9.0"
//	  xquery: 1.0-ml
//	  extensions: [full-text 3.0]
//	  entities: html5
//
// Every field is optional. Without a product the W3C XQuery 3.1 dialect
// is used; with one, the product defaults apply before xquery, extensions
// and entities override them.
type DialectConfig struct {
	Product        string   `yaml:"product,omitempty"`
	ProductVersion string   `yaml:"product-version,omitempty"`
	XQuery         string   `yaml:"xquery,omitempty"`
	Extensions     []string `yaml:"extensions,omitempty"`
	Entities       string   `yaml:"entities,omitempty"`
}

// DefaultConfig is the configuration used without a configuration file.
func DefaultConfig() Config {
	return Config{
		Name:    "xqlint",
		Dialect: DialectConfig{Product: "w3c", XQuery: dialect.XQuery31.Label, Entities: entity.Predefined.String()},
		Rules:   internal.DefaultRules(),
	}
}

// Build resolves the section into a validated dialect configuration.
func (d DialectConfig) Build() (dialect.Config, error) {
	product, err := dialect.ParseKind(d.Product)
	if err != nil {
		return dialect.Config{}, err
	}

	cfg := dialect.Default()
	switch {
	case product == dialect.XQuery:
		if d.ProductVersion != "" {
			return dialect.Config{}, fmt.Errorf("product-version %q given without a product", d.ProductVersion)
		}
	case product.IsProduct():
		v := dialect.Latest(product)
		if d.ProductVersion != "" {
			if v, err = dialect.ParseVersion(product, d.ProductVersion); err != nil {
				return dialect.Config{}, err
			}
		}
		cfg = dialect.ForProduct(v)
	default:
		return dialect.Config{}, fmt.Errorf("%w: %s is not a product", dialect.ErrUnknownVersion, product)
	}

	if d.XQuery != "" {
		v, err := dialect.ParseVersion(dialect.XQuery, d.XQuery)
		if err != nil {
			return dialect.Config{}, err
		}
		cfg.XQuery = v
	}

	for _, ext := range d.Extensions {
		v, err := parseExtension(ext)
		if err != nil {
			return dialect.Config{}, err
		}
		cfg.Extensions = append(cfg.Extensions, v)
	}

	if d.Entities != "" {
		if cfg.Entities, err = entity.ParseSet(d.Entities); err != nil {
			return dialect.Config{}, err
		}
	}

	return cfg, cfg.Validate()
}

// parseExtension reads "full-text 3.0"; without a version the latest one
// is used.
func parseExtension(s string) (dialect.Version, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return dialect.Version{}, fmt.Errorf("invalid extension %q", s)
	}
	kind, err := dialect.ParseKind(fields[0])
	if err != nil {
		return dialect.Version{}, err
	}
	if len(fields) == 1 {
		return dialect.Latest(kind), nil
	}
	return dialect.ParseVersion(kind, fields[1])
}

// CacheKey identifies the settings issues were produced under.
func (c Config) CacheKey() (string, error) {
	d, err := yaml.Marshal(struct {
		Schema  string                   `yaml:"schema"`
		Dialect DialectConfig            `yaml:"dialect"`
		Rules   map[string]tt.ConfigRule `yaml:"rules"`
	}{cacheSchema, c.Dialect, c.Rules})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(d)
	return hex.EncodeToString(sum[:]), nil
}

// LoadConfig reads the configuration file. An empty path or a missing
// file yields DefaultConfig.
func LoadConfig(configurationPath string) (Config, error) {
	config := DefaultConfig()
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	// start from an empty dialect section so omitted fields keep the
	// dialect defaults rather than the W3C ones
	config.Dialect = DialectConfig{}
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", filepath.Base(configurationPath), err)
	}

	return config, nil
}
