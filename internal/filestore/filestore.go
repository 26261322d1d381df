// Package filestore mediates between transient uploaded bytes and named,
// retrievable output files inside a single output directory.
//
// Outputs are written to a temporary file in the output directory and renamed
// into place once complete, so a concurrent retrieval never sees partial bytes.
// Retrieval is containment-checked: a name can only ever resolve to a regular
// file directly inside the output directory.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pdfapi/internal/config"
)

// Strategy selects how final output names are derived from allocated names.
type Strategy string

const (
	// StrategyUnique appends a random token to every output name.
	StrategyUnique Strategy = "unique"
	// StrategyFixed writes to the allocated name as-is; concurrent writers
	// of the same name race and the last rename wins.
	StrategyFixed Strategy = "fixed"
)

// ParseStrategy converts a configuration value into a Strategy.
// An empty value selects StrategyUnique.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyUnique:
		return StrategyUnique, nil
	case StrategyFixed:
		return StrategyFixed, nil
	default:
		return "", fmt.Errorf("unknown output strategy %q", s)
	}
}

const (
	// tempPrefix marks in-flight writes; such names are never resolvable.
	tempPrefix   = ".tmp-"
	stagePattern = "upload-*"
)

// Manager owns the staging and output directories.
// It is safe for concurrent use by multiple goroutines.
type Manager struct {
	outputDir  string
	stagingDir string
	strategy   Strategy
	maxUpload  int64
	newToken   func() string
}

// New creates a Manager from explicit configuration. The output directory is
// created when missing and canonicalized so containment checks compare
// symlink-free absolute paths.
func New(cfg config.FilesConfig) (*Manager, error) {
	if cfg.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	outputDir, err := prepareDir(cfg.OutputDir, 0o750)
	if err != nil {
		return nil, fmt.Errorf("prepare output dir: %w", err)
	}

	staging := cfg.StagingDir
	if staging == "" {
		staging = os.TempDir()
	}
	stagingDir, err := prepareDir(staging, 0o700)
	if err != nil {
		return nil, fmt.Errorf("prepare staging dir: %w", err)
	}

	return &Manager{
		outputDir:  outputDir,
		stagingDir: stagingDir,
		strategy:   strategy,
		maxUpload:  cfg.MaxUploadBytes,
		newToken:   randomToken,
	}, nil
}

// OutputDir returns the canonical output directory.
func (m *Manager) OutputDir() string { return m.outputDir }

// Strategy returns the configured naming strategy.
func (m *Manager) Strategy() Strategy { return m.strategy }

func prepareDir(dir string, perm os.FileMode) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, perm); err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
