package filestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfapi/internal/model"
)

// WriteOutput persists the bytes read from r under name. See WriteOutputFunc.
func (m *Manager) WriteOutput(ctx context.Context, name string, r io.Reader) (*model.OutputRecord, error) {
	return m.WriteOutputFunc(ctx, name, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
}

// WriteOutputBytes persists b under name. See WriteOutputFunc.
func (m *Manager) WriteOutputBytes(ctx context.Context, name string, b []byte) (*model.OutputRecord, error) {
	return m.WriteOutput(ctx, name, bytes.NewReader(b))
}

// WriteOutputFunc lets write produce the output into a temporary file in the
// output directory, then renames it to its final name. The final name equals
// name under StrategyFixed and carries a random token under StrategyUnique.
// If write fails or ctx is done before the rename, no output file exists.
func (m *Manager) WriteOutputFunc(ctx context.Context, name string, write func(io.Writer) error) (*model.OutputRecord, error) {
	if !validName(name) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: output name %q is not allowed", model.ErrInvalidInput, name)
	}
	final := m.finalName(name)

	tmp, err := os.CreateTemp(m.outputDir, tempPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("create temp output: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close output: %w", err)
	}

	path := filepath.Join(m.outputDir, final)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("publish output: %w", err)
	}
	committed = true

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}
	return &model.OutputRecord{
		ID:            uuid.NewString(),
		Name:          final,
		RequestedName: name,
		StoragePath:   path,
		MediaType:     mediaType(final),
		Size:          info.Size(),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Resolve maps a client-supplied name to an existing output file. Names that
// are missing, hidden, not a single path segment or that escape the output
// directory all fail with the same model.ErrNotFound.
func (m *Manager) Resolve(name string) (*model.OutputRecord, error) {
	path, ok := m.contain(name)
	if !ok {
		return nil, model.ErrNotFound
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, model.ErrNotFound
	}
	return &model.OutputRecord{
		Name:          name,
		RequestedName: name,
		StoragePath:   path,
		MediaType:     mediaType(name),
		Size:          info.Size(),
		CreatedAt:     info.ModTime().UTC(),
	}, nil
}

// Remove deletes a previously written output.
func (m *Manager) Remove(name string) error {
	path, ok := m.contain(name)
	if !ok {
		return model.ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("remove output: %w", err)
	}
	return nil
}

// contain returns the canonical path of name if it lies strictly inside the
// output directory and its base name is exactly name.
func (m *Manager) contain(name string) (string, bool) {
	if !validName(name) || strings.Contains(name, "..") {
		return "", false
	}
	joined := filepath.Join(m.outputDir, name)
	if filepath.Base(joined) != name {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(resolved, m.outputDir+string(filepath.Separator)) {
		return "", false
	}
	return resolved, true
}

func (m *Manager) finalName(name string) string {
	if m.strategy == StrategyFixed {
		return name
	}
	return trimExtension(name) + "_" + m.newToken() + Extension
}

func mediaType(name string) string {
	if hasExtension(name) {
		return model.MediaTypePDF
	}
	return "application/octet-stream"
}
