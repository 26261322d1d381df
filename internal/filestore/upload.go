package filestore

import (
	"context"
	"fmt"
	"io"
	"os"

	"pdfapi/internal/model"
)

// Upload is a request-scoped, staged copy of an uploaded document.
// It must be closed by the request that created it; Close removes the staged bytes.
type Upload struct {
	file   *os.File
	name   string
	size   int64
	closed bool
}

// Read implements io.Reader.
func (u *Upload) Read(p []byte) (int, error) { return u.file.Read(p) }

// Seek implements io.Seeker.
func (u *Upload) Seek(offset int64, whence int) (int64, error) { return u.file.Seek(offset, whence) }

// ReadAt implements io.ReaderAt.
func (u *Upload) ReadAt(p []byte, off int64) (int, error) { return u.file.ReadAt(p, off) }

// Name returns the client-supplied filename, which may be empty.
func (u *Upload) Name() string { return u.name }

// Size returns the number of staged bytes.
func (u *Upload) Size() int64 { return u.size }

// Rewind seeks back to the first byte so the upload can be read again.
func (u *Upload) Rewind() error {
	_, err := u.file.Seek(0, io.SeekStart)
	return err
}

// Close releases and deletes the staged bytes. It is safe to call more than once.
func (u *Upload) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	cerr := u.file.Close()
	if err := os.Remove(u.file.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return cerr
}

// Stage spools r into a private staging file and returns a handle for
// processing. Content is not validated here; the processing step that reads
// the upload decides whether it is usable. If ctx is cancelled or the copy
// fails, the partially staged bytes are discarded.
func (m *Manager) Stage(ctx context.Context, r io.Reader, filename string) (*Upload, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: upload stream is nil", model.ErrInvalidInput)
	}

	f, err := os.CreateTemp(m.stagingDir, stagePattern)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	src := r
	if m.maxUpload > 0 {
		src = io.LimitReader(r, m.maxUpload+1)
	}
	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: src})
	switch {
	case err != nil:
		err = fmt.Errorf("stage upload: %w", err)
	case m.maxUpload > 0 && n > m.maxUpload:
		err = fmt.Errorf("%w: upload exceeds %d bytes", model.ErrInvalidInput, m.maxUpload)
	default:
		_, err = f.Seek(0, io.SeekStart)
	}
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}

	return &Upload{file: f, name: filename, size: n}, nil
}

// ctxReader stops reading once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
