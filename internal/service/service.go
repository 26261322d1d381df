package service

import (
	"context"
	"errors"
	"io"

	"pdfapi/internal/filestore"
)

var (
	// ErrListingUnavailable is returned by List when no database is configured.
	ErrListingUnavailable = errors.New("output listing requires a database")
	// ErrLinksUnavailable is returned by Link when no object storage is configured.
	ErrLinksUnavailable = errors.New("download links require object storage")
)

// File is one uploaded document as received by a handler.
type File struct {
	Filename string
	Content  io.Reader
}

// stageAll stages every file. On failure the already staged uploads are released.
func stageAll(ctx context.Context, fm *filestore.Manager, files []File) ([]*filestore.Upload, error) {
	uploads := make([]*filestore.Upload, 0, len(files))
	for _, f := range files {
		up, err := fm.Stage(ctx, f.Content, f.Filename)
		if err != nil {
			closeAll(uploads)
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}

func closeAll(uploads []*filestore.Upload) {
	for _, up := range uploads {
		_ = up.Close()
	}
}
