package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"pdfapi/internal/filestore"
	"pdfapi/internal/model"
	"pdfapi/internal/pdf"
	"pdfapi/internal/repository"
	"pdfapi/internal/storage"
)

// Operation names, recorded on every output.
const (
	OpMerge     = "merge"
	OpSplit     = "split"
	OpRotate    = "rotate"
	OpWatermark = "watermark"
	OpProtect   = "protect"
)

var namePrefixes = map[string]string{
	OpMerge:     "merged_",
	OpSplit:     "split_",
	OpRotate:    "rotated_",
	OpWatermark: "watermarked_",
	OpProtect:   "protected_",
}

// MergeRequest concatenates Files in order.
type MergeRequest struct {
	Files      []File
	OutputName string
}

// SplitRequest keeps pages StartPage..EndPage (zero-based, inclusive).
type SplitRequest struct {
	File       File
	StartPage  int
	EndPage    int
	OutputName string
}

// RotateRequest rotates Pages (all pages when empty) by Degrees.
type RotateRequest struct {
	File       File
	Degrees    int
	Pages      []int
	OutputName string
}

// WatermarkRequest stamps Text onto every page.
type WatermarkRequest struct {
	File       File
	Text       string
	OutputName string
}

// ProtectRequest encrypts File. An empty UserPassword selects pdf.DefaultPassword.
type ProtectRequest struct {
	File          File
	UserPassword  string
	OwnerPassword string
	OutputName    string
}

// OutputListResult is the service-level DTO for paginated outputs.
type OutputListResult struct {
	Items []model.OutputRecord `json:"data"`
	Total int                  `json:"total"`
}

// PDFService defines the PDF use cases. Every transform returns the record of
// the output it wrote; the record's Name is what clients retrieve it by.
type PDFService interface {
	Merge(ctx context.Context, req MergeRequest) (*model.OutputRecord, error)
	Split(ctx context.Context, req SplitRequest) (*model.OutputRecord, error)
	Rotate(ctx context.Context, req RotateRequest) (*model.OutputRecord, error)
	Watermark(ctx context.Context, req WatermarkRequest) (*model.OutputRecord, error)
	Protect(ctx context.Context, req ProtectRequest) (*model.OutputRecord, error)

	// Get resolves an output name for retrieval.
	Get(ctx context.Context, name string) (*model.OutputRecord, error)
	// List returns persisted output records using limit/offset.
	List(ctx context.Context, limit, offset int) (*OutputListResult, error)
	// Link returns a time-limited download URL for a mirrored output.
	Link(ctx context.Context, name string) (string, error)
}

// PDFOption configures optional collaborators of the PDF service.
type PDFOption func(*pdfService)

// WithRepository persists every output record.
func WithRepository(repo repository.OutputRepository) PDFOption {
	return func(s *pdfService) { s.repo = repo }
}

// WithStorage mirrors every output to object storage; links expire after ttl.
func WithStorage(store storage.Storage, ttl time.Duration) PDFOption {
	return func(s *pdfService) {
		s.store = store
		s.linkTTL = ttl
	}
}

type pdfService struct {
	files   *filestore.Manager
	proc    pdf.Processor
	repo    repository.OutputRepository
	store   storage.Storage
	linkTTL time.Duration
	log     zerolog.Logger
}

// NewPDFService constructs a new PDFService.
func NewPDFService(files *filestore.Manager, proc pdf.Processor, log zerolog.Logger, opts ...PDFOption) PDFService {
	s := &pdfService{files: files, proc: proc, linkTTL: 15 * time.Minute, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *pdfService) Merge(ctx context.Context, req MergeRequest) (*model.OutputRecord, error) {
	if len(req.Files) < 2 {
		return nil, fmt.Errorf("%w: merge needs at least two documents, got %d", model.ErrInvalidInput, len(req.Files))
	}
	return s.transform(ctx, OpMerge, req.Files, req.OutputName, nil,
		func(ctx context.Context, ups []*filestore.Upload, w io.Writer) error {
			inputs := make([]io.ReadSeeker, len(ups))
			for i, up := range ups {
				inputs[i] = up
			}
			return s.proc.Merge(ctx, inputs, w)
		})
}

func (s *pdfService) Split(ctx context.Context, req SplitRequest) (*model.OutputRecord, error) {
	check := func(ctx context.Context, ups []*filestore.Upload) error {
		count, err := s.proc.PageCount(ctx, ups[0])
		if err != nil {
			return err
		}
		return filestore.ValidatePageRange(req.StartPage, req.EndPage, count)
	}
	return s.transform(ctx, OpSplit, []File{req.File}, req.OutputName, check,
		func(ctx context.Context, ups []*filestore.Upload, w io.Writer) error {
			return s.proc.Split(ctx, ups[0], w, req.StartPage, req.EndPage)
		})
}

func (s *pdfService) Rotate(ctx context.Context, req RotateRequest) (*model.OutputRecord, error) {
	if req.Degrees == 0 || req.Degrees%90 != 0 {
		return nil, fmt.Errorf("%w: rotation must be a non-zero multiple of 90, got %d", model.ErrInvalidInput, req.Degrees)
	}
	return s.transform(ctx, OpRotate, []File{req.File}, req.OutputName, nil,
		func(ctx context.Context, ups []*filestore.Upload, w io.Writer) error {
			return s.proc.Rotate(ctx, ups[0], w, req.Degrees, req.Pages)
		})
}

func (s *pdfService) Watermark(ctx context.Context, req WatermarkRequest) (*model.OutputRecord, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("%w: watermark text is required", model.ErrInvalidInput)
	}
	return s.transform(ctx, OpWatermark, []File{req.File}, req.OutputName, nil,
		func(ctx context.Context, ups []*filestore.Upload, w io.Writer) error {
			return s.proc.Watermark(ctx, ups[0], w, req.Text)
		})
}

func (s *pdfService) Protect(ctx context.Context, req ProtectRequest) (*model.OutputRecord, error) {
	return s.transform(ctx, OpProtect, []File{req.File}, req.OutputName, nil,
		func(ctx context.Context, ups []*filestore.Upload, w io.Writer) error {
			return s.proc.Protect(ctx, ups[0], w, req.UserPassword, req.OwnerPassword)
		})
}

type produceFunc func(ctx context.Context, ups []*filestore.Upload, w io.Writer) error

type checkFunc func(ctx context.Context, ups []*filestore.Upload) error

// transform runs the shared lifecycle of every PDF operation:
// allocate name, stage uploads, check, write atomically, mirror, persist.
func (s *pdfService) transform(ctx context.Context, op string, files []File, outputName string, check checkFunc, produce produceFunc) (*model.OutputRecord, error) {
	start := time.Now()
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no document uploaded", model.ErrInvalidInput)
	}
	source := files[0].Filename

	name, err := filestore.AllocateOutputName(namePrefixes[op], source, outputName)
	if err != nil {
		return nil, err
	}

	ups, err := stageAll(ctx, s.files, files)
	if err != nil {
		return nil, err
	}
	defer closeAll(ups)

	if check != nil {
		if err := check(ctx, ups); err != nil {
			return nil, err
		}
		for _, up := range ups {
			if err := up.Rewind(); err != nil {
				return nil, fmt.Errorf("rewind upload: %w", err)
			}
		}
	}

	rec, err := s.files.WriteOutputFunc(ctx, name, func(w io.Writer) error {
		return produce(ctx, ups, w)
	})
	if err != nil {
		return nil, err
	}
	rec.Operation = op
	rec.SourceFilename = source

	stored, err := s.publish(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("operation", op).
		Str("output", stored.Name).
		Str("requested_name", stored.RequestedName).
		Int64("size", stored.Size).
		Int("inputs", len(files)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("output written")

	return stored, nil
}

// publish mirrors rec to object storage and persists it. Any failure removes
// what was already published so no half-registered output remains, except
// under filestore.StrategyFixed where the write already replaced whatever the
// name held before.
func (s *pdfService) publish(ctx context.Context, rec *model.OutputRecord) (*model.OutputRecord, error) {
	mirrored := false
	if s.store != nil {
		if err := s.mirror(ctx, rec); err != nil {
			return nil, s.rollback(ctx, rec, false, fmt.Errorf("mirror output: %w", err))
		}
		mirrored = true
	}

	if s.repo == nil {
		return rec, nil
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, s.rollback(ctx, rec, mirrored, fmt.Errorf("db save failed: %w", err))
	}
	return stored, nil
}

func (s *pdfService) mirror(ctx context.Context, rec *model.OutputRecord) error {
	f, err := os.Open(rec.StoragePath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = s.store.Put(ctx, storage.ObjectKey(rec.Name), f, storage.PutObjectOptions{
		Size:        rec.Size,
		ContentType: rec.MediaType,
		Metadata: map[string]string{
			"requested-name":  rec.RequestedName,
			"operation":       rec.Operation,
			"source-filename": rec.SourceFilename,
		},
	})
	return err
}

func (s *pdfService) rollback(ctx context.Context, rec *model.OutputRecord, mirrored bool, cause error) error {
	if s.files.Strategy() == filestore.StrategyFixed {
		s.log.Warn().Err(cause).Str("output", rec.Name).Msg("publish failed, output kept in place")
		return cause
	}

	var errs []error
	if err := s.files.Remove(rec.Name); err != nil {
		errs = append(errs, fmt.Errorf("remove output: %w", err))
	}
	if mirrored {
		if err := s.store.Delete(ctx, storage.ObjectKey(rec.Name)); err != nil {
			errs = append(errs, fmt.Errorf("delete object: %w", err))
		}
	}
	if len(errs) > 0 {
		s.log.Error().Err(errors.Join(errs...)).Str("output", rec.Name).Msg("rollback incomplete")
		return fmt.Errorf("%w; rollback failed: %v", cause, errors.Join(errs...))
	}
	return cause
}

// Get resolves name inside the output directory and, when a database is
// configured, enriches it with the persisted record.
func (s *pdfService) Get(ctx context.Context, name string) (*model.OutputRecord, error) {
	rec, err := s.files.Resolve(name)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return rec, nil
	}

	stored, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, nil
		}
		return nil, err
	}
	stored.StoragePath = rec.StoragePath
	stored.Size = rec.Size
	return stored, nil
}

// List returns paginated outputs without exposing repository types.
func (s *pdfService) List(ctx context.Context, limit, offset int) (*OutputListResult, error) {
	if s.repo == nil {
		return nil, ErrListingUnavailable
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &OutputListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *pdfService) Link(ctx context.Context, name string) (string, error) {
	if s.store == nil {
		return "", ErrLinksUnavailable
	}
	rec, err := s.files.Resolve(name)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, storage.ObjectKey(rec.Name), s.linkTTL)
}
