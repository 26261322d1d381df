// Package pdf wraps the PDF transforms offered by the service.
//
// Page indices are zero-based throughout this package; they are converted to
// pdfcpu's one-based page selections internally. Failure to parse an input
// document is reported as model.ErrInvalidInput; any later library failure is
// model.ErrUpstream.
package pdf

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdfapi/internal/filestore"
	domain "pdfapi/internal/model"
)

// DefaultPassword is applied by Protect when no user password is given.
const DefaultPassword = "1234"

// Processor defines the PDF transforms used by the service layer.
type Processor interface {
	// PageCount parses rs and returns its number of pages.
	PageCount(ctx context.Context, rs io.ReadSeeker) (int, error)
	// Merge concatenates inputs in order into w. At least two inputs are required.
	Merge(ctx context.Context, inputs []io.ReadSeeker, w io.Writer) error
	// Split writes pages start..end (zero-based, inclusive) of rs into w.
	Split(ctx context.Context, rs io.ReadSeeker, w io.Writer, start, end int) error
	// Rotate rotates the given pages (all pages when empty) by degrees.
	Rotate(ctx context.Context, rs io.ReadSeeker, w io.Writer, degrees int, pages []int) error
	// Watermark stamps text onto every page.
	Watermark(ctx context.Context, rs io.ReadSeeker, w io.Writer, text string) error
	// Protect encrypts rs with AES-256 using the given passwords.
	Protect(ctx context.Context, rs io.ReadSeeker, w io.Writer, userPW, ownerPW string) error
	// ExtractText returns the plain text of every page.
	ExtractText(ctx context.Context, ra io.ReaderAt, size int64) (string, error)
}

// PDFCPU implements Processor with pdfcpu and ledongthuc/pdf.
// It is safe for concurrent use by multiple goroutines.
type PDFCPU struct{}

var _ Processor = (*PDFCPU)(nil)

// NewPDFCPU returns a Processor. pdfcpu's on-disk user configuration is
// disabled so the service never writes outside its own directories.
func NewPDFCPU() *PDFCPU {
	model.ConfigPath = "disable"
	return &PDFCPU{}
}

func newConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount implements Processor.
func (p *PDFCPU) PageCount(ctx context.Context, rs io.ReadSeeker) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	n, err := api.PageCount(rs, newConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: cannot read PDF: %v", domain.ErrInvalidInput, err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return n, nil
}

// Merge implements Processor.
func (p *PDFCPU) Merge(ctx context.Context, inputs []io.ReadSeeker, w io.Writer) error {
	if len(inputs) < 2 {
		return fmt.Errorf("%w: merge needs at least two documents, got %d", domain.ErrInvalidInput, len(inputs))
	}
	for i, rs := range inputs {
		if _, err := p.PageCount(ctx, rs); err != nil {
			return fmt.Errorf("document %d: %w", i+1, err)
		}
	}
	if err := api.MergeRaw(inputs, w, false, newConfig()); err != nil {
		return upstream("merge", err)
	}
	return nil
}

// Split implements Processor.
func (p *PDFCPU) Split(ctx context.Context, rs io.ReadSeeker, w io.Writer, start, end int) error {
	count, err := p.PageCount(ctx, rs)
	if err != nil {
		return err
	}
	if err := filestore.ValidatePageRange(start, end, count); err != nil {
		return err
	}
	selection := []string{fmt.Sprintf("%d-%d", start+1, end+1)}
	if err := api.Trim(rs, w, selection, newConfig()); err != nil {
		return upstream("split", err)
	}
	return nil
}

// Rotate implements Processor.
func (p *PDFCPU) Rotate(ctx context.Context, rs io.ReadSeeker, w io.Writer, degrees int, pages []int) error {
	if degrees == 0 || degrees%90 != 0 {
		return fmt.Errorf("%w: rotation must be a non-zero multiple of 90, got %d", domain.ErrInvalidInput, degrees)
	}
	count, err := p.PageCount(ctx, rs)
	if err != nil {
		return err
	}
	selection, err := pageSelection(pages, count)
	if err != nil {
		return err
	}
	if err := api.Rotate(rs, w, degrees, selection, newConfig()); err != nil {
		return upstream("rotate", err)
	}
	return nil
}

// Watermark implements Processor.
func (p *PDFCPU) Watermark(ctx context.Context, rs io.ReadSeeker, w io.Writer, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: watermark text is required", domain.ErrInvalidInput)
	}
	if _, err := p.PageCount(ctx, rs); err != nil {
		return err
	}
	wm, err := api.TextWatermark(text, "font:Helvetica, points:48, rot:45, op:0.3, scale:0.8 rel", true, false, types.POINTS)
	if err != nil {
		return upstream("watermark", err)
	}
	if err := api.AddWatermarks(rs, w, nil, wm, newConfig()); err != nil {
		return upstream("watermark", err)
	}
	return nil
}

// Protect implements Processor.
func (p *PDFCPU) Protect(ctx context.Context, rs io.ReadSeeker, w io.Writer, userPW, ownerPW string) error {
	if userPW == "" {
		userPW = DefaultPassword
	}
	if ownerPW == "" {
		ownerPW = userPW
	}
	if _, err := p.PageCount(ctx, rs); err != nil {
		return err
	}
	conf := model.NewAESConfiguration(userPW, ownerPW, 256)
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Encrypt(rs, w, conf); err != nil {
		return upstream("encrypt", err)
	}
	return nil
}

// pageSelection converts zero-based page indices into pdfcpu selections.
// A nil result selects every page.
func pageSelection(pages []int, count int) ([]string, error) {
	if len(pages) == 0 {
		return nil, nil
	}
	sel := make([]string, 0, len(pages))
	for _, pg := range pages {
		if pg < 0 || pg >= count {
			return nil, fmt.Errorf("%w: page %d is outside 0..%d", domain.ErrInvalidRange, pg, count-1)
		}
		sel = append(sel, strconv.Itoa(pg+1))
	}
	return sel, nil
}

func upstream(op string, err error) error {
	return fmt.Errorf("%w: pdf %s: %v", domain.ErrUpstream, op, err)
}
