package pdf

import (
	"context"
	"fmt"
	"io"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	domain "pdfapi/internal/model"
)

// ExtractText implements Processor. Pages whose text cannot be decoded are
// skipped; a document with no text at all yields model.ErrEmptyInput.
func (p *PDFCPU) ExtractText(ctx context.Context, ra io.ReaderAt, size int64) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: document is empty", domain.ErrInvalidInput)
	}

	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: cannot read PDF: %v", domain.ErrInvalidInput, r)
		}
	}()

	reader, err := lpdf.NewReader(ra, size)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read PDF: %v", domain.ErrInvalidInput, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text = strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text could be extracted from the document", domain.ErrEmptyInput)
	}
	return text, nil
}
