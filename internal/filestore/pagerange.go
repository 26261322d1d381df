package filestore

import (
	"fmt"

	"pdfapi/internal/model"
)

// ValidatePageRange checks zero-based, inclusive page bounds:
// 0 <= start <= end < count.
func ValidatePageRange(start, end, count int) error {
	switch {
	case start < 0:
		return fmt.Errorf("%w: start page %d is negative", model.ErrInvalidRange, start)
	case start > end:
		return fmt.Errorf("%w: start page %d is after end page %d", model.ErrInvalidRange, start, end)
	case end >= count:
		return fmt.Errorf("%w: end page %d is beyond the last page (document has %d pages)", model.ErrInvalidRange, end, count)
	}
	return nil
}
