package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) PageCount(ctx context.Context, rs io.ReadSeeker) (int, error) {
	args := m.Called(ctx, rs)
	return args.Int(0), args.Error(1)
}

func (m *MockProcessor) Merge(ctx context.Context, inputs []io.ReadSeeker, w io.Writer) error {
	args := m.Called(ctx, inputs, w)
	return writeOrFail(args, w)
}

func (m *MockProcessor) Split(ctx context.Context, rs io.ReadSeeker, w io.Writer, start, end int) error {
	args := m.Called(ctx, rs, w, start, end)
	return writeOrFail(args, w)
}

func (m *MockProcessor) Rotate(ctx context.Context, rs io.ReadSeeker, w io.Writer, degrees int, pages []int) error {
	args := m.Called(ctx, rs, w, degrees, pages)
	return writeOrFail(args, w)
}

func (m *MockProcessor) Watermark(ctx context.Context, rs io.ReadSeeker, w io.Writer, text string) error {
	args := m.Called(ctx, rs, w, text)
	return writeOrFail(args, w)
}

func (m *MockProcessor) Protect(ctx context.Context, rs io.ReadSeeker, w io.Writer, userPW, ownerPW string) error {
	args := m.Called(ctx, rs, w, userPW, ownerPW)
	return writeOrFail(args, w)
}

func (m *MockProcessor) ExtractText(ctx context.Context, ra io.ReaderAt, size int64) (string, error) {
	args := m.Called(ctx, ra, size)
	return args.String(0), args.Error(1)
}

// writeOrFail writes the []byte given as the first return value to w, or
// returns the error given as the second.
func writeOrFail(args mock.Arguments, w io.Writer) error {
	if err := args.Error(1); err != nil {
		return err
	}
	if b, ok := args.Get(0).([]byte); ok {
		_, err := w.Write(b)
		return err
	}
	return nil
}
