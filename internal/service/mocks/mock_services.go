package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfapi/internal/model"
	"pdfapi/internal/service"
)

type MockPDFService struct {
	mock.Mock
}

func (m *MockPDFService) record(args mock.Arguments) (*model.OutputRecord, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OutputRecord), args.Error(1)
}

func (m *MockPDFService) Merge(ctx context.Context, req service.MergeRequest) (*model.OutputRecord, error) {
	return m.record(m.Called(ctx, req))
}

func (m *MockPDFService) Split(ctx context.Context, req service.SplitRequest) (*model.OutputRecord, error) {
	return m.record(m.Called(ctx, req))
}

func (m *MockPDFService) Rotate(ctx context.Context, req service.RotateRequest) (*model.OutputRecord, error) {
	return m.record(m.Called(ctx, req))
}

func (m *MockPDFService) Watermark(ctx context.Context, req service.WatermarkRequest) (*model.OutputRecord, error) {
	return m.record(m.Called(ctx, req))
}

func (m *MockPDFService) Protect(ctx context.Context, req service.ProtectRequest) (*model.OutputRecord, error) {
	return m.record(m.Called(ctx, req))
}

func (m *MockPDFService) Get(ctx context.Context, name string) (*model.OutputRecord, error) {
	return m.record(m.Called(ctx, name))
}

func (m *MockPDFService) List(ctx context.Context, limit, offset int) (*service.OutputListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OutputListResult), args.Error(1)
}

func (m *MockPDFService) Link(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

type MockTextService struct {
	mock.Mock
}

func (m *MockTextService) Summarize(ctx context.Context, file service.File) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockTextService) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
