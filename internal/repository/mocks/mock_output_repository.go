package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfapi/internal/model"
	"pdfapi/internal/repository"
)

type MockOutputRepository struct {
	mock.Mock
}

func (m *MockOutputRepository) Create(ctx context.Context, rec *model.OutputRecord) (*model.OutputRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OutputRecord), args.Error(1)
}

func (m *MockOutputRepository) FindByName(ctx context.Context, name string) (*model.OutputRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OutputRecord), args.Error(1)
}

func (m *MockOutputRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.OutputRecord], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.OutputRecord]), args.Error(1)
}
