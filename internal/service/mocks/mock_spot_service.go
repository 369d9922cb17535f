package mocks

import (
	"context"
	"io"

	"spotapi/internal/model"
	"spotapi/internal/service"
	"spotapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockSpotService struct {
	mock.Mock
}

func (m *MockSpotService) List(ctx context.Context) (*service.SpotListResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SpotListResult), args.Error(1)
}

func (m *MockSpotService) Get(ctx context.Context, name string) (*model.Spot, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotService) Create(ctx context.Context, in service.SpotInput) (*model.Spot, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotService) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockSpotService) OpenImage(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
