package mocks

import (
	"context"

	"spotapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSpotRepository struct {
	mock.Mock
}

func (m *MockSpotRepository) List(ctx context.Context) ([]model.Spot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []model.Spot{}, args.Error(1)
	}
	return args.Get(0).([]model.Spot), args.Error(1)
}

func (m *MockSpotRepository) FindByName(ctx context.Context, name string) (*model.Spot, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotRepository) Upsert(ctx context.Context, spot model.Spot) (*model.Spot, error) {
	args := m.Called(ctx, spot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockSpotRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
