package mocks

import (
	"context"

	"github.com/benmeehan/location-base/pkg/location"
	"github.com/stretchr/testify/mock"
)

// MockLocationProvider is a mock implementation of the location.Provider interface
type MockLocationProvider struct {
	mock.Mock
}

func (m *MockLocationProvider) RequestPermission(ctx context.Context) (location.Permission, error) {
	args := m.Called(ctx)
	return args.Get(0).(location.Permission), args.Error(1)
}

func (m *MockLocationProvider) GetLocation(ctx context.Context) (location.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).(location.Location), args.Error(1)
}

func (m *MockLocationProvider) Close() error {
	args := m.Called()
	return args.Error(0)
}
