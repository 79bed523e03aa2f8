package mocks

import (
	"context"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockLocationRepository is a mock implementation of the repository.LocationRepository interface
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) InsertOne(ctx context.Context, latitude, longitude float64) (*models.LocationRecord, error) {
	args := m.Called(ctx, latitude, longitude)
	record, _ := args.Get(0).(*models.LocationRecord)
	return record, args.Error(1)
}

func (m *MockLocationRepository) GetAll(ctx context.Context) ([]models.LocationRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.LocationRecord)
	return records, args.Error(1)
}
