package repository

import (
	"context"
	"fmt"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/benmeehan/location-base/pkg/location"
	"gorm.io/gorm"
)

// LocationRepository is the append-only store of captured positions.
type LocationRepository interface {
	// InsertOne validates and appends a position, returning the created record.
	InsertOne(ctx context.Context, latitude, longitude float64) (*models.LocationRecord, error)
	// GetAll returns every stored record, oldest first.
	GetAll(ctx context.Context) ([]models.LocationRecord, error)
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a LocationRepository on an open gorm connection.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) InsertOne(ctx context.Context, latitude, longitude float64) (*models.LocationRecord, error) {
	if r.db == nil {
		return nil, ErrDatabaseNotInitialized
	}
	if err := location.ValidateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}

	record := models.LocationRecord{
		Latitude:  latitude,
		Longitude: longitude,
	}
	// Single INSERT; a failure leaves no row behind
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}
	return &record, nil
}

func (r *locationRepository) GetAll(ctx context.Context) ([]models.LocationRecord, error) {
	if r.db == nil {
		return nil, ErrDatabaseNotInitialized
	}

	records := make([]models.LocationRecord, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}
	return records, nil
}
