package location

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinates is returned for coordinates outside the WGS84 ranges.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// ValidateCoordinates checks latitude is within [-90, 90] and longitude within [-180, 180].
func ValidateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinates, latitude)
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinates, longitude)
	}
	return nil
}
