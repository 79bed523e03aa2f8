package location

import "fmt"

// Location represents the geographical coordinates of a device
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // Estimated horizontal accuracy; meters for API fixes, HDOP for sensor fixes
}

// String formats the coordinates for log output.
func (l Location) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.Latitude, l.Longitude)
}

// Permission is the outcome of a foreground location access request.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)
