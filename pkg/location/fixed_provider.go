package location

import "context"

// FixedProvider always reports the same configured position.
// It stands in for a device without positioning hardware.
type FixedProvider struct {
	location Location
	allowed  bool
}

// NewFixedProvider creates a FixedProvider. When allowed is false every permission request is denied.
func NewFixedProvider(latitude, longitude float64, allowed bool) *FixedProvider {
	return &FixedProvider{
		location: Location{Latitude: latitude, Longitude: longitude},
		allowed:  allowed,
	}
}

// RequestPermission returns the configured permission.
func (f *FixedProvider) RequestPermission(ctx context.Context) (Permission, error) {
	if !f.allowed {
		return PermissionDenied, nil
	}
	return PermissionGranted, nil
}

// GetLocation returns the configured position unless ctx is already done.
func (f *FixedProvider) GetLocation(ctx context.Context) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	return f.location, nil
}

func (f *FixedProvider) Close() error {
	return nil
}
