package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"
)

// GoogleOptions controls which radio scans are attached to a geolocation request.
type GoogleOptions struct {
	ScanWiFi   bool // Attach nearby access points from nmcli
	ScanCell   bool // Attach the serving cell tower from mmcli
	ModemIndex int  // ModemManager index queried for cell data
}

// GoogleGeolocationProvider uses the Google Maps API to get location data.
type GoogleGeolocationProvider struct {
	client  *maps.Client // Maps API client for making geolocation requests, nil without an API key
	options GoogleOptions
	logger  zerolog.Logger
}

// NewGoogleGeolocationProvider creates a new GoogleGeolocationProvider instance.
// An empty apiKey yields a provider that denies every permission request.
func NewGoogleGeolocationProvider(apiKey string, options GoogleOptions, logger zerolog.Logger,
	clientOptions ...maps.ClientOption) (*GoogleGeolocationProvider, error) {
	g := &GoogleGeolocationProvider{
		options: options,
		logger:  logger,
	}
	if apiKey == "" {
		return g, nil
	}

	c, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, clientOptions...)...)
	if err != nil {
		return nil, err
	}
	g.client = c
	return g, nil
}

// RequestPermission grants access only when the provider has API credentials.
func (g *GoogleGeolocationProvider) RequestPermission(ctx context.Context) (Permission, error) {
	if g.client == nil {
		return PermissionDenied, nil
	}
	return PermissionGranted, nil
}

// GetLocation retrieves the device's location using Google Maps Geolocation API.
// Scan failures are logged and the request falls back to IP based location.
func (g *GoogleGeolocationProvider) GetLocation(ctx context.Context) (Location, error) {
	if g.client == nil {
		return Location{}, errors.New("google geolocation provider has no API key")
	}

	// Prepare the geolocation request with available data
	req := &maps.GeolocationRequest{
		ConsiderIP: true,
	}

	if g.options.ScanWiFi {
		wifiAPs, err := getWiFiAccessPoints(ctx)
		if err != nil {
			g.logger.Warn().Err(err).Msg("WiFi scan failed, continuing without access points")
		} else {
			req.WiFiAccessPoints = wifiAPs
		}
	}

	if g.options.ScanCell {
		cellTowers, err := getCellTowers(ctx, g.options.ModemIndex)
		if err != nil {
			g.logger.Warn().Err(err).Int("modem", g.options.ModemIndex).Msg("Cell scan failed, continuing without cell towers")
		} else {
			req.CellTowers = cellTowers
		}
	}

	resp, err := g.client.Geolocate(ctx, req) // Send the geolocation request
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Location{}, ErrTimeout
		}
		return Location{}, fmt.Errorf("geolocation request failed: %w", err)
	}

	return Location{
		Latitude:  resp.Location.Lat,
		Longitude: resp.Location.Lng,
		Accuracy:  resp.Accuracy,
	}, nil
}

func (g *GoogleGeolocationProvider) Close() error {
	return nil
}
