package services

import (
	"fmt"

	"github.com/benmeehan/location-base/internal/utils"
	"github.com/benmeehan/location-base/pkg/location"
	"github.com/rs/zerolog"
)

// NewLocationProvider builds the location provider selected in the configuration.
func NewLocationProvider(config *utils.Config, logger zerolog.Logger) (location.Provider, error) {
	switch config.Location.Provider {
	case utils.ProviderGPS:
		return location.NewDeviceSensorProvider(config.Location.GPS.DevicePort, config.Location.GPS.BaudRate), nil
	case utils.ProviderGoogle:
		provider, err := location.NewGoogleGeolocationProvider(config.Location.Google.APIKey, location.GoogleOptions{
			ScanWiFi:   config.Location.Google.ScanWifi,
			ScanCell:   config.Location.Google.ScanCell,
			ModemIndex: config.Location.Google.ModemIndex,
		}, logger.With().Str("provider", utils.ProviderGoogle).Logger())
		if err != nil {
			logger.Error().Err(err).Msg("failed to create Google Geolocation provider")
			return nil, err
		}
		return provider, nil
	case utils.ProviderFixed:
		return location.NewFixedProvider(
			config.Location.Fixed.Latitude,
			config.Location.Fixed.Longitude,
			config.Location.Fixed.Allowed,
		), nil
	default:
		return nil, fmt.Errorf("unknown location provider %q", config.Location.Provider)
	}
}
