package utils

import (
	"fmt"
	"time"

	"github.com/benmeehan/location-base/pkg/file"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment variables overriding the configuration file.
const EnvPrefix = "LOCBASE"

// Location provider kinds.
const (
	ProviderGPS    = "gps"
	ProviderGoogle = "google"
	ProviderFixed  = "fixed"
)

// Config represents the structure of the configuration file.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`  // zerolog level name
		Format string `yaml:"format"` // "console" or "json"
	} `yaml:"log"`

	Database struct {
		Path string `yaml:"path"` // SQLite file holding captured locations
	} `yaml:"database"`

	Preferences struct {
		File string `yaml:"file"` // JSON file holding user preferences
	} `yaml:"preferences"`

	Location struct {
		Provider       string        `yaml:"provider"`                           // gps, google or fixed
		CaptureTimeout time.Duration `yaml:"capture_timeout" split_words:"true"` // Upper bound for acquiring a fix

		GPS struct {
			DevicePort string `yaml:"device_port" split_words:"true"` // UNIX Port where the GPS sensor is mounted
			BaudRate   int    `yaml:"baud_rate" split_words:"true"`   // The Baud rate for GPS sensor
		} `yaml:"gps"`

		Google struct {
			APIKey     string `yaml:"api_key"`                        // Google maps API Key
			ScanWifi   bool   `yaml:"scan_wifi"`                      // Attach nmcli access points
			ScanCell   bool   `yaml:"scan_cell" split_words:"true"`   // Attach mmcli cell tower
			ModemIndex int    `yaml:"modem_index" split_words:"true"` // ModemManager modem index
		} `yaml:"google"`

		Fixed struct {
			Latitude  float64 `yaml:"latitude"`
			Longitude float64 `yaml:"longitude"`
			Allowed   bool    `yaml:"allowed"` // Permission answer of the fixed provider
		} `yaml:"fixed"`
	} `yaml:"location"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	var config Config
	config.Log.Level = "info"
	config.Log.Format = "console"
	config.Database.Path = "data/locations.db"
	config.Preferences.File = "data/preferences.json"
	config.Location.Provider = ProviderGPS
	config.Location.CaptureTimeout = 30 * time.Second
	config.Location.GPS.DevicePort = "/dev/ttyUSB0"
	config.Location.GPS.BaudRate = 9600
	config.Location.Google.ScanWifi = true
	config.Location.Fixed.Allowed = true
	return &config
}

// LoadConfig loads the YAML configuration from the specified file on top of the defaults,
// then applies LOCBASE_* environment overrides (e.g. LOCBASE_DATABASE_PATH,
// LOCBASE_LOCATION_GPS_DEVICE_PORT). A missing file is not an error.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	config := DefaultConfig()

	exists, err := fileClient.IsFileExists(filename)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := fileClient.ReadYamlFile(filename, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings that would otherwise fail late, at capture time.
func (c *Config) Validate() error {
	switch c.Location.Provider {
	case ProviderGPS:
		if c.Location.GPS.DevicePort == "" || c.Location.GPS.BaudRate <= 0 {
			return fmt.Errorf("gps provider needs device_port and a positive baud_rate")
		}
	case ProviderGoogle, ProviderFixed:
	default:
		return fmt.Errorf("unknown location provider %q", c.Location.Provider)
	}
	if c.Location.CaptureTimeout <= 0 {
		return fmt.Errorf("capture_timeout must be positive")
	}
	if c.Database.Path == "" || c.Preferences.File == "" {
		return fmt.Errorf("database.path and preferences.file are required")
	}
	return nil
}
