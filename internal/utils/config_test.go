package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benmeehan/location-base/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /var/lib/locbase/locations.db
location:
  provider: fixed
  capture_timeout: 5s
  fixed:
    latitude: -23.55
    longitude: -46.63
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("LOCBASE_PREFERENCES_FILE", "/tmp/prefs.json")
	t.Setenv("LOCBASE_LOCATION_GPS_DEVICE_PORT", "/dev/ttyACM0")

	config, err := LoadConfig(path, file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/locbase/locations.db", config.Database.Path)
	assert.Equal(t, "/tmp/prefs.json", config.Preferences.File)
	assert.Equal(t, ProviderFixed, config.Location.Provider)
	assert.Equal(t, 5*time.Second, config.Location.CaptureTimeout)
	assert.Equal(t, -23.55, config.Location.Fixed.Latitude)
	assert.True(t, config.Location.Fixed.Allowed) // default kept
	assert.Equal(t, "/dev/ttyACM0", config.Location.GPS.DevicePort)
	assert.Equal(t, 9600, config.Location.GPS.BaudRate)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("location:\n  provider: carrier-pigeon\n"), 0o600))

	_, err := LoadConfig(path, file.NewFileService())
	assert.ErrorContains(t, err, "unknown location provider")

	require.NoError(t, os.WriteFile(path, []byte("location: [1, 2"), 0o600))
	_, err = LoadConfig(path, file.NewFileService())
	assert.Error(t, err)
}
