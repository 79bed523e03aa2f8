package main

import (
	"context"
	"fmt"
	"io"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/benmeehan/location-base/internal/repository"
	"github.com/benmeehan/location-base/internal/services"
	"github.com/benmeehan/location-base/internal/utils"
	"github.com/benmeehan/location-base/pkg/file"
	"github.com/benmeehan/location-base/pkg/preferences"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// app holds the wired components for one CLI invocation.
type app struct {
	config  *utils.Config
	logger  zerolog.Logger
	db      *gorm.DB
	service *services.LocationService
}

// newApp loads the configuration, opens both stores and runs the service startup.
func newApp(ctx context.Context, configPath string, logOut io.Writer) (*app, error) {
	fileClient := file.NewFileService()

	config, err := utils.LoadConfig(configPath, fileClient)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := utils.NewLogger(config.Log.Level, config.Log.Format, logOut)

	db, err := repository.OpenSQLite(config.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Str("path", config.Database.Path).Msg("Failed to open location database")
		return nil, err
	}

	provider, err := services.NewLocationProvider(config, logger)
	if err != nil {
		_ = repository.CloseDB(db)
		return nil, err
	}

	service := services.NewLocationService(
		config.Location.CaptureTimeout,
		provider,
		repository.NewLocationRepository(db),
		preferences.NewFileStore(config.Preferences.File, fileClient, logger),
		logger,
	)
	if err := service.Startup(ctx); err != nil {
		_ = service.Close()
		_ = repository.CloseDB(db)
		return nil, err
	}

	return &app{
		config:  config,
		logger:  logger,
		db:      db,
		service: service,
	}, nil
}

// Close flushes pending preference writes before closing the database.
func (a *app) Close() error {
	err := a.service.Close()
	if dbErr := repository.CloseDB(a.db); dbErr != nil {
		a.logger.Error().Err(dbErr).Msg("Failed to close location database")
		if err == nil {
			err = dbErr
		}
	}
	return err
}

func printHistory(w io.Writer, history []models.LocationRecord) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No locations captured yet.")
		return
	}
	for _, r := range history {
		fmt.Fprintf(w, "Location %d: Latitude: %v | Longitude: %v\n", r.ID, r.Latitude, r.Longitude)
	}
}

func displayModeName(darkMode bool) string {
	if darkMode {
		return "dark"
	}
	return "light"
}
