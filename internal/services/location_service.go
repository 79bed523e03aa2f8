package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/benmeehan/location-base/internal/repository"
	"github.com/benmeehan/location-base/internal/utils"
	"github.com/benmeehan/location-base/pkg/location"
	"github.com/benmeehan/location-base/pkg/preferences"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

var (
	ErrAlreadyStarted    = errors.New("location service is already started")
	ErrCaptureInProgress = errors.New("a location capture is already in progress")
	ErrPermissionDenied  = errors.New("permission to access location was denied")
	ErrAcquisitionFailed = errors.New("failed to acquire location")
	ErrStorageWrite      = errors.New("failed to store location")
)

// preferenceQueueSize bounds the display mode writes waiting to run. Toggles are coalesced,
// so at most one write is ever waiting behind the running one.
const preferenceQueueSize = 1

// LocationService sequences permission, capture and persistence of locations, and owns the session
// state (busy flag, display mode, history) shown by the presentation layer.
type LocationService struct {
	// Configuration fields
	captureTimeout time.Duration

	// Dependencies
	provider    location.Provider
	repository  repository.LocationRepository
	preferences preferences.Store
	logger      zerolog.Logger

	// At most one capture cycle in flight
	captureGuard *semaphore.Weighted
	// Single worker, so preference writes land in toggle order
	preferenceWriter *utils.WorkerPool

	mu                 sync.RWMutex
	session            models.Session
	started            bool
	displayGeneration  uint64 // Incremented on every toggle
	displayWriteQueued bool   // A write is queued and will pick up the latest value

	closeOnce sync.Once
	closeErr  error
}

// NewLocationService creates a new LocationService instance with the provided dependencies.
func NewLocationService(captureTimeout time.Duration, provider location.Provider, repo repository.LocationRepository,
	prefs preferences.Store, logger zerolog.Logger) *LocationService {
	return &LocationService{
		captureTimeout:   captureTimeout,
		provider:         provider,
		repository:       repo,
		preferences:      prefs,
		logger:           logger,
		captureGuard:     semaphore.NewWeighted(1),
		preferenceWriter: utils.NewWorkerPool(1, preferenceQueueSize),
		session: models.Session{
			History: []models.LocationRecord{},
		},
	}
}

// Startup loads the display mode and the stored history. Read failures are logged and replaced by
// defaults (light mode, empty history) so the presentation layer always gets a usable session.
func (l *LocationService) Startup(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		l.logger.Warn().Msg("LocationService is already started")
		return ErrAlreadyStarted
	}
	l.started = true
	l.mu.Unlock()

	darkMode := l.loadDisplayMode()

	history, err := l.repository.GetAll(ctx)
	if err != nil {
		l.logger.Error().Err(err).Msg("Failed to load location history, starting with an empty list")
	}
	if history == nil {
		history = []models.LocationRecord{}
	}

	l.mu.Lock()
	l.session.DarkMode = darkMode
	l.session.History = history
	l.mu.Unlock()

	l.logger.Info().
		Bool("dark_mode", darkMode).
		Int("locations", len(history)).
		Msg("LocationService started")
	return nil
}

// Session returns a copy of the current session state.
func (l *LocationService) Session() models.Session {
	l.mu.RLock()
	defer l.mu.RUnlock()

	session := l.session
	session.History = make([]models.LocationRecord, len(l.session.History))
	copy(session.History, l.session.History)
	return session
}

// ToggleDisplayMode flips the display mode immediately and queues the durable write without blocking.
// Toggles made while a write is still queued are folded into it, so the last value always lands.
// If the write fails the flag is reconciled with the stored value, unless another toggle happened since.
func (l *LocationService) ToggleDisplayMode() bool {
	l.mu.Lock()
	l.session.DarkMode = !l.session.DarkMode
	l.displayGeneration++
	darkMode, generation := l.session.DarkMode, l.displayGeneration
	queued := l.displayWriteQueued
	l.displayWriteQueued = true
	l.mu.Unlock()

	if queued {
		l.logger.Debug().Bool("dark_mode", darkMode).Msg("Display mode toggled, write already queued")
		return darkMode
	}

	if err := l.preferenceWriter.TrySubmit(l.persistDisplayMode); err != nil {
		l.mu.Lock()
		l.displayWriteQueued = false
		l.mu.Unlock()

		l.logger.Error().Err(err).Bool("dark_mode", darkMode).Msg("Failed to queue display mode write")
		l.reconcileDisplayMode(generation)
		return l.Session().DarkMode
	}

	l.logger.Debug().Bool("dark_mode", darkMode).Msg("Display mode toggled")
	return darkMode
}

// CaptureAndStore runs one capture cycle: permission, position fix, insert, history reload.
// A second call while a cycle is running returns ErrCaptureInProgress without waiting.
func (l *LocationService) CaptureAndStore(ctx context.Context) (*models.LocationRecord, error) {
	if !l.captureGuard.TryAcquire(1) {
		l.logger.Warn().Msg("Capture requested while another capture is running")
		return nil, ErrCaptureInProgress
	}
	defer l.captureGuard.Release(1)

	logger := l.logger.With().Str("cycle_id", uuid.NewString()).Logger()

	l.setBusy(true)
	defer l.setBusy(false)

	permission, err := l.provider.RequestPermission(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to request location permission")
		return nil, fmt.Errorf("%w: %w", ErrAcquisitionFailed, err)
	}
	if permission != location.PermissionGranted {
		logger.Warn().Str("permission", string(permission)).Msg("Permission to access location was denied")
		return nil, ErrPermissionDenied
	}

	captureCtx, cancel := context.WithTimeout(ctx, l.captureTimeout)
	fix, err := l.provider.GetLocation(captureCtx)
	cancel()
	if err != nil {
		logger.Error().Err(err).Dur("timeout", l.captureTimeout).Msg("Failed to get location from provider")
		return nil, fmt.Errorf("%w: %w", ErrAcquisitionFailed, err)
	}
	logger.Debug().Stringer("location", fix).Float64("accuracy", fix.Accuracy).Msg("Location acquired")

	record, err := l.repository.InsertOne(ctx, fix.Latitude, fix.Longitude)
	if err != nil {
		logger.Error().Err(err).Stringer("location", fix).Msg("Failed to store location")
		return nil, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	history, err := l.repository.GetAll(ctx)
	if err != nil {
		// The insert is durable; show it on top of the last known history
		logger.Error().Err(err).Msg("Failed to reload location history")
		l.mu.Lock()
		l.session.History = append(l.session.History, *record)
		l.mu.Unlock()
	} else {
		l.mu.Lock()
		l.session.History = history
		l.mu.Unlock()
	}

	logger.Info().
		Uint("id", record.ID).
		Float64("latitude", record.Latitude).
		Float64("longitude", record.Longitude).
		Msg("Location stored")
	return record, nil
}

// Close waits for queued preference writes and releases the location provider.
func (l *LocationService) Close() error {
	l.closeOnce.Do(func() {
		l.preferenceWriter.Shutdown()
		if err := l.provider.Close(); err != nil {
			l.logger.Error().Err(err).Msg("Failed to close location provider")
			l.closeErr = err
		}
		l.logger.Debug().Msg("LocationService closed")
	})
	return l.closeErr
}

func (l *LocationService) setBusy(busy bool) {
	l.mu.Lock()
	l.session.Busy = busy
	l.mu.Unlock()
}

// loadDisplayMode reads the stored flag, falling back to light mode when it cannot be read.
func (l *LocationService) loadDisplayMode() bool {
	darkMode, err := l.readDisplayMode()
	if err != nil {
		l.logger.Error().Err(err).Msg("Failed to load display mode, using light mode")
		return false
	}
	return darkMode
}

// readDisplayMode returns the stored flag; anything but "true" means light mode.
func (l *LocationService) readDisplayMode() (bool, error) {
	value, found, err := l.preferences.Get(preferences.DarkModeKey)
	if err != nil {
		return false, err
	}
	return found && value == "true", nil
}

// persistDisplayMode writes the display mode current at the time the job runs.
func (l *LocationService) persistDisplayMode() {
	l.mu.Lock()
	l.displayWriteQueued = false
	darkMode, generation := l.session.DarkMode, l.displayGeneration
	l.mu.Unlock()

	if err := l.preferences.Set(preferences.DarkModeKey, strconv.FormatBool(darkMode)); err != nil {
		l.logger.Error().Err(err).Bool("dark_mode", darkMode).Msg("Failed to persist display mode")
		l.reconcileDisplayMode(generation)
	}
}

// reconcileDisplayMode restores the stored flag after a failed write, so memory and disk agree again.
func (l *LocationService) reconcileDisplayMode(generation uint64) {
	stored, err := l.readDisplayMode()
	if err != nil {
		l.logger.Warn().Err(err).Msg("Cannot read stored display mode, keeping the current value")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.displayGeneration != generation || l.session.DarkMode == stored {
		return
	}
	l.session.DarkMode = stored
	l.logger.Warn().Bool("dark_mode", stored).Msg("Display mode reverted to the stored value")
}
