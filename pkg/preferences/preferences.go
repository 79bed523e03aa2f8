package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/benmeehan/location-base/pkg/file"
	"github.com/rs/zerolog"
)

// DarkModeKey is the key under which the display-mode flag is stored.
const DarkModeKey = "@darkMode"

// ErrCorruptDocument is returned by Get when the preferences file exists but is not a valid JSON object.
var ErrCorruptDocument = errors.New("preferences document is corrupt")

// Store defines a durable string key/value store for user preferences.
type Store interface {
	// Get returns the last stored value for key; found is false if it was never set.
	Get(key string) (value string, found bool, err error)
	// Set durably overwrites the value for key.
	Set(key, value string) error
}

// FileStore keeps all preferences in a single JSON document.
// Each Set rewrites the document atomically, so a failed write leaves the previous values intact.
// A corrupt document is reported by Get and replaced by the next Set.
type FileStore struct {
	path    string
	fileOps file.FileOperations
	logger  zerolog.Logger

	mu sync.Mutex
}

// NewFileStore initializes a new FileStore backed by filePath.
func NewFileStore(filePath string, fileOps file.FileOperations, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:    filePath,
		fileOps: fileOps,
		logger:  logger,
	}
}

// Get reads the document from disk and returns the value for key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set writes value under key, keeping every other stored key.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if errors.Is(err, ErrCorruptDocument) {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Discarding corrupt preferences document")
		values = make(map[string]string)
	} else if err != nil {
		return err
	}
	values[key] = value

	if err := s.fileOps.EnsureDir(s.path); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := s.fileOps.WriteJsonFile(s.path, values); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// load returns the stored values, or an empty map if the document does not exist yet.
func (s *FileStore) load() (map[string]string, error) {
	values := make(map[string]string)

	exists, err := s.fileOps.IsFileExists(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat preferences: %w", err)
	}
	if !exists {
		return values, nil
	}

	if err := s.fileOps.ReadJsonFile(s.path, &values); err != nil {
		if isDecodeError(err) {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	if values == nil {
		// A document containing JSON null
		values = make(map[string]string)
	}
	return values, nil
}

// isDecodeError reports whether err comes from the document's content rather than from reading the file.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
