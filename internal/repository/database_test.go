package repository

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLogger_VisibleAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	newGormLogger(logger).Error(context.Background(), "insert failed: %s", "disk I/O error")

	assert.Contains(t, buf.String(), "insert failed")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"component":"gorm"`)
}

func TestGormLogger_FailedStatement(t *testing.T) {
	var buf bytes.Buffer
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "locations.db"), zerolog.New(&buf).Level(zerolog.InfoLevel))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })

	err = db.Exec("INSERT INTO missing_table (x) VALUES (1)").Error

	assert.Error(t, err)
	assert.Contains(t, buf.String(), "missing_table")
}
