package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "data/transacciones.csv", cfg.Sources.Transactions)
	assert.Equal(t, "data/regiones.json", cfg.Sources.Boundaries)
	assert.InDelta(t, 90, cfg.Map.RotationDeg, 0)
	assert.Equal(t, "fs", cfg.Artifact.Driver)
	assert.Equal(t, "exports", cfg.Artifact.FSRoot)
	assert.Equal(t, "memory", cfg.History.Driver)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 10*time.Minute, cfg.Redis.FrameTTL)
	assert.Equal(t, 8, cfg.Export.QueueSize)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DAA_ADDR", ":9999")
	t.Setenv("DAA_MAP_ROTATION_DEG", "0")
	t.Setenv("DAA_HISTORY_DRIVER", "sqlite")
	t.Setenv("DAA_FRAME_CACHE_TTL", "30s")
	t.Setenv("DAA_ARTIFACT_S3_PATH_STYLE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Zero(t, cfg.Map.RotationDeg)
	assert.Equal(t, "sqlite", cfg.History.Driver)
	assert.Equal(t, 30*time.Second, cfg.Redis.FrameTTL)
	assert.True(t, cfg.Artifact.S3PathStyle)
}

func TestFromEnvRejectsBadValue(t *testing.T) {
	t.Setenv("DAA_EXPORT_QUEUE_SIZE", "many")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
