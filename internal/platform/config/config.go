// Package config loads service configuration from environment variables so
// main stays lean. Every knob has a default that works for local development
// against files under data/.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// Config is the full configuration tree for both binaries. The dashboard
// reads all of it; the static export CLI overrides most of it with flags.
type Config struct {
	Addr            string        `env:"DAA_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"DAA_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Log      Log
	Sources  Sources
	Map      Map
	Artifact Artifact
	History  History
	Redis    Redis
	Export   Export
}

// Log controls slog output.
type Log struct {
	Level  string `env:"DAA_LOG_LEVEL" envDefault:"info"`
	Format string `env:"DAA_LOG_FORMAT" envDefault:"text"`
}

// Sources locates the four input datasets.
type Sources struct {
	Transactions string `env:"DAA_SOURCE_TRANSACTIONS" envDefault:"data/transacciones.csv"`
	Population   string `env:"DAA_SOURCE_POPULATION" envDefault:"data/poblacion_regiones.csv"`
	Australia    string `env:"DAA_SOURCE_AUSTRALIA" envDefault:"data/daa_australia.xlsx"`
	Boundaries   string `env:"DAA_SOURCE_BOUNDARIES" envDefault:"data/regiones.json"`
}

// Map tunes boundary preparation.
type Map struct {
	// RotationDeg rotates the country around its centroid before display.
	// 90 turns Chile on its side so the long axis runs horizontally.
	RotationDeg float64 `env:"DAA_MAP_ROTATION_DEG" envDefault:"90"`
}

// Artifact selects where export outputs are written.
type Artifact struct {
	Driver      string `env:"DAA_ARTIFACT_DRIVER" envDefault:"fs"`
	FSRoot      string `env:"DAA_ARTIFACT_FS_ROOT" envDefault:"exports"`
	S3Bucket    string `env:"DAA_ARTIFACT_S3_BUCKET"`
	S3Region    string `env:"DAA_ARTIFACT_S3_REGION"`
	S3Endpoint  string `env:"DAA_ARTIFACT_S3_ENDPOINT"`
	S3PathStyle bool   `env:"DAA_ARTIFACT_S3_PATH_STYLE"`
}

// History selects where export run records are kept.
type History struct {
	Driver      string `env:"DAA_HISTORY_DRIVER" envDefault:"memory"`
	SQLitePath  string `env:"DAA_HISTORY_SQLITE_PATH" envDefault:"exports/history.db"`
	PostgresURL string `env:"DAA_HISTORY_POSTGRES_URL"`
}

// Redis configures the optional frame cache. An empty URL disables it.
type Redis struct {
	URL          string        `env:"DAA_REDIS_URL"`
	PoolSize     int           `env:"DAA_REDIS_POOL_SIZE" envDefault:"10"`
	DialTimeout  time.Duration `env:"DAA_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"DAA_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"DAA_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	FrameTTL     time.Duration `env:"DAA_FRAME_CACHE_TTL" envDefault:"10m"`
}

// Export tunes the async export worker.
type Export struct {
	QueueSize int `env:"DAA_EXPORT_QUEUE_SIZE" envDefault:"8"`
}

// FromEnv parses the full configuration from the environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, dErrors.Wrap(err, dErrors.CodeValidation, "parse environment")
	}
	return cfg, nil
}
