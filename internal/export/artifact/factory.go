package artifact

import (
	"context"
	"fmt"

	"github.com/jtquiroga/DAA-por-region/internal/platform/config"
)

// Open selects a Store implementation from configuration.
func Open(ctx context.Context, cfg config.Artifact) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverFS, "":
		return NewFS(cfg.FSRoot)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown artifact driver %q", cfg.Driver)
	}
}
