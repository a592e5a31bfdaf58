package history

import (
	"context"
	"fmt"

	"github.com/jtquiroga/DAA-por-region/internal/platform/config"
)

// Open selects a Store implementation from configuration.
func Open(ctx context.Context, cfg config.History) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	case "postgres":
		return NewPostgres(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.Driver)
	}
}
