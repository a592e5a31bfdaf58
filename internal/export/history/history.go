// Package history persists export run records. Drivers cover an in-memory
// map for tests and dev, a SQLite file living next to the exported
// artifacts, and PostgreSQL for shared deployments. Records are operational
// metadata only; the source datasets never pass through here.
package history

import (
	"context"

	"github.com/jtquiroga/DAA-por-region/internal/export"
)

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 50

// Store persists export run records.
//
// Append returns sentinel.ErrConflict (wrapped) when the run ID already
// exists. Get and Update return sentinel.ErrNotFound (wrapped) for unknown
// IDs. List returns the most recently created runs first.
type Store interface {
	Append(ctx context.Context, run export.Run) error
	Get(ctx context.Context, id string) (export.Run, error)
	Update(ctx context.Context, run export.Run) error
	List(ctx context.Context, limit int) ([]export.Run, error)
}
