package testutil

import (
	"context"
	"time"

	"github.com/jtquiroga/DAA-por-region/pkg/requestcontext"
)

// RequestContext returns a context stamped the way the middleware chain
// stamps real requests: a correlation ID plus the request-scoped time.
// Services exercised without the HTTP stack stay deterministic with it.
func RequestContext(requestID string, at time.Time) context.Context {
	ctx := requestcontext.WithRequestID(context.Background(), requestID)
	return requestcontext.WithTime(ctx, at)
}
