package service

import (
	"context"

	"github.com/rs/zerolog"

	"vendordesk/internal/logging"
)

// scopedLogger prefers the request logger carried by ctx, so entries keep the
// caller's request_id, and tags it with the service component.
func scopedLogger(ctx context.Context, base zerolog.Logger, component string) *zerolog.Logger {
	l := logging.FromContext(ctx, base).With().Str("component", component).Logger()
	return &l
}
