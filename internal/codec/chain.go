package codec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Chain tries an ordered list of codecs, stopping at the first success.
type Chain struct {
	codecs []Codec
	logger *slog.Logger
}

// NewChain builds a chain that tries codecs in the given order.
// A nil logger falls back to slog.Default.
func NewChain(logger *slog.Logger, codecs ...Codec) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{codecs: codecs, logger: logger}
}

// DefaultChain is the standard fallback order for the external tool:
// le-i64 first, le-i32 when that fails.
func DefaultChain(logger *slog.Logger, bin string) *Chain {
	return NewChain(logger,
		&Tool{Bin: bin, Profile: ProfileI64},
		&Tool{Bin: bin, Profile: ProfileI32},
	)
}

// Append returns the chain with more codecs added after the existing ones.
func (c *Chain) Append(codecs ...Codec) *Chain {
	c.codecs = append(c.codecs, codecs...)
	return c
}

// Compress runs each codec in order on input and returns the artifact
// path of the first success. Individual failures are logged. If every
// codec fails, the returned error wraps ErrExhausted and the last
// attempt's error.
func (c *Chain) Compress(ctx context.Context, input string) (string, error) {
	if len(c.codecs) == 0 {
		return "", errors.New("codec: empty chain")
	}

	var lastErr error
	for _, cd := range c.codecs {
		artifact, err := cd.Compress(ctx, input)
		if err == nil {
			return artifact, nil
		}
		if ctx.Err() != nil {
			// The attempt likely died to cancellation, not an
			// incompatible layout; trying further codecs is pointless.
			return "", ctx.Err()
		}
		c.logger.Warn("compression attempt failed",
			"codec", cd.Name(),
			"input", input,
			"error", err,
		)
		lastErr = err
	}
	return "", fmt.Errorf("%w for %s: %w", ErrExhausted, input, lastErr)
}
