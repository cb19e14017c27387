package codec

import (
	"context"
	"errors"
	"fmt"
)

// File name extensions for chunk files and compressed artifacts.
const (
	ArrayExtension      = "npy"
	CompressedExtension = "zli"
)

// ErrExhausted is returned (wrapped) by Chain.Compress when every codec
// in the chain has failed for a chunk.
var ErrExhausted = errors.New("codec: all codecs failed")

// Codec compresses one materialized chunk file into a durable artifact.
type Codec interface {
	// Name identifies the codec in logs and errors.
	Name() string

	// Compress compresses input and returns the path of the artifact
	// it wrote. On failure no artifact path is returned; partial
	// output, if any, is the codec's own responsibility.
	Compress(ctx context.Context, input string) (string, error)
}

// AttemptError reports a single failed compression attempt.
type AttemptError struct {
	Codec  string
	Output []byte // combined stdout/stderr of the external tool, unparsed
	Err    error
}

func (e *AttemptError) Error() string {
	if len(e.Output) > 0 {
		return fmt.Sprintf("codec %s: %v: %s", e.Codec, e.Err, e.Output)
	}
	return fmt.Sprintf("codec %s: %v", e.Codec, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}
