package codec

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses a chunk in-process. It accepts any byte layout, which
// makes it a useful last resort behind the width-specific external
// profiles, at the cost of element-width-aware compression ratios.
type Zstd struct {
	Level zstd.EncoderLevel
}

func (z *Zstd) Name() string {
	return "zstd"
}

// Compress writes <input>.zst.
func (z *Zstd) Compress(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &AttemptError{Codec: z.Name(), Err: err}
	}

	level := z.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}

	output := input + ".zst"
	if err := z.compressFile(input, output, level); err != nil {
		// Do not leave a truncated artifact behind on failure.
		os.Remove(output)
		return "", &AttemptError{Codec: z.Name(), Err: err}
	}
	return output, nil
}

func (z *Zstd) compressFile(input, output string, level zstd.EncoderLevel) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(level))
	if err != nil {
		out.Close()
		return fmt.Errorf("create encoder: %w", err)
	}

	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		out.Close()
		return fmt.Errorf("compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		out.Close()
		return fmt.Errorf("flush encoder: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
