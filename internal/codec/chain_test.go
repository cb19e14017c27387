package codec

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/xpv0/zli-chunk/internal/testutils"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubCodec records calls and either fails or writes a trivial artifact.
type stubCodec struct {
	name  string
	err   error
	calls int
}

func (s *stubCodec) Name() string { return s.name }

func (s *stubCodec) Compress(_ context.Context, input string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	path := input + "." + s.name
	if err := os.WriteFile(path, []byte("artifact"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func TestChainFirstSuccessWins(t *testing.T) {
	dir := t.TempDir()
	input := testutils.WriteChunkFile(t, dir, "0.npy", []byte("data"))

	primary := &stubCodec{name: "wide"}
	secondary := &stubCodec{name: "narrow"}
	chain := NewChain(discardLogger(), primary, secondary)

	artifact, err := chain.Compress(context.Background(), input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if artifact != input+".wide" {
		t.Errorf("artifact = %q, want wide artifact", artifact)
	}
	if primary.calls != 1 || secondary.calls != 0 {
		t.Errorf("calls = %d/%d, want 1/0", primary.calls, secondary.calls)
	}
}

func TestChainFallsBack(t *testing.T) {
	dir := t.TempDir()
	input := testutils.WriteChunkFile(t, dir, "0.npy", []byte("data"))

	primary := &stubCodec{name: "wide", err: errors.New("incompatible layout")}
	secondary := &stubCodec{name: "narrow"}
	chain := NewChain(discardLogger(), primary, secondary)

	artifact, err := chain.Compress(context.Background(), input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if artifact != input+".narrow" {
		t.Errorf("artifact = %q, want narrow artifact", artifact)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}
}

func TestChainExhaustion(t *testing.T) {
	dir := t.TempDir()
	input := testutils.WriteChunkFile(t, dir, "0.npy", []byte("data"))

	primary := &stubCodec{name: "wide", err: errors.New("nope")}
	secondary := &stubCodec{name: "narrow", err: errors.New("also nope")}
	chain := NewChain(discardLogger(), primary, secondary)

	_, err := chain.Compress(context.Background(), input)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain(discardLogger())
	if _, err := chain.Compress(context.Background(), "0.npy"); err == nil {
		t.Fatal("expected error for empty chain")
	}
}

func TestChainCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &stubCodec{name: "wide", err: errors.New("killed")}
	secondary := &stubCodec{name: "narrow"}
	chain := NewChain(discardLogger(), primary, secondary)

	_, err := chain.Compress(ctx, "0.npy")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary tried %d times after cancellation", secondary.calls)
	}
}

func TestDefaultChainFallsBackToNarrow(t *testing.T) {
	ft := testutils.NewFakeTool(t, "le-i64")
	dir := t.TempDir()
	input := testutils.WriteChunkFile(t, dir, "7.npy", []byte("data"))

	chain := DefaultChain(discardLogger(), ft.Path)
	artifact, err := chain.Compress(context.Background(), input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if want := input + ".4.zli"; artifact != want {
		t.Errorf("artifact = %q, want %q", artifact, want)
	}
	if calls := ft.Calls(t); !reflect.DeepEqual(calls, []string{"le-i64", "le-i32"}) {
		t.Errorf("calls = %v, want [le-i64 le-i32]", calls)
	}
}
