// Package testutils provides shared test infrastructure.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FakeTool is a stand-in for the external compression binary. It is a
// shell script that honors the real tool's invocation contract
// (`compress --profile <name> <input> --output <path>`), records every
// profile it is invoked with, and exits non-zero for the configured
// failing profiles. Successful invocations copy the input to the
// output path so artifact files actually appear on disk.
type FakeTool struct {
	Path    string
	callLog string
}

// NewFakeTool writes a fake tool script into a test temp directory.
// Invocations with any of failProfiles exit with status 1.
func NewFakeTool(t *testing.T, failProfiles ...string) *FakeTool {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "zli")
	callLog := filepath.Join(dir, "calls.log")

	var cases strings.Builder
	for _, p := range failProfiles {
		fmt.Fprintf(&cases, "\t%s) echo \"profile %s rejected\" >&2; exit 1;;\n", p, p)
	}

	script := fmt.Sprintf(`#!/bin/sh
profile="$3"
input="$4"
output="$6"
printf '%%s\n' "$profile" >> %q
case "$profile" in
%sesac
cp "$input" "$output"
`, callLog, cases.String())

	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}

	return &FakeTool{Path: path, callLog: callLog}
}

// Calls returns the profiles the tool was invoked with, in order.
func (ft *FakeTool) Calls(t *testing.T) []string {
	t.Helper()

	data, err := os.ReadFile(ft.callLog)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read call log: %v", err)
	}
	return strings.Fields(string(data))
}

// WriteChunkFile writes data to a file in dir and returns its path.
func WriteChunkFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
