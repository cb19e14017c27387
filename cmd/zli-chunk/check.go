package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	bin := fs.String("bin", "zli", "location of the zli binary")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: zli-chunk check [options]

Verify the external compression binary exists, is executable, and
responds to --version. Useful before a multi-hour run.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	path, err := exec.LookPath(*bin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s not found: %v\n", *bin, err)
		return ExitToolNotFound
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot stat %s: %v\n", path, err)
		return ExitToolNotFound
	}
	if info.Mode()&0o111 == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s is not executable\n", path)
		return ExitToolNotFound
	}

	// The version probe is informational; some builds of the tool may
	// not support --version and still compress fine.
	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[zli-chunk] found %s, but --version failed: %v\n", path, err)
		return ExitSuccess
	}

	fmt.Fprintf(os.Stderr, "[zli-chunk] tool available: %s (%s)\n", path, strings.TrimSpace(string(out)))
	return ExitSuccess
}
