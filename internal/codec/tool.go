package codec

import (
	"context"
	"fmt"
	"os/exec"
)

// Profile names an external tool profile and the numeric element width
// it targets. The width becomes the artifact name infix.
type Profile struct {
	Name  string
	Width int
}

// The profiles the external tool is invoked with. le-i64 compresses
// better but rejects some layouts; le-i32 accepts more inputs.
var (
	ProfileI64 = Profile{Name: "le-i64", Width: 8}
	ProfileI32 = Profile{Name: "le-i32", Width: 4}
)

// Tool invokes an external compression binary with a fixed profile.
// The binary's exit status is the sole success signal; its output is
// captured for error reporting but never parsed.
type Tool struct {
	Bin     string
	Profile Profile
}

func (t *Tool) Name() string {
	return t.Profile.Name
}

// Compress runs `<bin> compress --profile <name> <input> --output
// <input>.<width>.zli` and waits for it to exit.
func (t *Tool) Compress(ctx context.Context, input string) (string, error) {
	output := fmt.Sprintf("%s.%d.%s", input, t.Profile.Width, CompressedExtension)

	cmd := exec.CommandContext(ctx, t.Bin, "compress", "--profile", t.Profile.Name, input, "--output", output)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", &AttemptError{Codec: t.Profile.Name, Output: out, Err: err}
	}
	return output, nil
}
