package raspistill

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommand is the Raspberry Pi still capture utility.
const DefaultCommand = "raspistill"

// DefaultArgs are passed before the output path.
var DefaultArgs = []string{"--encoding", "jpg", "--output"}

// CaptureError is returned when the capture binary fails or complains.
type CaptureError struct {
	Stderr string
	Err    error // exit error, nil when only stderr was written
}

func (e *CaptureError) Error() string {
	switch {
	case e.Err != nil && e.Stderr != "":
		return fmt.Sprintf("capture failed: %v, stderr: %s", e.Err, e.Stderr)
	case e.Err != nil:
		return fmt.Sprintf("capture failed: %v", e.Err)
	default:
		return fmt.Sprintf("capture wrote to stderr: %s", e.Stderr)
	}
}

func (e *CaptureError) Unwrap() error { return e.Err }

// Camera uses a local capture binary to take photos.
type Camera struct {
	binaryPath string
	args       []string
}

// NewCamera creates a camera. Empty values fall back to raspistill defaults.
func NewCamera(binaryPath string, args []string) *Camera {
	if binaryPath == "" {
		binaryPath = DefaultCommand
	}
	if args == nil {
		args = DefaultArgs
	}
	return &Camera{binaryPath: binaryPath, args: args}
}

// Capture runs the binary with the output path appended to its arguments.
// Any output on stderr is treated as a failure, even with a zero exit status.
func (c *Camera) Capture(ctx context.Context, path string) error {
	argv := append(append([]string{}, c.args...), path)
	cmd := exec.CommandContext(ctx, c.binaryPath, argv...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	msg := strings.TrimSpace(stderr.String())
	if err != nil || msg != "" {
		return &CaptureError{Stderr: msg, Err: err}
	}
	return nil
}
