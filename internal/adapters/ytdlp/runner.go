package ytdlp

import (
	"bytes"
	"context"
	"os/exec"
)

// runnerFunc abstracts the yt-dlp process invocation so tests can substitute
// scripted results for a real subprocess.
type runnerFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err := cmd.Run()
	return out.Bytes(), errOut.Bytes(), err
}
