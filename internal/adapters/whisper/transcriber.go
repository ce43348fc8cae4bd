package whisper

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/core/domain"
)

// runnerFunc abstracts the whisper process invocation for tests.
type runnerFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// Transcriber produces transcript files from a local audio file using the
// whisper CLI.
type Transcriber struct {
	binaryPath string
	logger     hclog.Logger

	run runnerFunc
}

// NewTranscriber creates a Transcriber. An empty binaryPath resolves
// whisper from PATH.
func NewTranscriber(binaryPath string, logger hclog.Logger) *Transcriber {
	if binaryPath == "" {
		binaryPath = "whisper"
	}
	return &Transcriber{
		binaryPath: binaryPath,
		logger:     logger,
		run:        execRunner,
	}
}

// Transcribe runs whisper against audioPath, directing output into
// outputDir. Whisper names its outputs after the audio file's stem, one
// file per format. A non-zero exit is logged but not decisive: the result
// holds exactly the formats whose files exist with non-zero size.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath, outputDir string) domain.TranscriptFileSet {
	t.logger.Info("starting transcription", "audio", audioPath)

	_, stderr, err := t.run(ctx, t.binaryPath, audioPath, "--output_dir", outputDir)
	if err != nil {
		t.logger.Error("whisper process failed", "error", err, "stderr", string(stderr))
	} else {
		t.logger.Info("whisper transcription completed", "audio", audioPath)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	created := domain.TranscriptFileSet{}
	for _, format := range domain.TranscriptFormats {
		path := filepath.Join(outputDir, stem+"."+string(format))
		info, statErr := os.Stat(path)
		if statErr == nil && info.Size() > 0 {
			t.logger.Info("transcription file created", "path", path)
			created[format] = path
		} else {
			t.logger.Warn("expected transcription file not found or empty", "path", path)
		}
	}
	return created
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err := cmd.Run()
	return out.Bytes(), errOut.Bytes(), err
}
