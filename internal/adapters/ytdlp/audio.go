package ytdlp

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

// AudioDownloader extracts a video's audio track to a local mp3 file using
// yt-dlp. One attempt only: a failed download is terminal for that URL.
type AudioDownloader struct {
	binaryPath string
	logger     hclog.Logger

	run runnerFunc
}

// NewAudioDownloader creates an AudioDownloader. An empty binaryPath
// resolves yt-dlp from PATH.
func NewAudioDownloader(binaryPath string, logger hclog.Logger) *AudioDownloader {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &AudioDownloader{
		binaryPath: binaryPath,
		logger:     logger,
		run:        execRunner,
	}
}

// Download extracts audio from the given URL into outputPath. The returned
// error is advisory: success is whether outputPath exists afterwards, since
// yt-dlp can exit non-zero after writing a usable file.
func (d *AudioDownloader) Download(ctx context.Context, url, outputPath string) error {
	d.logger.Info("attempting to download audio", "url", url)

	_, stderr, err := d.run(ctx, d.binaryPath,
		"--extract-audio", "--audio-format", "mp3", url, "-o", outputPath)
	if err != nil {
		d.logger.Warn("yt-dlp audio extraction exited with error",
			"error", err, "stderr", string(stderr))
	}

	if _, statErr := os.Stat(outputPath); statErr == nil {
		d.logger.Info("audio downloaded successfully", "path", outputPath)
		return nil
	}

	d.logger.Error("failed to download audio", "path", outputPath)
	if err != nil {
		return fmt.Errorf("yt-dlp audio extraction failed: %w", err)
	}
	return fmt.Errorf("audio file %s was not created", outputPath)
}
