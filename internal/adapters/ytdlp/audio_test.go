package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadSuccess(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "dQw4w9WgXcQ.mp3")

	d := NewAudioDownloader("", hclog.NewNullLogger())
	d.run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		assert.Contains(t, args, "--extract-audio")
		assert.Contains(t, args, "mp3")
		return nil, nil, os.WriteFile(outputPath, []byte("audio"), 0644)
	}

	err := d.Download(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", outputPath)
	require.NoError(t, err)
	assert.FileExists(t, outputPath)
}

// yt-dlp exiting non-zero after writing the file still counts as success;
// the file on disk is what matters.
func TestDownloadToolErrorButFilePresent(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "dQw4w9WgXcQ.mp3")

	d := NewAudioDownloader("", hclog.NewNullLogger())
	d.run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		_ = os.WriteFile(outputPath, []byte("audio"), 0644)
		return nil, []byte("postprocessing warning"), errors.New("exit status 1")
	}

	err := d.Download(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", outputPath)
	assert.NoError(t, err)
}

func TestDownloadFileAbsent(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "dQw4w9WgXcQ.mp3")

	d := NewAudioDownloader("", hclog.NewNullLogger())
	d.run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("video unavailable"), errors.New("exit status 1")
	}

	err := d.Download(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", outputPath)
	require.Error(t, err)
	assert.NoFileExists(t, outputPath)
}
