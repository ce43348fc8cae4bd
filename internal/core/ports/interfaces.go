package ports

import (
	"context"

	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/core/domain"
)

// MetadataFetcher defines the contract for retrieving video metadata.
type MetadataFetcher interface {
	// Fetch retrieves and normalizes metadata for the given video URL.
	// Transient tool failures are retried internally with backoff; a
	// returned error means the URL should be skipped.
	Fetch(ctx context.Context, url string) (*domain.VideoDetails, error)
}

// AudioDownloader defines the contract for extracting a local audio file
// from a video URL.
type AudioDownloader interface {
	// Download makes a single attempt to produce an audio file at
	// outputPath. The returned error is advisory: callers decide success
	// by checking that outputPath exists afterwards.
	Download(ctx context.Context, url, outputPath string) error
}

// Transcriber defines the contract for producing transcript files from a
// local audio file.
type Transcriber interface {
	// Transcribe runs the transcription tool against audioPath, directing
	// output into outputDir. The result contains only the formats whose
	// files were verified to exist with non-zero size; an empty set means
	// transcription failed.
	Transcribe(ctx context.Context, audioPath, outputDir string) domain.TranscriptFileSet
}

// Notifier defines the chat transport consumed by the pipeline.
type Notifier interface {
	// SendText delivers a progress or status message to the chat.
	SendText(ctx context.Context, chatID int64, text string) error

	// SendDocument delivers a local file to the chat as a document.
	SendDocument(ctx context.Context, chatID int64, path string) error
}

// Storage owns the filesystem layout for staged audio and permanent
// transcript output.
type Storage interface {
	// EnsureOutputDir creates the transcript output directory if absent.
	EnsureOutputDir() error

	// AudioPath returns the staging path for a video's audio file.
	AudioPath(videoID string) string

	// AudioExists reports whether the staged audio file is present.
	AudioExists(videoID string) bool

	// RemoveAudio deletes the staged audio file. Removing an absent file
	// is not an error.
	RemoveAudio(videoID string) error
}
