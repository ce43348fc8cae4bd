package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/core/domain"
	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/core/ports"
)

// User-facing progress and status messages, one per pipeline step.
const (
	msgSkipNonYouTube  = "Skipping non-YouTube URL."
	msgProcessing      = "Processing YouTube URL..."
	msgFetchingDetails = "Fetching YouTube video details..."
	msgDetailsFailed   = "Failed to fetch video details."
	msgDownloadFailed  = "Audio file could not be downloaded."
	msgTranscribing    = "Transcribing audio..."
	msgTranscribeFail  = "Failed to transcribe audio."
	msgSendingFiles    = "Sending transcription files..."
	msgDone            = "There ya go, have a nice day! :-)"
)

// Config holds the pipeline's compile/config-time settings.
type Config struct {
	// OutputDir is the permanent transcript directory.
	OutputDir string

	// AudioDir is where audio files are staged; empty means the working
	// directory.
	AudioDir string

	// MetadataMaxRetries and MetadataBaseDelay bound the metadata fetch
	// retry loop.
	MetadataMaxRetries int
	MetadataBaseDelay  time.Duration

	// UseDescriptionSnippet truncates descriptions to DescriptionMaxLines.
	UseDescriptionSnippet bool
	DescriptionMaxLines   int
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir:           "transcriptions",
		MetadataMaxRetries:  3,
		MetadataBaseDelay:   5 * time.Second,
		DescriptionMaxLines: 30,
	}
}

// Pipeline orchestrates the download-transcribe-deliver flow for every
// YouTube URL found in an inbound message.
type Pipeline struct {
	cfg         Config
	metadata    ports.MetadataFetcher
	downloader  ports.AudioDownloader
	transcriber ports.Transcriber
	notifier    ports.Notifier
	storage     ports.Storage
	logger      hclog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(
	cfg Config,
	metadata ports.MetadataFetcher,
	downloader ports.AudioDownloader,
	transcriber ports.Transcriber,
	notifier ports.Notifier,
	storage ports.Storage,
	logger hclog.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		metadata:    metadata,
		downloader:  downloader,
		transcriber: transcriber,
		notifier:    notifier,
		storage:     storage,
		logger:      logger,
	}
}

// Process handles one inbound message: every URL-shaped token is processed
// in order, each to completion before the next begins. Failures are
// per-URL; a bad URL never aborts the rest of the message.
func (p *Pipeline) Process(ctx context.Context, chatID int64, messageText string) {
	jobID := uuid.New().String()
	log := p.logger.With("job", jobID, "chat", chatID)

	urls := domain.FindURLs(messageText)
	if len(urls) == 0 {
		log.Debug("no URLs in message")
		return
	}

	log.Info("processing message", "urls", len(urls))
	for _, url := range urls {
		p.processURL(ctx, log, chatID, url)
	}
}

func (p *Pipeline) processURL(ctx context.Context, log hclog.Logger, chatID int64, url string) {
	videoID, err := domain.ExtractVideoID(url)
	if err != nil {
		log.Info("skipping non-YouTube URL", "url", url)
		p.notify(ctx, log, chatID, msgSkipNonYouTube)
		return
	}

	log = log.With("video", videoID)
	p.notify(ctx, log, chatID, msgProcessing)

	// All downstream calls use the canonical watch URL, whatever shape the
	// requester sent.
	watchURL := domain.WatchURL(videoID)

	p.notify(ctx, log, chatID, msgFetchingDetails)
	details, err := p.metadata.Fetch(ctx, watchURL)
	if err != nil {
		log.Error("metadata fetch failed", "error", err)
		p.notify(ctx, log, chatID, msgDetailsFailed)
		return
	}

	p.notify(ctx, log, chatID,
		fmt.Sprintf("Title: %s\nDownloading audio for transcription...", details.Title))

	audioPath := p.storage.AudioPath(videoID)
	if err := p.downloader.Download(ctx, watchURL, audioPath); err != nil {
		log.Warn("audio download reported error", "error", err)
	}
	if !p.storage.AudioExists(videoID) {
		p.notify(ctx, log, chatID, msgDownloadFailed)
		return
	}

	p.notify(ctx, log, chatID, msgTranscribing)
	files := p.transcriber.Transcribe(ctx, audioPath, p.cfg.OutputDir)
	if len(files) == 0 {
		log.Error("transcription produced no files", "audio", audioPath)
		p.notify(ctx, log, chatID, msgTranscribeFail)
		p.removeAudio(log, videoID)
		return
	}

	p.notify(ctx, log, chatID, msgSendingFiles)
	for _, format := range domain.TranscriptFormats {
		path, ok := files[format]
		if !ok {
			continue
		}
		if err := p.notifier.SendDocument(ctx, chatID, path); err != nil {
			log.Warn("failed to send transcript", "path", path, "error", err)
		}
	}

	p.removeAudio(log, videoID)
	p.notify(ctx, log, chatID, msgDone)
	log.Info("URL processed", "title", details.Title)
}

// notify sends a progress message. Transport failures are logged and
// swallowed: a dead chat must not abort work already in flight.
func (p *Pipeline) notify(ctx context.Context, log hclog.Logger, chatID int64, text string) {
	if err := p.notifier.SendText(ctx, chatID, text); err != nil {
		log.Warn("failed to send notification", "text", text, "error", err)
	}
}

func (p *Pipeline) removeAudio(log hclog.Logger, videoID string) {
	if err := p.storage.RemoveAudio(videoID); err != nil {
		log.Warn("failed to remove audio file", "video", videoID, "error", err)
	}
}
