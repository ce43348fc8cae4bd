package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/core/domain"
)

// userAgent is the browser identity presented to YouTube. Requests with the
// default yt-dlp identity get throttled or blocked far more often.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

const (
	defaultMaxRetries       = 3
	defaultBaseDelay        = 5 * time.Second
	defaultDescriptionLines = 30
)

// MetadataOptions configures a MetadataFetcher. Zero values fall back to
// the defaults above.
type MetadataOptions struct {
	BinaryPath string

	// MaxRetries bounds the total number of yt-dlp invocations.
	MaxRetries int

	// BaseDelay is the first backoff interval; each further retry doubles it.
	BaseDelay time.Duration

	// UseDescriptionSnippet truncates the description to DescriptionMaxLines.
	UseDescriptionSnippet bool
	DescriptionMaxLines   int
}

// MetadataFetcher retrieves video metadata with yt-dlp --dump-json,
// retrying transient tool failures with exponential backoff.
type MetadataFetcher struct {
	opts   MetadataOptions
	logger hclog.Logger

	run   runnerFunc
	sleep func(ctx context.Context, d time.Duration) error
}

// NewMetadataFetcher creates a MetadataFetcher.
func NewMetadataFetcher(opts MetadataOptions, logger hclog.Logger) *MetadataFetcher {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "yt-dlp"
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	if opts.DescriptionMaxLines <= 0 {
		opts.DescriptionMaxLines = defaultDescriptionLines
	}
	return &MetadataFetcher{
		opts:   opts,
		logger: logger,
		run:    execRunner,
		sleep:  sleepContext,
	}
}

// Fetch retrieves and normalizes metadata for the given video URL.
//
// A non-zero exit from yt-dlp is treated as transient and retried after
// BaseDelay * 2^attempt. A zero-exit run whose output does not decode as
// JSON fails immediately: retrying cannot fix a deserialization problem.
func (f *MetadataFetcher) Fetch(ctx context.Context, url string) (*domain.VideoDetails, error) {
	args := []string{"--user-agent", userAgent, "--dump-json", url}

	for attempt := 0; attempt < f.opts.MaxRetries; attempt++ {
		stdout, stderr, err := f.run(ctx, f.opts.BinaryPath, args...)
		if err != nil {
			f.logger.Warn("metadata fetch attempt failed",
				"attempt", attempt+1, "error", err, "stderr", string(stderr))
			if attempt < f.opts.MaxRetries-1 {
				wait := f.opts.BaseDelay * (1 << attempt)
				f.logger.Info("retrying metadata fetch", "wait", wait)
				if serr := f.sleep(ctx, wait); serr != nil {
					return nil, serr
				}
				continue
			}
			f.logger.Error("all metadata fetch attempts failed", "url", url)
			return nil, fmt.Errorf("yt-dlp metadata fetch failed after %d attempts: %w", f.opts.MaxRetries, err)
		}

		var raw rawVideoJSON
		if jerr := json.Unmarshal(stdout, &raw); jerr != nil {
			f.logger.Error("decoding yt-dlp output failed", "error", jerr)
			return nil, fmt.Errorf("decoding yt-dlp output: %w", jerr)
		}

		details := f.normalize(raw)
		f.logger.Info("fetched video details", "url", url, "title", details.Title)
		return details, nil
	}

	return nil, fmt.Errorf("yt-dlp metadata fetch failed after %d attempts", f.opts.MaxRetries)
}

// rawVideoJSON is the subset of yt-dlp's --dump-json output the pipeline
// consumes. Pointer fields distinguish absent from zero-valued.
type rawVideoJSON struct {
	ID            string   `json:"id"`
	Title         *string  `json:"title"`
	Duration      *float64 `json:"duration"`
	Uploader      *string  `json:"uploader"`
	UploadDate    *string  `json:"upload_date"`
	ViewCount     *int64   `json:"view_count"`
	LikeCount     *int64   `json:"like_count"`
	AverageRating *float64 `json:"average_rating"`
	CommentCount  *int64   `json:"comment_count"`
	ChannelID     *string  `json:"channel_id"`
	Tags          []string `json:"tags"`
	Description   *string  `json:"description"`
}

// normalize maps the raw record into VideoDetails, substituting a
// placeholder for every absent field.
func (f *MetadataFetcher) normalize(raw rawVideoJSON) *domain.VideoDetails {
	duration := domain.NoDuration
	if raw.Duration != nil {
		duration = domain.FormatDuration(int(*raw.Duration))
	}

	videoID := raw.ID
	if videoID == "" {
		videoID = domain.NoVideoID
	}

	tags := raw.Tags
	if len(tags) == 0 {
		tags = []string{domain.NoTags}
	}

	description := strOr(raw.Description, domain.NoDescription)
	if f.opts.UseDescriptionSnippet {
		description = domain.DescriptionSnippet(description, f.opts.DescriptionMaxLines)
	}

	return &domain.VideoDetails{
		Title:         strOr(raw.Title, domain.NoTitle),
		Duration:      duration,
		Channel:       strOr(raw.Uploader, domain.NoChannel),
		UploadDate:    strOr(raw.UploadDate, domain.NoUploadDate),
		Views:         countOr(raw.ViewCount, domain.NoViews),
		Likes:         countOr(raw.LikeCount, domain.NoLikes),
		AverageRating: ratingOr(raw.AverageRating, domain.NoRating),
		CommentCount:  countOr(raw.CommentCount, domain.NoCommentCount),
		ChannelID:     strOr(raw.ChannelID, domain.NoChannelID),
		VideoID:       videoID,
		Tags:          tags,
		Description:   description,
	}
}

func strOr(v *string, placeholder string) string {
	if v == nil {
		return placeholder
	}
	return *v
}

func countOr(v *int64, placeholder string) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatInt(*v, 10)
}

func ratingOr(v *float64, placeholder string) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
