package ytdlp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/core/domain"
)

type runResult struct {
	stdout []byte
	err    error
}

// scriptedFetcher returns a fetcher whose runner replays the given results
// in order and whose sleeps are recorded instead of waited out.
func scriptedFetcher(t *testing.T, opts MetadataOptions, results []runResult) (*MetadataFetcher, *[]time.Duration, *int) {
	t.Helper()

	f := NewMetadataFetcher(opts, hclog.NewNullLogger())

	calls := 0
	f.run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		require.Less(t, calls, len(results), "unexpected extra yt-dlp invocation")
		r := results[calls]
		calls++
		return r.stdout, []byte("tool output"), r.err
	}

	var sleeps []time.Duration
	f.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return f, &sleeps, &calls
}

const sampleJSON = `{
	"id": "dQw4w9WgXcQ",
	"title": "Never Gonna Give You Up",
	"duration": 3661,
	"uploader": "Rick Astley",
	"upload_date": "20091025",
	"view_count": 1000000,
	"like_count": 50000,
	"comment_count": 2000,
	"channel_id": "UCuAXFkgsw1L7xaCfnd5JJOw",
	"tags": ["music", "80s"],
	"description": "The official video."
}`

func TestFetchRetriesThenSucceeds(t *testing.T) {
	f, sleeps, calls := scriptedFetcher(t,
		MetadataOptions{MaxRetries: 3, BaseDelay: time.Second},
		[]runResult{
			{err: errors.New("exit status 1")},
			{err: errors.New("exit status 1")},
			{stdout: []byte(sampleJSON)},
		})

	details, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, 3, *calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *sleeps)
	assert.Equal(t, "Never Gonna Give You Up", details.Title)
	assert.Equal(t, "1h 1m 1s", details.Duration)
}

func TestFetchExhaustsRetries(t *testing.T) {
	toolErr := errors.New("exit status 1")
	f, sleeps, calls := scriptedFetcher(t,
		MetadataOptions{MaxRetries: 3, BaseDelay: time.Second},
		[]runResult{{err: toolErr}, {err: toolErr}, {err: toolErr}})

	_, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.Error(t, err)
	assert.ErrorIs(t, err, toolErr)

	// No sleep after the final attempt.
	assert.Equal(t, 3, *calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *sleeps)
}

func TestFetchInvalidJSONFailsImmediately(t *testing.T) {
	f, sleeps, calls := scriptedFetcher(t,
		MetadataOptions{MaxRetries: 3, BaseDelay: time.Second},
		[]runResult{{stdout: []byte("not json {")}})

	_, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.Error(t, err)

	// A parse failure is deterministic: one call, zero sleeps.
	assert.Equal(t, 1, *calls)
	assert.Empty(t, *sleeps)
}

func TestFetchNormalizesFullRecord(t *testing.T) {
	f, _, _ := scriptedFetcher(t, MetadataOptions{}, []runResult{{stdout: []byte(sampleJSON)}})

	details, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, &domain.VideoDetails{
		Title:         "Never Gonna Give You Up",
		Duration:      "1h 1m 1s",
		Channel:       "Rick Astley",
		UploadDate:    "20091025",
		Views:         "1000000",
		Likes:         "50000",
		AverageRating: domain.NoRating,
		CommentCount:  "2000",
		ChannelID:     "UCuAXFkgsw1L7xaCfnd5JJOw",
		VideoID:       "dQw4w9WgXcQ",
		Tags:          []string{"music", "80s"},
		Description:   "The official video.",
	}, details)
}

func TestFetchSubstitutesPlaceholders(t *testing.T) {
	f, _, _ := scriptedFetcher(t, MetadataOptions{}, []runResult{{stdout: []byte(`{}`)}})

	details, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, domain.NoTitle, details.Title)
	assert.Equal(t, domain.NoDuration, details.Duration)
	assert.Equal(t, domain.NoChannel, details.Channel)
	assert.Equal(t, domain.NoUploadDate, details.UploadDate)
	assert.Equal(t, domain.NoViews, details.Views)
	assert.Equal(t, domain.NoLikes, details.Likes)
	assert.Equal(t, domain.NoRating, details.AverageRating)
	assert.Equal(t, domain.NoCommentCount, details.CommentCount)
	assert.Equal(t, domain.NoChannelID, details.ChannelID)
	assert.Equal(t, domain.NoVideoID, details.VideoID)
	assert.Equal(t, []string{domain.NoTags}, details.Tags)
	assert.Equal(t, domain.NoDescription, details.Description)
}

func TestFetchZeroDurationIsNotMissing(t *testing.T) {
	f, _, _ := scriptedFetcher(t, MetadataOptions{}, []runResult{{stdout: []byte(`{"duration": 0}`)}})

	details, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "0m 0s", details.Duration)
}

func TestFetchDescriptionSnippet(t *testing.T) {
	f, _, _ := scriptedFetcher(t,
		MetadataOptions{UseDescriptionSnippet: true, DescriptionMaxLines: 2},
		[]runResult{{stdout: []byte(`{"description": "one\ntwo\nthree\nfour"}`)}})

	details, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", details.Description)
}
