package domain

import (
	"fmt"
	"strings"
)

// Placeholder values substituted for metadata fields the source does not
// provide. VideoDetails fields are never empty: absent data always becomes
// one of these strings.
const (
	NoTitle        = "No title available"
	NoDuration     = "No duration available"
	NoChannel      = "No channel information available"
	NoUploadDate   = "No upload date available"
	NoViews        = "No views available"
	NoLikes        = "No likes available"
	NoRating       = "No rating available"
	NoCommentCount = "No comment count available"
	NoChannelID    = "No channel ID available"
	NoVideoID      = "No video ID available"
	NoTags         = "No tags available"
	NoDescription  = "No description available"
)

// VideoDetails is the normalized metadata record for a single video.
// Count-like fields are carried as their decimal rendering so that a
// missing count can fall back to a placeholder like any other field.
type VideoDetails struct {
	Title         string
	Duration      string
	Channel       string
	UploadDate    string
	Views         string
	Likes         string
	AverageRating string
	CommentCount  string
	ChannelID     string
	VideoID       string
	Tags          []string
	Description   string
}

// TranscriptFormat identifies one of the transcript file formats the
// transcription tool emits.
type TranscriptFormat string

const (
	FormatTXT TranscriptFormat = "txt"
	FormatSRT TranscriptFormat = "srt"
	FormatVTT TranscriptFormat = "vtt"
)

// TranscriptFormats is the fixed delivery order for transcript files.
var TranscriptFormats = []TranscriptFormat{FormatTXT, FormatSRT, FormatVTT}

// TranscriptFileSet maps a transcript format to a local file path. A format
// is present only if its file exists with non-zero size.
type TranscriptFileSet map[TranscriptFormat]string

// FormatDuration renders a duration in seconds as "1h 1m 1s", omitting the
// hour component when it is zero.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	}
	return fmt.Sprintf("%dm %ds", minutes, secs)
}

// DescriptionSnippet returns at most maxLines lines of the description.
func DescriptionSnippet(description string, maxLines int) string {
	lines := strings.Split(description, "\n")
	if len(lines) <= maxLines {
		return description
	}
	return strings.Join(lines[:maxLines], "\n")
}
