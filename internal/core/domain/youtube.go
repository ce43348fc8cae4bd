package domain

import (
	"errors"
	"regexp"
)

// ErrInvalidURL marks a URL that does not parse as a YouTube video link.
// Callers skip such URLs instead of failing the whole message.
var ErrInvalidURL = errors.New("invalid YouTube URL")

// youtubePattern recognizes the YouTube domains and TLD forms across the
// watch, embed, v and appended-query path shapes. The 11-character video ID
// is capture group 6.
var youtubePattern = regexp.MustCompile(
	`^(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/(watch\?v=|embed/|v/|.+\?v=)?([^&=%?]{11})`)

// urlPattern matches every http(s)-prefixed token in free-form message text.
var urlPattern = regexp.MustCompile(`https?://\S+`)

// FindURLs returns every URL-shaped substring of the message text, in order.
func FindURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// ExtractVideoID extracts the 11-character video ID from a YouTube URL.
// Returns ErrInvalidURL when the URL does not match the YouTube pattern.
func ExtractVideoID(url string) (string, error) {
	match := youtubePattern.FindStringSubmatch(url)
	if match == nil {
		return "", ErrInvalidURL
	}
	return match[6], nil
}

// WatchURL builds the canonical watch URL for a video ID. Every downstream
// tool call uses this form regardless of the URL shape the requester sent.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
