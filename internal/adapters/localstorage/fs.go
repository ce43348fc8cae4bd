package localstorage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage implements ports.Storage for the local filesystem.
// Transcripts live permanently under OutputDir; audio files are staged
// under AudioDir and removed when their URL finishes processing.
type LocalStorage struct {
	outputDir string
	audioDir  string
}

// NewLocalStorage creates a LocalStorage. An empty audioDir stages audio
// in the process working directory.
func NewLocalStorage(outputDir, audioDir string) *LocalStorage {
	if audioDir == "" {
		audioDir = "."
	}
	return &LocalStorage{outputDir: outputDir, audioDir: audioDir}
}

// EnsureOutputDir creates the transcript output directory if absent.
func (s *LocalStorage) EnsureOutputDir() error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.outputDir, err)
	}
	return nil
}

// OutputDir returns the transcript output directory.
func (s *LocalStorage) OutputDir() string {
	return s.outputDir
}

// AudioPath returns the staging path for a video's audio file.
func (s *LocalStorage) AudioPath(videoID string) string {
	return filepath.Join(s.audioDir, videoID+".mp3")
}

// AudioExists reports whether the staged audio file is present.
func (s *LocalStorage) AudioExists(videoID string) bool {
	_, err := os.Stat(s.AudioPath(videoID))
	return err == nil
}

// RemoveAudio deletes the staged audio file if it exists.
func (s *LocalStorage) RemoveAudio(videoID string) error {
	err := os.Remove(s.AudioPath(videoID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove audio file: %w", err)
	}
	return nil
}
