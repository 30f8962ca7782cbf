package downloader

import (
	"context"
	"os"
	"path/filepath"
)

// MockExtractor implements Extractor for testing.
type MockExtractor struct {
	ExtractFunc func(ctx context.Context, url string, f Format, dir string, progress ProgressFunc) error
}

func (m *MockExtractor) Extract(ctx context.Context, url string, f Format, dir string, progress ProgressFunc) error {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, url, f, dir, progress)
	}
	return nil
}

// writeFile creates a file of the given size in dir, the way yt-dlp leaves its output.
func writeFile(dir, name string, size int) error {
	return os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644)
}
