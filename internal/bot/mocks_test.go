package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"youtubeBot/internal/downloader"
)

// MockAPI implements API for testing and records everything sent.
type MockAPI struct {
	mu       sync.Mutex
	nextID   int
	Sent     []tgbotapi.Chattable
	Requests []tgbotapi.Chattable
	SendFunc func(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

func (m *MockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	m.Sent = append(m.Sent, c)
	m.nextID++
	id := m.nextID
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(c)
	}
	return tgbotapi.Message{MessageID: id}, nil
}

func (m *MockAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, c)
	m.mu.Unlock()
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// Texts returns the text of every message and edit, in order.
func (m *MockAPI) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for _, c := range m.Sent {
		switch v := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, v.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, v.Text)
		}
	}
	return out
}

// LastText returns the most recent message or edit text.
func (m *MockAPI) LastText() string {
	texts := m.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// MockDownloader implements Downloader for testing.
type MockDownloader struct {
	DownloadFunc func(ctx context.Context, url string, f downloader.Format, progress downloader.ProgressFunc) (*downloader.Result, error)
	Calls        []DownloadCall
}

type DownloadCall struct {
	URL    string
	Format downloader.Format
}

func (m *MockDownloader) Download(ctx context.Context, url string, f downloader.Format, progress downloader.ProgressFunc) (*downloader.Result, error) {
	m.Calls = append(m.Calls, DownloadCall{URL: url, Format: f})
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, url, f, progress)
	}
	return nil, &downloader.Error{Kind: downloader.KindUnknown, URL: url}
}

// MockInspector implements Inspector for testing.
type MockInspector struct {
	InspectFunc func(ctx context.Context, url string) (*downloader.Metadata, error)
}

func (m *MockInspector) Inspect(ctx context.Context, url string) (*downloader.Metadata, error) {
	if m.InspectFunc != nil {
		return m.InspectFunc(ctx, url)
	}
	return nil, nil
}
