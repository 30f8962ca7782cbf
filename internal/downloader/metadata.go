package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
)

// Metadata сведения о видео для меню и подписи
type Metadata struct {
	ID       string
	Title    string
	Author   string
	Duration time.Duration
	Views    int
}

// Inspector получает метаданные без скачивания
type Inspector struct {
	client *youtube.Client
}

// NewInspector создает Inspector поверх httpClient (может быть nil)
func NewInspector(httpClient *http.Client) *Inspector {
	return &Inspector{client: &youtube.Client{HTTPClient: httpClient}}
}

// Inspect возвращает метаданные видео по ссылке
func (i *Inspector) Inspect(ctx context.Context, url string) (*Metadata, error) {
	v, err := i.client.GetVideoContext(ctx, url)
	if err != nil {
		kind := classify(err.Error())
		if errors.Is(err, youtube.ErrVideoPrivate) {
			kind = KindRestricted
		}
		return nil, &Error{Kind: kind, URL: url, Err: fmt.Errorf("video info: %w", err)}
	}

	return &Metadata{
		ID:       v.ID,
		Title:    v.Title,
		Author:   v.Author,
		Duration: v.Duration,
		Views:    v.Views,
	}, nil
}

// FormatDuration форматирует длительность как m:ss или h:mm:ss
func FormatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	h, m, s := secs/3600, secs%3600/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatViews форматирует число с разделителями тысяч
func FormatViews(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
