package delivery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youtubeBot/internal/downloader"
)

func tempResult(t *testing.T, name string, size int64, f downloader.Format) *downloader.Result {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(path)
	require.NoError(t, err)
	// разреженный файл: 60 МБ без реальной записи
	require.NoError(t, fh.Truncate(size))
	require.NoError(t, fh.Close())

	r, err := downloader.NewResult(path, f)
	require.NoError(t, err)
	return r
}

func TestGate_Check(t *testing.T) {
	g := Gate{Limit: DefaultLimit}

	tests := []struct {
		name string
		size int64
		want Verdict
	}{
		{"empty", 0, Accept},
		{"small", 10 << 20, Accept},
		{"exactly limit", 50 << 20, Accept},
		{"one byte over", 50<<20 + 1, Reject},
		{"sixty megabytes", 60 << 20, Reject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Check(&downloader.Result{Size: tt.size}))
		})
	}

	assert.Equal(t, Reject, g.Check(nil))
}

func TestGate_ZeroLimitUsesDefault(t *testing.T) {
	var g Gate
	assert.Equal(t, Accept, g.Check(&downloader.Result{Size: DefaultLimit}))
	assert.Equal(t, Reject, g.Check(&downloader.Result{Size: DefaultLimit + 1}))
}

func TestGate_ConfiguredLimit(t *testing.T) {
	g := Gate{Limit: 2000 << 20}
	assert.Equal(t, Accept, g.Check(&downloader.Result{Size: 60 << 20}))
}

func TestDeliver_Video(t *testing.T) {
	sender := &MockSender{}
	d := New(sender, Gate{Limit: DefaultLimit}, zerolog.Nop())
	r := tempResult(t, "abc.mp4", 1024, downloader.FormatVideoHigh)

	err := d.Deliver(7, r, Caption{Title: "Never Gonna Give You Up"})
	require.NoError(t, err)
	assert.NoFileExists(t, r.Path)

	require.Len(t, sender.Sent, 1)
	video, ok := sender.Sent[0].(tgbotapi.VideoConfig)
	require.True(t, ok, "expected VideoConfig, got %T", sender.Sent[0])
	assert.Equal(t, int64(7), video.ChatID)
	assert.Equal(t, "🎬 Never Gonna Give You Up", video.Caption)
	assert.True(t, video.SupportsStreaming)
	assert.Equal(t, tgbotapi.FilePath(r.Path), video.File)
}

func TestDeliver_Audio(t *testing.T) {
	sender := &MockSender{}
	d := New(sender, Gate{}, zerolog.Nop())
	r := tempResult(t, "abc.mp3", 1024, downloader.FormatAudioMP3)

	require.NoError(t, d.Deliver(7, r, Caption{Title: "Song", Author: "Band"}))
	assert.NoFileExists(t, r.Path)

	require.Len(t, sender.Sent, 1)
	audio, ok := sender.Sent[0].(tgbotapi.AudioConfig)
	require.True(t, ok, "expected AudioConfig, got %T", sender.Sent[0])
	assert.Equal(t, "Song", audio.Title)
	assert.Equal(t, "Band", audio.Performer)
}

func TestDeliver_DefaultCaptions(t *testing.T) {
	sender := &MockSender{}
	d := New(sender, Gate{}, zerolog.Nop())

	require.NoError(t, d.Deliver(1, tempResult(t, "a.mp3", 1, downloader.FormatAudioMP3), Caption{}))
	require.NoError(t, d.Deliver(1, tempResult(t, "v.mp4", 1, downloader.FormatVideoMedium), Caption{}))

	audio := sender.Sent[0].(tgbotapi.AudioConfig)
	assert.Equal(t, "YouTube Audio", audio.Title)
	assert.Equal(t, "Unknown Artist", audio.Performer)
	video := sender.Sent[1].(tgbotapi.VideoConfig)
	assert.Equal(t, "🎬 YouTube Video", video.Caption)
}

func TestDeliver_TooLargeRemovesFile(t *testing.T) {
	sender := &MockSender{}
	d := New(sender, Gate{Limit: DefaultLimit}, zerolog.Nop())
	r := tempResult(t, "big.mp4", 60<<20, downloader.FormatVideoHigh)

	err := d.Deliver(7, r, Caption{})
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Contains(t, err.Error(), "60.0 MB")
	assert.Empty(t, sender.Sent)
	assert.NoFileExists(t, r.Path)
}

func TestDeliver_UploadFailureRemovesFile(t *testing.T) {
	sender := &MockSender{SendFunc: func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		return tgbotapi.Message{}, errors.New("Request Entity Too Large")
	}}
	d := New(sender, Gate{}, zerolog.Nop())
	r := tempResult(t, "abc.mp4", 1024, downloader.FormatVideoHigh)

	err := d.Deliver(7, r, Caption{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTooLarge)
	assert.NoFileExists(t, r.Path)
}

func TestDeliver_Nil(t *testing.T) {
	d := New(&MockSender{}, Gate{}, zerolog.Nop())
	assert.Error(t, d.Deliver(1, nil, Caption{}))
}

func TestSizeMB(t *testing.T) {
	assert.InDelta(t, 60.0, SizeMB(60<<20), 0.001)
}
