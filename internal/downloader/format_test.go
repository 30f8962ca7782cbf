package downloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(f.Tag())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("video_4k")
	assert.Error(t, err)
	_, err = ParseFormat("")
	assert.Error(t, err)
}

func TestFormat_Selector(t *testing.T) {
	assert.Equal(t, "bestaudio/best", FormatAudioMP3.Selector())
	assert.Contains(t, FormatVideoHigh.Selector(), "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]")
	assert.Contains(t, FormatVideoMedium.Selector(), "best[height<=480]/best[ext=mp4]/best")
	assert.NotContains(t, FormatVideoMedium.Selector(), "%!")
}

func TestFormat_Properties(t *testing.T) {
	assert.True(t, FormatAudioMP3.IsAudio())
	assert.False(t, FormatVideoHigh.IsAudio())
	assert.Equal(t, 1080, FormatVideoHigh.MaxHeight())
	assert.Equal(t, 480, FormatVideoMedium.MaxHeight())
	assert.Equal(t, 0, FormatAudioMP3.MaxHeight())
	assert.Equal(t, "audio", FormatAudioMP3.String())
	assert.Equal(t, "unknown", Format(0).Label())
}

func TestClassify(t *testing.T) {
	tests := map[string]Kind{
		"ERROR: [youtube] x: Sign in to confirm your age. This video may be inappropriate": KindRestricted,
		"ERROR: [youtube] x: Video not available in your country":                        KindRestricted,
		"ERROR: Unsupported URL: https://youtube.com/@chan":                               KindUnsupported,
		"ERROR: [youtube] x: Requested format is not available":                           KindUnsupported,
		"ERROR: unable to download video data: HTTP Error 503: Service Unavailable":        KindNetwork,
		"read tcp 10.0.0.2:5000->1.1.1.1:443: i/o timeout; connection reset by peer":       KindNetwork,
		"something odd":                                                                    KindUnknown,
	}

	for msg, want := range tests {
		assert.Equal(t, want, classify(msg), msg)
	}
}

func TestErrorLine(t *testing.T) {
	stderr := "WARNING: something\nERROR: [youtube] abc: Private video\n\n"
	assert.Equal(t, "ERROR: [youtube] abc: Private video", errorLine(stderr))
	assert.Equal(t, "last", errorLine("first\nlast\n"))
	assert.Equal(t, "", errorLine(""))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "3:33", FormatDuration(213*time.Second))
	assert.Equal(t, "1:02:03", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
}

func TestFormatViews(t *testing.T) {
	assert.Equal(t, "0", FormatViews(0))
	assert.Equal(t, "999", FormatViews(999))
	assert.Equal(t, "1,000", FormatViews(1000))
	assert.Equal(t, "1,234,567", FormatViews(1234567))
	assert.Equal(t, "-12,345", FormatViews(-12345))
}
