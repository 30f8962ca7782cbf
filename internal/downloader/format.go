package downloader

import "fmt"

// Format формат, выбранный пользователем в меню
type Format int

const (
	FormatVideoHigh Format = iota + 1
	FormatVideoMedium
	FormatAudioMP3
)

// Formats порядок кнопок в меню
var Formats = []Format{FormatVideoHigh, FormatVideoMedium, FormatAudioMP3}

// ParseFormat разбирает тег из callback data
func ParseFormat(tag string) (Format, error) {
	for _, f := range Formats {
		if f.Tag() == tag {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q", tag)
}

// Tag короткий идентификатор для callback data
func (f Format) Tag() string {
	switch f {
	case FormatVideoHigh:
		return "video_high"
	case FormatVideoMedium:
		return "video_medium"
	case FormatAudioMP3:
		return "audio"
	}
	return ""
}

// Label текст для пользователя
func (f Format) Label() string {
	switch f {
	case FormatVideoHigh:
		return "high quality video"
	case FormatVideoMedium:
		return "medium quality video"
	case FormatAudioMP3:
		return "audio"
	}
	return "unknown"
}

// ButtonText надпись на кнопке меню
func (f Format) ButtonText() string {
	switch f {
	case FormatVideoHigh:
		return "🎥 Video (High Quality)"
	case FormatVideoMedium:
		return "🎥 Video (Medium Quality)"
	case FormatAudioMP3:
		return "🎵 Audio Only (MP3)"
	}
	return ""
}

// IsAudio true для формата "только звук"
func (f Format) IsAudio() bool { return f == FormatAudioMP3 }

// MaxHeight потолок разрешения для видео, 0 для аудио
func (f Format) MaxHeight() int {
	switch f {
	case FormatVideoHigh:
		return 1080
	case FormatVideoMedium:
		return 480
	}
	return 0
}

// Selector строка --format для yt-dlp
func (f Format) Selector() string {
	if f.IsAudio() {
		return "bestaudio/best"
	}
	h := f.MaxHeight()
	return fmt.Sprintf(
		"bestvideo[height<=%[1]d][ext=mp4]+bestaudio[ext=m4a]/best[height<=%[1]d][ext=mp4]/best[height<=%[1]d]/best[ext=mp4]/best",
		h,
	)
}

func (f Format) String() string { return f.Tag() }
