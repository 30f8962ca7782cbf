package downloader

import (
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Progress снимок хода скачивания одного потока
type Progress struct {
	Percent    float64
	Downloaded int64
	Total      int64
	// Speed байт в секунду, 0 если неизвестна
	Speed float64
	// ETA 0 если неизвестно
	ETA time.Duration
}

// ProgressFunc получает обновления хода скачивания.
// Вызывается из горутины загрузчика, может прийти и после возврата Download.
type ProgressFunc func(p Progress)

// progressFrom переводит обновление yt-dlp в Progress
func progressFrom(u ytdlp.ProgressUpdate, now time.Time) Progress {
	p := Progress{
		Percent:    u.Percent(),
		Downloaded: int64(u.DownloadedBytes),
		Total:      int64(u.TotalBytes),
		ETA:        u.ETA(),
	}
	if !u.Started.IsZero() {
		if elapsed := now.Sub(u.Started).Seconds(); elapsed > 0 {
			p.Speed = float64(u.DownloadedBytes) / elapsed
		}
	}
	return p
}

// FormatSpeed скорость вида "1.5 MB/s", "N/A" если неизвестна
func FormatSpeed(bytesPerSec float64) string {
	switch {
	case bytesPerSec <= 0:
		return "N/A"
	case bytesPerSec >= 1<<20:
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/(1<<20))
	default:
		return fmt.Sprintf("%.0f KB/s", bytesPerSec/(1<<10))
	}
}
