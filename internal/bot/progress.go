package bot

import (
	"fmt"
	"sync"

	"youtubeBot/internal/downloader"
)

// progressStep шаг в процентах между правками статуса
const progressStep = 10

// progressReporter правит статусное сообщение по мере скачивания,
// не чаще одного раза на каждые progressStep процентов.
type progressReporter struct {
	mu   sync.Mutex
	show func(text string)
	last int
	done bool
}

func newProgressReporter(show func(text string)) *progressReporter {
	return &progressReporter{show: show}
}

func (r *progressReporter) report(p downloader.Progress) {
	step := int(p.Percent) / progressStep

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return
	}
	// видео и звук качаются отдельными потоками: процент начинается заново
	if step < r.last {
		r.last = step
		return
	}
	if step == 0 || step == r.last {
		return
	}
	r.last = step
	r.show(progressText(p))
}

// stop отключает правки. После возврата report уже ничего не отправит.
func (r *progressReporter) stop() {
	r.mu.Lock()
	r.done = true
	r.mu.Unlock()
}

func progressText(p downloader.Progress) string {
	eta := "N/A"
	if p.ETA > 0 {
		eta = downloader.FormatDuration(p.ETA)
	}
	return fmt.Sprintf("⬇️ Downloading: %.1f%% complete...\nSpeed: %s\nETA: %s",
		p.Percent, downloader.FormatSpeed(p.Speed), eta)
}
