package downloader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
)

// progressInterval как часто yt-dlp присылает прогресс
const progressInterval = 500 * time.Millisecond

// YtDlpOptions настройки вызова yt-dlp
type YtDlpOptions struct {
	// Executable путь к yt-dlp, пустой означает поиск в PATH
	Executable string
	// Proxy значение --proxy, пустое отключает прокси
	Proxy string
	Log   zerolog.Logger
}

// YtDlp Extractor поверх yt-dlp (нужен ffmpeg для склейки и mp3)
type YtDlp struct {
	opts YtDlpOptions
}

// NewYtDlp создает Extractor на yt-dlp
func NewYtDlp(opts YtDlpOptions) *YtDlp {
	return &YtDlp{opts: opts}
}

// command собирает команду для формата f с выводом в dir
func (y *YtDlp) command(f Format, dir string) *ytdlp.Command {
	cmd := ytdlp.New().
		Format(f.Selector()).
		Output(filepath.Join(dir, "%(id)s.%(ext)s")).
		NoPlaylist().
		RestrictFilenames().
		ForceOverwrites()

	if f.IsAudio() {
		cmd = cmd.ExtractAudio().AudioFormat("mp3").AudioQuality("192K")
	} else {
		cmd = cmd.MergeOutputFormat("mp4")
	}

	if y.opts.Proxy != "" {
		cmd = cmd.Proxy(y.opts.Proxy)
	}
	if y.opts.Executable != "" {
		cmd = cmd.SetExecutable(y.opts.Executable)
	}
	return cmd
}

// Extract реализует Extractor
func (y *YtDlp) Extract(ctx context.Context, url string, f Format, dir string, progress ProgressFunc) error {
	cmd := y.command(f, dir)
	if progress != nil {
		cmd.ProgressFunc(progressInterval, func(u ytdlp.ProgressUpdate) {
			if u.Status != ytdlp.ProgressStatusDownloading {
				return
			}
			progress(progressFrom(u, time.Now()))
		})
	}

	res, err := cmd.Run(ctx, url)
	if err != nil {
		// stderr нужен для классификации: именно там yt-dlp пишет причину
		if res != nil && strings.TrimSpace(res.Stderr) != "" {
			y.opts.Log.Debug().Str("stderr", res.Stderr).Msg("yt-dlp stderr")
			return fmt.Errorf("yt-dlp: %w: %s", err, errorLine(res.Stderr))
		}
		return fmt.Errorf("yt-dlp: %w", err)
	}
	return nil
}

// Version возвращает версию yt-dlp, используется в `bot check`
func (y *YtDlp) Version(ctx context.Context) (string, error) {
	cmd := ytdlp.New()
	if y.opts.Executable != "" {
		cmd = cmd.SetExecutable(y.opts.Executable)
	}
	res, err := cmd.Run(ctx, "--version")
	if err != nil {
		return "", fmt.Errorf("yt-dlp --version: %w", err)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// errorLine последняя строка "ERROR:" из stderr, иначе последняя непустая
func errorLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if l == "" {
			continue
		}
		if strings.HasPrefix(l, "ERROR:") {
			return l
		}
		if last == "" {
			last = l
		}
	}
	return last
}
