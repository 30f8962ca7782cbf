package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Extractor скачивает url в формате f внутрь dir.
// Реализация должна уважать отмену ctx. progress может быть nil.
type Extractor interface {
	Extract(ctx context.Context, url string, f Format, dir string, progress ProgressFunc) error
}

// Result скачанный файл во временной папке задачи
type Result struct {
	Path   string
	Size   int64
	Format Format
	// dir папка задачи, удаляется целиком вместе с файлом
	dir string
}

// NewResult описывает уже существующий файл. Remove удалит только сам файл.
func NewResult(path string, f Format) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &Result{Path: path, Size: info.Size(), Format: f}, nil
}

// Remove удаляет файл и папку задачи. Повторный вызов безопасен.
func (r *Result) Remove() error {
	if r == nil {
		return nil
	}
	if r.dir != "" {
		return os.RemoveAll(r.dir)
	}
	if err := os.Remove(r.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Downloader запускает Extractor как задачу с таймаутом
type Downloader struct {
	extractor Extractor
	dir       string
	timeout   time.Duration
	log       zerolog.Logger
}

// New создает Downloader. timeout <= 0 отключает собственный таймаут,
// остается только отмена ctx вызывающего.
func New(ex Extractor, dir string, timeout time.Duration, log zerolog.Logger) *Downloader {
	return &Downloader{
		extractor: ex,
		dir:       dir,
		timeout:   timeout,
		log:       log.With().Str("component", "downloader").Logger(),
	}
}

// Download скачивает url в формате f, ход скачивания уходит в progress (может быть nil).
// Ошибка всегда *Error, временные файлы при ошибке удаляются.
func (d *Downloader) Download(ctx context.Context, url string, f Format, progress ProgressFunc) (*Result, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, &Error{Kind: KindUnknown, URL: url, Err: fmt.Errorf("create download dir: %w", err)}
	}

	taskID := uuid.NewString()
	taskDir := filepath.Join(d.dir, "task-"+taskID)
	if err := os.Mkdir(taskDir, 0o755); err != nil {
		return nil, &Error{Kind: KindUnknown, URL: url, Err: fmt.Errorf("create task dir: %w", err)}
	}

	log := d.log.With().Str("task", taskID).Str("url", url).Stringer("format", f).Logger()

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	started := time.Now()
	log.Info().Msg("💾 download started")

	done := make(chan error, 1)
	go func() {
		done <- d.extractor.Extract(ctx, url, f, taskDir, progress)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		// extractor может еще писать в папку: чистим, когда он вернется
		go func() {
			<-done
			os.RemoveAll(taskDir)
		}()
		kind := KindTimeout
		if errors.Is(ctx.Err(), context.Canceled) {
			kind = KindUnknown
		}
		log.Warn().Dur("elapsed", time.Since(started)).Err(ctx.Err()).Msg("⏰ download aborted")
		return nil, &Error{Kind: kind, URL: url, Err: ctx.Err()}
	}

	if err != nil {
		os.RemoveAll(taskDir)
		kind := classify(err.Error())
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		log.Error().Err(err).Stringer("kind", kind).Msg("❌ download failed")
		return nil, &Error{Kind: kind, URL: url, Err: err}
	}

	path, size, err := findDownloadedFile(taskDir, f)
	if err != nil {
		os.RemoveAll(taskDir)
		log.Error().Err(err).Msg("❌ output not found")
		return nil, &Error{Kind: KindUnknown, URL: url, Err: err}
	}

	log.Info().
		Str("file", filepath.Base(path)).
		Int64("bytes", size).
		Dur("elapsed", time.Since(started)).
		Msg("✅ download finished")

	return &Result{Path: path, Size: size, Format: f, dir: taskDir}, nil
}

var (
	videoExts = []string{".mp4", ".mkv", ".webm", ".mov"}
	audioExts = []string{".mp3", ".m4a", ".ogg", ".opus"}
)

// findDownloadedFile ищет итоговый файл в папке задачи.
// Промежуточные файлы yt-dlp (.part, .ytdl, миниатюры) пропускаем.
func findDownloadedFile(dir string, f Format) (string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, fmt.Errorf("read task dir: %w", err)
	}

	exts := videoExts
	if f.IsAudio() {
		exts = audioExts
	}

	for _, ext := range exts {
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
				continue
			}
			info, err := e.Info()
			if err != nil {
				return "", 0, err
			}
			return filepath.Join(dir, e.Name()), info.Size(), nil
		}
	}

	return "", 0, ErrNoOutput
}
