// Package delivery проверяет размер скачанного файла и отправляет его в чат.
package delivery

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"youtubeBot/internal/downloader"
)

// ErrTooLarge файл не прошел Size Gate
var ErrTooLarge = errors.New("file exceeds upload limit")

// Sender часть tgbotapi.BotAPI, нужная для отправки
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Caption подпись к отправляемому файлу
type Caption struct {
	Title  string
	Author string
}

// Deliverer отправляет файлы и всегда удаляет их после
type Deliverer struct {
	sender Sender
	gate   Gate
	log    zerolog.Logger
}

// New создает Deliverer с заданным лимитом gate
func New(sender Sender, gate Gate, log zerolog.Logger) *Deliverer {
	return &Deliverer{
		sender: sender,
		gate:   gate,
		log:    log.With().Str("component", "delivery").Logger(),
	}
}

// Gate возвращает текущий Size Gate
func (d *Deliverer) Gate() Gate { return d.gate }

// Deliver проверяет размер и отправляет файл как видео или аудио.
// Временный файл удаляется при любом исходе.
func (d *Deliverer) Deliver(chatID int64, r *downloader.Result, c Caption) error {
	if r == nil {
		return errors.New("nothing to deliver")
	}
	defer func() {
		if rmErr := r.Remove(); rmErr != nil {
			d.log.Warn().Err(rmErr).Str("file", r.Path).Msg("⚠️ failed to remove temp file")
		}
	}()

	log := d.log.With().Int64("chat", chatID).Stringer("format", r.Format).Int64("bytes", r.Size).Logger()

	if d.gate.Check(r) == Reject {
		log.Info().Msg("📦 rejected by size gate")
		return fmt.Errorf("%w: %.1f MB", ErrTooLarge, SizeMB(r.Size))
	}

	if _, err := d.sender.Send(d.attachment(chatID, r, c)); err != nil {
		log.Error().Err(err).Msg("❌ upload failed")
		return fmt.Errorf("upload: %w", err)
	}

	log.Info().Msg("📤 file sent")
	return nil
}

func (d *Deliverer) attachment(chatID int64, r *downloader.Result, c Caption) tgbotapi.Chattable {
	file := tgbotapi.FilePath(r.Path)

	if r.Format.IsAudio() {
		audio := tgbotapi.NewAudio(chatID, file)
		audio.Title = orDefault(c.Title, "YouTube Audio")
		audio.Performer = orDefault(c.Author, "Unknown Artist")
		return audio
	}

	video := tgbotapi.NewVideo(chatID, file)
	video.Caption = "🎬 " + orDefault(c.Title, "YouTube Video")
	video.SupportsStreaming = true
	return video
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
