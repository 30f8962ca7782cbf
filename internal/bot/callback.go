package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"youtubeBot/internal/delivery"
	"youtubeBot/internal/downloader"
)

// handleCallback обрабатывает нажатие кнопки формата:
// скачать, проверить размер, отправить, удалить файл.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Warn().Err(err).Msg("⚠️ answer callback failed")
	}

	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	f, err := downloader.ParseFormat(cq.Data)
	if err != nil {
		b.log.Warn().Int64("chat", chatID).Str("data", cq.Data).Msg("⚠️ unknown callback data")
		b.edit(chatID, messageID, invalidOptionText)
		return
	}

	// ссылка забирается сразу: чат возвращается в Idle при любом исходе
	req, ok := b.sessions.Take(chatID)
	if !ok {
		b.edit(chatID, messageID, expiredText)
		return
	}

	log := b.log.With().Int64("chat", chatID).Str("url", req.URL).Stringer("format", f).Logger()
	log.Info().Msg("⏱️ format selected")

	title := req.Title
	if title == "" {
		title = req.URL
	}
	b.edit(chatID, messageID, fmt.Sprintf("⏱️ Starting %s download for: %s...", f.Label(), title))

	progress := newProgressReporter(func(text string) { b.edit(chatID, messageID, text) })
	res, err := b.downloader.Download(ctx, req.URL, f, progress.report)
	progress.stop()
	if err != nil {
		if downloader.KindOf(err) == downloader.KindTimeout {
			b.edit(chatID, messageID, timeoutText)
			return
		}
		b.edit(chatID, messageID, downloadFailText)
		return
	}

	gate := b.delivery.Gate()
	if gate.Check(res) == delivery.Accept {
		b.edit(chatID, messageID, fmt.Sprintf("📤 Uploading %s to Telegram...", f.Label()))
	}

	err = b.delivery.Deliver(chatID, res, delivery.Caption{Title: req.Title, Author: req.Author})
	switch {
	case errors.Is(err, delivery.ErrTooLarge):
		b.edit(chatID, messageID, tooLargeText(f, res.Size, gate.Limit))
	case err != nil:
		b.edit(chatID, messageID, uploadFailText)
	default:
		log.Info().Msg("✅ delivered")
		b.edit(chatID, messageID, fmt.Sprintf("✅ %s downloaded and sent successfully!", capitalize(f.Label())))
	}
}

func tooLargeText(f downloader.Format, size, limit int64) string {
	if limit <= 0 {
		limit = delivery.DefaultLimit
	}
	what := "video"
	if f.IsAudio() {
		what = "audio"
	}
	return fmt.Sprintf(
		"⚠️ The %s is too large (%.1f MB) to send via Telegram (limit: %.0f MB).\nPlease try a lower quality or audio-only option.",
		what, delivery.SizeMB(size), delivery.SizeMB(limit),
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
