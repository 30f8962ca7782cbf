package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"youtubeBot/internal/downloader"
	"youtubeBot/internal/link"
	"youtubeBot/internal/session"
)

func (b *Bot) handleText(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID

	url, ok := link.Classify(m.Text)
	if !ok {
		b.reply(chatID, guidanceText)
		return
	}

	b.log.Info().
		Int64("chat", chatID).
		Str("url", url).
		Str("video", link.VideoID(url)).
		Bool("shorts", link.IsShorts(url)).
		Msg("🔗 link received")
	b.presentMenu(ctx, chatID, url)
}

// presentMenu запоминает ссылку для чата и показывает кнопки выбора формата
func (b *Bot) presentMenu(ctx context.Context, chatID int64, url string) {
	// ссылку сохраняем до сетевых вызовов: более поздняя ссылка всегда перезапишет ее
	b.sessions.Put(chatID, session.PendingRequest{URL: url})

	status, err := b.reply(chatID, processingText)
	if err != nil {
		b.reply(chatID, genericErrorText)
		return
	}

	meta := b.inspect(ctx, url)
	if meta != nil {
		fresh := b.sessions.Update(chatID, url, func(req *session.PendingRequest) {
			req.Title = meta.Title
			req.Author = meta.Author
		})
		if !fresh {
			b.log.Debug().Int64("chat", chatID).Str("url", url).Msg("🔁 link replaced while loading metadata")
		}
	}

	text := menuText(meta)
	keyboard := formatKeyboard()

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, status.MessageID, text, keyboard)
	if _, err := b.api.Send(edit); err == nil {
		return
	}

	// статусное сообщение могли удалить: шлем меню заново
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("❌ send format menu failed")
		b.reply(chatID, genericErrorText)
	}
}

// inspect получает метаданные; неудача не мешает показать меню
func (b *Bot) inspect(ctx context.Context, url string) *downloader.Metadata {
	if b.inspector == nil {
		return nil
	}
	if b.metadataTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.metadataTimeout)
		defer cancel()
	}

	meta, err := b.inspector.Inspect(ctx, url)
	if err != nil {
		b.log.Warn().Err(err).Str("url", url).Stringer("kind", downloader.KindOf(err)).Msg("⚠️ metadata unavailable")
		return nil
	}
	return meta
}

func menuText(meta *downloader.Metadata) string {
	if meta == nil || meta.Title == "" {
		return "Please select download format:"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📽️ %s\n\n", meta.Title)
	fmt.Fprintf(&sb, "▶️ Duration: %s\n", downloader.FormatDuration(meta.Duration))
	fmt.Fprintf(&sb, "👁️ Views: %s\n\n", downloader.FormatViews(meta.Views))
	sb.WriteString("Please select download format:")
	return sb.String()
}

func formatKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(downloader.Formats))
	for _, f := range downloader.Formats {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(f.ButtonText(), f.Tag()),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
