package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `🎬 *YouTube Downloader Bot* 🎬

Send me a YouTube link, and I'll download the video for you!

*Commands:*
/start - Start the bot
/help - Show this help message

*How to use:*
1. Simply send a YouTube link
2. Choose the quality you want to download
3. Wait for the download to complete

*Supported links:*
- YouTube videos
- YouTube Shorts`

const (
	guidanceText      = "Please send me a YouTube link or use /help to see available commands."
	genericErrorText  = "❌ Something went wrong. Please try again."
	processingText    = "🔎 Processing YouTube link..."
	expiredText       = "❌ Session expired. Please send the YouTube link again."
	invalidOptionText = "❌ Invalid option selected."
	downloadFailText  = "❌ Download failed. The video might be unavailable or restricted."
	timeoutText       = "⌛ Download timed out. Please try again later."
	uploadFailText    = "❌ Failed to send the file. Please try again later."
)

func (b *Bot) handleCommand(m *tgbotapi.Message) {
	chatID := m.Chat.ID
	b.log.Debug().Int64("chat", chatID).Str("command", m.Command()).Msg("📩 command")

	switch m.Command() {
	case "start":
		name := "there"
		if m.From != nil && m.From.FirstName != "" {
			name = m.From.FirstName
		}
		b.reply(chatID, fmt.Sprintf(
			"👋 Hello, %s!\n\nWelcome to YouTube Downloader Bot. Send me a YouTube link and I'll download the video for you.",
			name,
		))
		b.sendHelp(chatID)
	case "help":
		b.sendHelp(chatID)
	default:
		b.reply(chatID, guidanceText)
	}
}

func (b *Bot) sendHelp(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("❌ send help failed")
	}
}
