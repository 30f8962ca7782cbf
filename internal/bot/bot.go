// Package bot связывает Telegram с классификатором ссылок, загрузчиком и доставкой.
package bot

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"youtubeBot/internal/delivery"
	"youtubeBot/internal/downloader"
	"youtubeBot/internal/session"
)

// API часть tgbotapi.BotAPI, которой пользуется бот
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Downloader скачивает ссылку в выбранном формате, сообщая ход скачивания в progress
type Downloader interface {
	Download(ctx context.Context, url string, f downloader.Format, progress downloader.ProgressFunc) (*downloader.Result, error)
}

// Inspector получает метаданные для меню
type Inspector interface {
	Inspect(ctx context.Context, url string) (*downloader.Metadata, error)
}

// Deps зависимости бота
type Deps struct {
	API        API
	Sessions   *session.Store
	Downloader Downloader
	// Inspector может быть nil: меню показывается без названия
	Inspector       Inspector
	Delivery        *delivery.Deliverer
	MetadataTimeout time.Duration
	Log             zerolog.Logger
}

// Bot обрабатывает обновления Telegram
type Bot struct {
	api             API
	sessions        *session.Store
	downloader      Downloader
	inspector       Inspector
	delivery        *delivery.Deliverer
	metadataTimeout time.Duration
	log             zerolog.Logger
}

// New создает бота
func New(d Deps) *Bot {
	sessions := d.Sessions
	if sessions == nil {
		sessions = session.NewStore()
	}
	return &Bot{
		api:             d.API,
		sessions:        sessions,
		downloader:      d.Downloader,
		inspector:       d.Inspector,
		delivery:        d.Delivery,
		metadataTimeout: d.MetadataTimeout,
		log:             d.Log,
	}
}

// Run обрабатывает обновления до закрытия канала или отмены ctx.
// Каждое обновление идет в своей горутине; перед выходом ждем их завершения.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	var wg sync.WaitGroup
	defer wg.Wait()

	b.log.Info().Msg("🚀 waiting for updates")
	for {
		select {
		case <-ctx.Done():
			b.log.Info().Msg("🛑 stopping update loop")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						b.log.Error().Interface("panic", r).Int("update", update.UpdateID).Msg("💥 handler panic")
					}
				}()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate разбирает одно обновление
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		b.handleMessage(ctx, u.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.Chat == nil {
		return
	}

	if m.IsCommand() {
		b.handleCommand(m)
		return
	}

	if m.Text == "" {
		return
	}
	b.handleText(ctx, m)
}

// reply отправляет текст, ошибки только логируются
func (b *Bot) reply(chatID int64, text string) (tgbotapi.Message, error) {
	msg, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("❌ send message failed")
	}
	return msg, err
}

// edit меняет текст статусного сообщения
func (b *Bot) edit(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		b.log.Warn().Err(err).Int64("chat", chatID).Int("message", messageID).Msg("⚠️ edit message failed")
	}
}
