package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"youtubeBot/internal/bot"
	"youtubeBot/internal/config"
	"youtubeBot/internal/delivery"
	"youtubeBot/internal/downloader"
	"youtubeBot/internal/netx"
	"youtubeBot/internal/session"
)

// version подставляется при сборке через -ldflags "-X main.version=X.Y.Z"
var version = "dev"

type options struct {
	envFile string
	debug   bool
}

func main() {
	os.Exit(execute(context.Background(), newRootCmd(), os.Stderr))
}

// execute запускает команду и возвращает код выхода.
// cobra молчит (SilenceErrors), поэтому ошибку печатаем сами.
func execute(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "❌", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "bot",
		Short:         "Telegram bot that downloads YouTube videos and audio",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "env file with bot settings")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "verbose logging")

	root.AddCommand(newCheckCmd(opts))
	return root
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		Level(level).
		With().Timestamp().Logger()
}

// setup загружает конфигурацию и логгер; без токена дальше не идем
func setup(opts *options) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(opts.envFile)
	log := newLogger(opts.debug || (cfg != nil && cfg.Debug))
	if err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			log.Error().Msg("❌ TELEGRAM_BOT_TOKEN is required")
		} else {
			log.Error().Err(err).Msg("❌ invalid configuration")
		}
		return nil, log, err
	}
	return cfg, log, nil
}

func newBotAPI(cfg *config.Config, log zerolog.Logger) (*tgbotapi.BotAPI, error) {
	// Bot API держит соединение на время long polling и загрузки файлов
	client, err := netx.NewHTTPClient(cfg.Proxy, 0)
	if err != nil {
		return nil, err
	}

	endpoint := tgbotapi.APIEndpoint
	if cfg.APIEndpoint != "" {
		endpoint = cfg.APIEndpoint
	}

	bot.UseLogger(log)
	api, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = cfg.Debug
	return api, nil
}

func run(ctx context.Context, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := newBotAPI(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("❌ telegram init failed")
		return err
	}
	log.Info().Str("username", api.Self.UserName).Msg("🤖 authorized")

	ytClient, err := netx.NewHTTPClient(cfg.Proxy, cfg.MetadataTimeout)
	if err != nil {
		log.Error().Err(err).Msg("❌ youtube client init failed")
		return fmt.Errorf("youtube client: %w", err)
	}

	extractor := downloader.NewYtDlp(downloader.YtDlpOptions{
		Executable: cfg.YtDlpPath,
		Proxy:      cfg.Proxy.YtDlpProxy(),
		Log:        log,
	})

	b := bot.New(bot.Deps{
		API:             api,
		Sessions:        session.NewStore(),
		Downloader:      downloader.New(extractor, cfg.DownloadDir, cfg.DownloadTimeout, log),
		Inspector:       downloader.NewInspector(ytClient),
		Delivery:        delivery.New(api, delivery.Gate{Limit: cfg.MaxUploadBytes}, log),
		MetadataTimeout: cfg.MetadataTimeout,
		Log:             log,
	})

	log.Info().
		Str("download_dir", cfg.DownloadDir).
		Float64("max_upload_mb", delivery.SizeMB(cfg.MaxUploadBytes)).
		Dur("download_timeout", cfg.DownloadTimeout).
		Bool("proxy", cfg.Proxy.Enabled()).
		Msg("⚙️ configuration loaded")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	b.Run(ctx, updates)
	log.Info().Msg("👋 bot stopped")
	return nil
}
