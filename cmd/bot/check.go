package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"youtubeBot/internal/downloader"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify yt-dlp and the Telegram token without starting the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(cmd, opts)
		},
	}
}

// check проверяет окружение: yt-dlp запускается, токен принимается Bot API
func check(cmd *cobra.Command, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	ytdlp := downloader.NewYtDlp(downloader.YtDlpOptions{Executable: cfg.YtDlpPath, Log: log})
	v, err := ytdlp.Version(ctx)
	if err != nil {
		log.Error().Err(err).Msg("❌ yt-dlp is not available")
		return err
	}
	log.Info().Str("version", v).Msg("✅ yt-dlp found")

	api, err := newBotAPI(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("❌ telegram token rejected")
		return err
	}
	log.Info().Str("username", api.Self.UserName).Msg("✅ telegram token accepted")

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
