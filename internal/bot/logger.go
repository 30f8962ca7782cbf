package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// apiLogger перенаправляет внутренний лог tgbotapi в zerolog
type apiLogger struct {
	log zerolog.Logger
}

func (l apiLogger) Println(v ...interface{}) {
	l.log.Debug().Msg(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (l apiLogger) Printf(format string, v ...interface{}) {
	l.log.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// UseLogger подключает zerolog к tgbotapi
func UseLogger(log zerolog.Logger) {
	_ = tgbotapi.SetLogger(apiLogger{log: log.With().Str("component", "tgbotapi").Logger()})
}
