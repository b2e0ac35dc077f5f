package telegram

//go:generate go run go.uber.org/mock/mockgen -source=./telegram.go -destination=./mocks/telegram_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/shared/constant"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

var ErrNoChat = errors.New("telegram chat id is not configured")

// Notifier delivers short staff notifications.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type botNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	otel   otel.Otel
}

// logNotifier is used when no bot token is configured; messages only reach
// the application log.
type logNotifier struct{}

func New(cfg *config.Config, otel otel.Otel) Notifier {
	token := cfg.External.Telegram.Token
	if token == constant.Empty {
		log.Warn().Msg("No Telegram token configured, notifications will only be logged")

		return &logNotifier{}
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Telegram, notifications will only be logged")

		return &logNotifier{}
	}

	bot.Debug = cfg.Server.Env == constant.ServerEnvDevelopment

	log.Info().Str("bot", bot.Self.UserName).Msg("Telegram notifier initialized")

	return &botNotifier{
		bot:    bot,
		chatID: cfg.External.Telegram.ChatID,
		otel:   otel,
	}
}

func (n *botNotifier) Notify(ctx context.Context, text string) (err error) {
	_, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".telegram.Notify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if n.chatID == 0 {
		return ErrNoChat
	}

	msg := tgbotapi.NewMessage(n.chatID, text)

	if _, err = n.bot.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", n.chatID).Msg("failed to send telegram message")

		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}

func (n *logNotifier) Notify(_ context.Context, text string) error {
	log.Info().Str("notification", text).Msg("notification")

	return nil
}
