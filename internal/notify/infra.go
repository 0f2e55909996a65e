package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramInfra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramInfra builds the alert channel from TELEGRAM_ALERT_TOKEN and
// TELEGRAM_ALERT_CHAT_ID. Callers leave notification off when env is missing.
func NewTelegramInfra() (*TelegramInfra, error) {
	token := os.Getenv("TELEGRAM_ALERT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_ALERT_TOKEN not set")
	}

	chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_ALERT_CHAT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALERT_CHAT_ID: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	return &TelegramInfra{bot: bot, chatID: chatID}, nil
}

func (i *TelegramInfra) Notify(ctx context.Context, failure error, details string) error {
	text := fmt.Sprintf(
		"Transcription failed\n\nError: %v\n\nDetails: %s",
		failure,
		details,
	)

	msg := tgbotapi.NewMessage(i.chatID, text)

	if _, sendErr := i.bot.Send(msg); sendErr != nil {
		log.Printf("[notify] send fail: %v", sendErr)
		return sendErr
	}

	return nil
}
