package reporter

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/config"
)

// TelegramReporter sends run summaries to the operator. It is advisory
// only: every method is a no-op on a nil receiver, so callers without a
// configured bot just pass the nil reporter around.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	if t == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendRunSummary(source string, collected int, outputPath string, elapsed time.Duration) error {
	text := fmt.Sprintf(
		"✅ <b>%s run finished</b>\n"+
			"📦 %d new records\n"+
			"📁 %s\n"+
			"⏱ %s",
		source,
		collected,
		outputPath,
		elapsed.Round(time.Second),
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(source string, runErr error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>%s run error</b>:\n%v", source, runErr))
}
