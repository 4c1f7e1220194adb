package notifier

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jobdigest/internal/model"
)

// Ensure TelegramNotifier implements model.Notifier.
var _ model.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier sends the digest as a single HTML-formatted Telegram
// message instead of an email.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegramNotifier builds a notifier around a bot token and chat ID.
func NewTelegramNotifier(token string, chatID int64, logger *slog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// Notify sends one message listing all new postings grouped in fetch order.
// An empty batch is a no-op.
func (t *TelegramNotifier) Notify(postings []model.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%d new job postings</b>\n", len(postings))
	for _, p := range postings {
		fmt.Fprintf(&b, "\n%s: <a href=\"%s\">%s</a> — %s",
			escapeHTML(p.Company), p.URL, escapeHTML(p.Title), escapeHTML(p.Location))
	}

	msg := tgbotapi.NewMessage(t.chatID, b.String())
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("telegram send failed", "postings", len(postings), "error", err)
		return fmt.Errorf("telegram notify: %w", err)
	}

	t.logger.Info("telegram digest sent", "postings", len(postings))
	return nil
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
