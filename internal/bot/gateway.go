package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Gateway is the outbound chat surface the controller talks to. The real
// implementation wraps the Telegram Bot API; tests use a fake.
type Gateway interface {
	SendText(chatID int64, text string) error
	SendImage(chatID int64, name string, data []byte) error
	// CreatePoll opens a non-anonymous single-answer poll and returns its
	// opaque poll id and the message id carrying it.
	CreatePoll(chatID int64, question string, options []string) (pollID string, messageID int, err error)
	StopPoll(chatID int64, messageID int) error
}

type TelegramGateway struct {
	api *tgbotapi.BotAPI
}

func NewTelegramGateway(api *tgbotapi.BotAPI) *TelegramGateway {
	return &TelegramGateway{api: api}
}

func (g *TelegramGateway) SendText(chatID int64, text string) error {
	_, err := g.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (g *TelegramGateway) SendImage(chatID int64, name string, data []byte) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	_, err := g.api.Send(photo)
	return err
}

func (g *TelegramGateway) CreatePoll(chatID int64, question string, options []string) (string, int, error) {
	cfg := tgbotapi.NewPoll(chatID, question, options...)
	cfg.IsAnonymous = false
	cfg.AllowsMultipleAnswers = false

	sent, err := g.api.Send(cfg)
	if err != nil {
		return "", 0, fmt.Errorf("failed to send poll: %w", err)
	}
	if sent.Poll == nil {
		return "", 0, fmt.Errorf("poll message %d carries no poll", sent.MessageID)
	}
	return sent.Poll.ID, sent.MessageID, nil
}

func (g *TelegramGateway) StopPoll(chatID int64, messageID int) error {
	_, err := g.api.StopPoll(tgbotapi.NewStopPoll(chatID, messageID))
	return err
}
