package telegram

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"golang.org/x/time/rate"
)

// MaxSendDurr configures the limiter to send at most 1 message per MaxSendDurr
var MaxSendDurr = 500 * time.Millisecond

// https://github.com/yagop/node-telegram-bot-api/issues/165
const maxMessageSize = 4096

// maxParts caps how many messages a single Send may turn into
const maxParts = 9

type Bot struct {
	ctx       context.Context
	channelID int64
	api       *tgbotapi.BotAPI
	limiter   *rate.Limiter
}

func New(ctx context.Context, token string, channelID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		ctx:       ctx,
		channelID: channelID,
		api:       api,
		limiter:   rate.NewLimiter(rate.Every(MaxSendDurr), 1),
	}, nil
}

// Send sends a message to the channel, optionally without a notification.
// Long messages are split, every part is rate limited separately.
func (t *Bot) Send(txt string, disableNotification bool) error {
	for _, part := range split(txt, maxMessageSize) {
		if err := t.limiter.Wait(t.ctx); err != nil {
			return err
		}

		msg := tgbotapi.NewMessage(t.channelID, part)
		msg.DisableNotification = disableNotification
		if _, err := t.api.Send(msg); err != nil {
			return err
		}
	}

	return nil
}

// split cuts txt into parts of at most size bytes, numbering them when there is more than one.
// Anything beyond maxParts is dropped.
func split(txt string, size int) []string {
	if len(txt) <= size {
		return []string{txt}
	}

	// room for " (n)"
	const postfixLength = 4
	chunk := size - postfixLength

	var parts []string
	for i := 1; len(txt) > 0 && i <= maxParts; i++ {
		end := chunk
		if len(txt) < end {
			end = len(txt)
		}

		parts = append(parts, txt[:end]+" ("+strconv.Itoa(i)+")")
		txt = txt[end:]
	}

	return parts
}
