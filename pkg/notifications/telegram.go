package notifications

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
)

const maxMessageLength = 4096

type Telegram struct {
	client   *req.Client
	apiToken string
	baseURL  string
}

func NewTelegram(
	apiToken string,
	cl *req.Client,
) *Telegram {
	return &Telegram{
		client:   cl,
		apiToken: apiToken,
		baseURL:  "https://api.telegram.org",
	}
}

// SendMessage posts text to a triage chat. Text beyond the Bot API limit is cut.
func (t *Telegram) SendMessage(
	ctx context.Context,
	chatID int64,
	text string,
) error {
	if runes := []rune(text); len(runes) > maxMessageLength {
		text = string(runes[:maxMessageLength])
	}

	resp, err := t.client.R().
		SetBody(map[string]interface{}{
			"chat_id": chatID,
			"text":    text,
		}).
		SetContext(ctx).
		Post(fmt.Sprintf("%s/bot%v/sendMessage", t.baseURL, t.apiToken))

	if err != nil {
		return errors.WithStack(err)
	}

	if resp.IsErrorState() {
		return errors.Newf("unexpected status code: %v and message %v", resp.StatusCode, resp.String())
	}

	return nil
}
