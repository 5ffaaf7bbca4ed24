package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends replies through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

// NewResendSender builds a sender for the given API key. An empty key yields
// a Noop so callers never branch on configuration.
func NewResendSender(apiKey, from string, logger *slog.Logger) Sender {
	if apiKey == "" {
		logger.Warn("resend client not configured, replies will not be sent")
		return Noop{}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	attachments := make([]*resend.Attachment, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		attachments = append(attachments, &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.MIME,
		})
	}

	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:        s.from,
		To:          msg.To,
		Subject:     msg.Subject,
		Text:        msg.Body,
		Attachments: attachments,
	})
	if err != nil {
		return fmt.Errorf("sending reply to %v: %w", msg.To, err)
	}

	s.logger.Info("reply sent",
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("attachments", len(attachments)),
	)
	return nil
}
