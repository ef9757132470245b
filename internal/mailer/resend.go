package mailer

import (
	"context"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"produtos-alert/internal/logging"
)

type resendSender struct {
	client *resend.Client
	logger *zap.Logger
}

func NewResend(apiKey string, logger *zap.Logger) Sender {
	return &resendSender{client: resend.NewClient(apiKey), logger: logging.OrNop(logger)}
}

func (s *resendSender) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		s.logger.Error("mailer: resend send", zap.String("to", msg.To), zap.Error(err))
		return "", err
	}
	s.logger.Info("mailer: resend sent", zap.String("to", msg.To), zap.String("id", sent.Id))
	return sent.Id, nil
}
