package mailer

import (
	"context"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"produtos-alert/internal/logging"
)

type smtpSender struct {
	dialer *gomail.Dialer
	logger *zap.Logger
}

func NewSMTP(host string, port int, user, password string, logger *zap.Logger) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(host, port, user, password),
		logger: logging.OrNop(logger),
	}
}

// Send dials the relay for every message. gomail has no context support, so a
// cancelled ctx abandons the in-flight dial rather than interrupting it.
func (s *smtpSender) Send(ctx context.Context, msg Message) (string, error) {
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(buildMessage(msg))
	}()

	select {
	case <-ctx.Done():
		s.logger.Error("mailer: smtp send", zap.String("to", msg.To), zap.Error(ctx.Err()))
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			s.logger.Error("mailer: smtp send", zap.String("to", msg.To), zap.Error(err))
			return "", err
		}
	}
	s.logger.Info("mailer: smtp sent", zap.String("to", msg.To))
	return "", nil
}

func buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return m
}
