package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender logs emails instead of delivering them. Used when
// MAIL_SEND_ENABLED=false so local development never hits Mailgun.
type LogSender struct {
	Logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{Logger: logger}
}

func (l *LogSender) Send(_ context.Context, to, subject, _, _ string) error {
	l.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail sending disabled, dropping email")
	return nil
}

var _ Sender = (*LogSender)(nil)
