package mailer

import (
	"context"

	"github.com/aspiantech/ogle-api/pkg/helpers"
)

// EmailJob is the JSON payload put on the RabbitMQ queue. The worker in
// cmd/email_worker consumes it and delivers via Mailgun.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// QueueSender satisfies Sender by enqueueing jobs instead of sending
// inline, so resolver latency never includes the mail provider.
type QueueSender struct {
	Pub *helpers.RabbitPublisher
}

func NewQueueSender(pub *helpers.RabbitPublisher) *QueueSender {
	return &QueueSender{Pub: pub}
}

func (q *QueueSender) Send(ctx context.Context, to, subject, text, html string) error {
	return q.Pub.PublishJSON(ctx, EmailJob{To: to, Subject: subject, Text: text, HTML: html})
}

var _ Sender = (*QueueSender)(nil)
