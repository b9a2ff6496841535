// Package mailer sends account e-mails.
package mailer

import (
	"context"
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"
)

type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	logger log.FieldLogger
}

func NewLogMailer(logger log.FieldLogger) *LogMailer {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.WithFields(log.Fields{
		"from":    msg.From,
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}

// VerificationMessage builds the e-mail that carries the verification link.
func VerificationMessage(from, to, clientURL, token string) Message {
	link := fmt.Sprintf("%s/verify-email?token=%s", clientURL, url.QueryEscape(token))
	return Message{
		From:    from,
		To:      to,
		Subject: "Verify your e-mail",
		Body:    fmt.Sprintf("Please verify your e-mail by following this link: %s", link),
	}
}
