package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"sectorwatch/internal/config"
	"sectorwatch/internal/telemetry"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_mailer_send = "mailer.send"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrSend is wrapped by every failure to deliver the message.
var ErrSend = errors.New("failed to send email")

var tracer = telemetry.Tracer("sectorwatch.mailer")

type Options struct {
	Host    string
	Port    int
	Subject string

	// AllowUnauthenticated permits resending without AUTH when the server
	// does not offer it. The message then travels unauthenticated and possibly
	// unencrypted, so this is only meant for local relays.
	AllowUnauthenticated bool
}

// SendFunc delivers a composed message, it exists so tests can capture messages.
type SendFunc func(addr string, auth smtp.Auth, mail *email.Email) error

func sendSmtp(addr string, auth smtp.Auth, mail *email.Email) error {
	return mail.Send(addr, auth)
}

type Mailer struct {
	options Options
	creds   config.Credentials
	send    SendFunc
	tel     telemetry.API
}

func NewMailer(options Options, creds config.Credentials, tel telemetry.API) Mailer {
	return Mailer{
		options: options,
		creds:   creds,
		send:    sendSmtp,
		tel:     telemetry.NewScopedAPI("mailer", tel),
	}
}

// WithSendFunc returns a copy of the mailer that delivers through send.
func (m Mailer) WithSendFunc(send SendFunc) Mailer {
	m.send = send
	return m
}

func (m Mailer) addr() string {
	return fmt.Sprintf("%s:%d", m.options.Host, m.options.Port)
}

// Compose builds the message carrying the file at path as its only attachment.
func (m Mailer) Compose(path string) (*email.Email, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	name := filepath.Base(path)

	mail := email.NewEmail()
	mail.From = m.creds.EmailAddress
	mail.To = []string{m.creds.RecipientEmail}
	mail.Subject = m.options.Subject
	mail.Text = []byte(fmt.Sprintf("Sector performance for today is attached as %s.\n", name))

	_, err = mail.Attach(bytes.NewReader(contents), name, xlsxContentType)
	if err != nil {
		return nil, fmt.Errorf("attach %s: %w", name, err)
	}
	return mail, nil
}

// Send emails the file at path to the recipient, the file is left untouched.
func (m Mailer) Send(ctx context.Context, path string) error {
	_, span := tracer.Start(ctx, "Send")
	defer span.End()
	span.SetAttributes(attribute.String("attachment", filepath.Base(path)))

	mail, err := m.Compose(path)
	if err != nil {
		m.tel.ReportBroken(report_mailer_send, err, path)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compose email")
		return fmt.Errorf("%w: %w", ErrSend, err)
	}

	auth := smtp.PlainAuth("", m.creds.EmailAddress, m.creds.EmailPassword, m.options.Host)
	err = m.send(m.addr(), auth, mail)
	if err != nil && m.options.AllowUnauthenticated && strings.Contains(err.Error(), "server doesn't support AUTH") {
		m.tel.ReportWarning(report_mailer_send, "smtp server does not support AUTH, sending without it", m.addr())
		err = m.send(m.addr(), nil, mail)
	}
	if err != nil {
		m.tel.ReportBroken(report_mailer_send, err, m.addr())
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return fmt.Errorf("%w: %w", ErrSend, err)
	}

	return nil
}
