package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

const DefaultTimeout = 15 * time.Second

type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
	UseSSL   bool
	Timeout  time.Duration
}

// SMTPSender dials a new session for every message. A mail.Client holds the
// connection of its current session, so it is never shared between sends.
type SMTPSender struct {
	host    string
	options []mail.Option
}

func NewSMTPSender(o Options) (*SMTPSender, error) {
	if o.Host == "" {
		return nil, fmt.Errorf("mail server host is empty")
	}

	timeout := o.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	clientOptions := []mail.Option{
		mail.WithPort(o.Port),
		mail.WithTimeout(timeout),
		mail.WithTLSPolicy(mail.NoTLS),
	}

	if o.UseTLS {
		clientOptions = append(clientOptions, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	if o.UseSSL {
		clientOptions = append(clientOptions, mail.WithSSL())
	}

	if o.Username != "" {
		clientOptions = append(clientOptions,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(o.Username),
			mail.WithPassword(o.Password),
		)
	}

	sender := &SMTPSender{
		host:    o.Host,
		options: clientOptions,
	}

	// surface option errors at startup instead of on the first booking
	if _, err := sender.newClient(); err != nil {
		return nil, err
	}

	return sender, nil
}

func (s *SMTPSender) newClient() (*mail.Client, error) {
	return mail.NewClient(s.host, s.options...)
}

func (s *SMTPSender) Send(ctx context.Context, message Message) error {
	msg, err := buildMsg(message)
	if err != nil {
		return err
	}

	client, err := s.newClient()
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, msg)
}

func buildMsg(message Message) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(message.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", message.From, err)
	}

	if err := msg.To(message.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, message.Body)

	return msg, nil
}
