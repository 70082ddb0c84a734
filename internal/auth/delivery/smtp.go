package delivery

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"text/template"
	"time"
)

// DefaultEmailTemplate is the body used when SMTPDeliverer.Template is nil.
const DefaultEmailTemplate = `Hi {{.Email}},

This is your login code for {{.SiteName}}:

{{.Code}}

The code is valid for {{printf "%.f" .ValidFor.Minutes}} minutes and can be used once.

If you did not request a code, you can ignore this email.
`

var defaultTemplate = template.Must(template.New("email").Parse(DefaultEmailTemplate))

// EmailParams is passed as data when executing the email template.
type EmailParams struct {
	Email    string
	SiteName string
	Code     string
	ValidFor time.Duration
}

// ErrBadRecipient is returned for addresses that cannot be put in a header.
var ErrBadRecipient = errors.New("delivery: invalid recipient")

// DefaultSMTPTimeout bounds a send when the caller's context has no deadline.
const DefaultSMTPTimeout = 30 * time.Second

type sendMailFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPDeliverer emails codes through an SMTP relay.
type SMTPDeliverer struct {
	Addr     string
	Username string
	Password string
	From     string
	SiteName string
	Template *template.Template
	Timeout  time.Duration

	now      func() time.Time
	sendMail sendMailFunc
}

// NewSMTPDeliverer creates a deliverer for the relay at addr ("host:port").
// Username may be empty for relays that do not authenticate.
func NewSMTPDeliverer(addr, username, password, from, siteName string) *SMTPDeliverer {
	return &SMTPDeliverer{
		Addr:     addr,
		Username: username,
		Password: password,
		From:     from,
		SiteName: siteName,
		Template: defaultTemplate,
		Timeout:  DefaultSMTPTimeout,
		now:      time.Now,
		sendMail: sendMail,
	}
}

func (d *SMTPDeliverer) DeliverCode(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := d.render(msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if d.Username != "" {
		host, _, err := net.SplitHostPort(d.Addr)
		if err != nil {
			return fmt.Errorf("smtp addr: %w", err)
		}
		auth = smtp.PlainAuth("", d.Username, d.Password, host)
	}

	if _, ok := ctx.Deadline(); !ok && d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	if err := d.sendMail(ctx, d.Addr, auth, d.From, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// sendMail is smtp.SendMail with the dial and the whole conversation bound
// to ctx.
func sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) (err error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Cancellation and deadline expiry unblock any pending read or write.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Unix(1, 0)) })
	defer stop()
	defer func() {
		if err != nil && ctx.Err() != nil {
			err = fmt.Errorf("%w: %v", ctx.Err(), err)
		}
	}()

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("smtp: server doesn't support AUTH")
		}
		if err := c.Auth(a); err != nil {
			return err
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func (d *SMTPDeliverer) render(msg Message) ([]byte, error) {
	if msg.To == "" || strings.ContainsAny(msg.To, "\r\n") {
		return nil, ErrBadRecipient
	}

	tmpl := d.Template
	if tmpl == nil {
		tmpl = defaultTemplate
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, EmailParams{
		Email:    msg.To,
		SiteName: d.SiteName,
		Code:     msg.Code,
		ValidFor: msg.ExpiresAt.Sub(d.now()).Round(time.Minute),
	}); err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", d.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: Your %s login code\r\n", d.SiteName)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(body.String(), "\n", "\r\n"))
	return buf.Bytes(), nil
}
