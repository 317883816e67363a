package smtp

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/core/validator"
)

// ErrMissingCredentials is returned by SendEmail when the sender address or
// password is empty. No connection is opened in that case.
var ErrMissingCredentials = errors.New("smtp: sender email and password are required")

// Client implements email.EmailSender over SMTP.
// Safe for concurrent use; each message uses its own connection.
type Client struct {
	config Config
	dial   Dialer
	now    func() time.Time
}

// Option configures the Client.
type Option func(*Client)

// WithDialer replaces the network dialer, mostly for tests.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dial = d
		}
	}
}

// New creates an SMTP-backed email sender. Host, port and TLS mode are checked
// here; credentials are checked per message so a process can start without
// them and report the problem when mail is actually sent.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	switch cfg.TLSMode {
	case TLSModeTLS, TLSModeSTARTTLS, TLSModePlain:
	default:
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", email.ErrInvalidConfig)
	}
	if cfg.SenderEmail != "" && !validator.IsEmail(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if cfg.ReplyTo != "" && !validator.IsEmail(cfg.ReplyTo) {
		return nil, fmt.Errorf("%w: ReplyTo must be a valid email address", email.ErrInvalidConfig)
	}

	c := &Client{config: cfg, dial: DefaultDialer, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNewClient creates an SMTP client that panics on invalid config.
func MustNewClient(cfg Config, opts ...Option) *Client {
	client, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail delivers one message in a single SMTP session. It is attempted once.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if c.config.SenderEmail == "" || c.config.Password == "" {
		return errors.Join(email.ErrInvalidConfig, ErrMissingCredentials)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	message, err := buildMessage(
		c.config.SenderEmail,
		c.config.ReplyTo,
		fmt.Sprintf("<%s@%s>", uuid.New(), c.config.Host),
		c.now(),
		params,
	)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}

	conn, err := c.dial(ctx, c.config)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	defer func() { _ = conn.Close() }()

	if err := c.transact(conn, params.SendTo, message); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	return nil
}

func (c *Client) transact(conn Conn, to string, message []byte) error {
	auth := smtp.PlainAuth("", c.config.username(), c.config.Password, c.config.Host)
	if err := conn.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := conn.Mail(c.config.SenderEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Some servers drop the connection right after DATA; the message is already accepted.
	_ = conn.Quit()
	return nil
}
