package postmark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/core/validator"
)

// ErrMissingCredentials is returned by SendEmail when the server token or
// sender address is empty. No API call is made in that case.
var ErrMissingCredentials = errors.New("postmark: server token and sender email are required")

// Client implements email.EmailSender using Postmark's transactional API.
type Client struct {
	client *postmark.Client
	config Config
}

// Option configures the underlying Postmark API client.
type Option func(*postmark.Client)

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(url string) Option {
	return func(c *postmark.Client) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *postmark.Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// New creates a Postmark-backed email sender. Address formats are checked
// here; the token is checked per message so a process can start without it.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.SenderEmail != "" && !validator.IsEmail(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if cfg.ReplyTo != "" && !validator.IsEmail(cfg.ReplyTo) {
		return nil, fmt.Errorf("%w: ReplyTo must be a valid email address", email.ErrInvalidConfig)
	}

	pc := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	for _, opt := range opts {
		opt(pc)
	}

	return &Client{client: pc, config: cfg}, nil
}

// MustNewClient creates a Postmark client that panics on invalid config.
func MustNewClient(cfg Config, opts ...Option) *Client {
	client, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements EmailSender. Tracking is off: these are internal
// notifications, not marketing mail.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if c.config.PostmarkServerToken == "" || c.config.SenderEmail == "" {
		return errors.Join(email.ErrInvalidConfig, ErrMissingCredentials)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	msg := postmark.Email{
		From:     c.config.SenderEmail,
		ReplyTo:  c.config.ReplyTo,
		To:       params.SendTo,
		Subject:  params.Subject,
		Tag:      params.Tag,
		HTMLBody: params.BodyHTML,
		TextBody: params.BodyText,
	}
	for _, a := range params.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		msg.Attachments = append(msg.Attachments, postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: contentType,
		})
	}

	resp, err := c.client.SendEmail(ctx, msg)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			email.ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
