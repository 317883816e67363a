package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/contactform/core/validator"
)

// EmailSender delivers a single message. Implementations must honour ctx cancellation
// and must not retry on their own.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// Attachment is a file sent alongside the message body.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SendEmailParams describes one outgoing message.
type SendEmailParams struct {
	SendTo   string
	Subject  string
	BodyHTML string
	// BodyText is the plain-text alternative. Providers that support it send both parts.
	BodyText    string
	Tag         string
	Attachments []Attachment
}

// Validate checks that the message can be handed to a provider.
// All problems are reported together, joined with ErrInvalidParams.
func (p SendEmailParams) Validate() error {
	errs := validator.Apply(
		validator.Required("send_to", p.SendTo),
		validator.ValidEmail("send_to", p.SendTo),
		validator.Required("subject", p.Subject),
		validator.MaxLenString("subject", p.Subject, 998),
	)

	if strings.TrimSpace(p.BodyHTML) == "" && strings.TrimSpace(p.BodyText) == "" {
		errs = errors.Join(errs, fmt.Errorf("body: html or text body is required"))
	}
	if strings.ContainsAny(p.Subject, "\r\n") {
		errs = errors.Join(errs, fmt.Errorf("subject: must be a single line"))
	}

	for i, a := range p.Attachments {
		if strings.TrimSpace(a.Filename) == "" {
			errs = errors.Join(errs, fmt.Errorf("attachments.%d.filename: is required", i))
		}
		if strings.ContainsAny(a.Filename, "\r\n\"") {
			errs = errors.Join(errs, fmt.Errorf("attachments.%d.filename: contains invalid characters", i))
		}
	}

	if errs != nil {
		return errors.Join(ErrInvalidParams, errs)
	}
	return nil
}
