package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/core/email/templates"
	"github.com/dmitrymomot/contactform/core/email/templates/components"
	"github.com/dmitrymomot/contactform/core/validator"
)

const (
	SubjectPrefix      = "University Contact Information Form: "
	AttachmentFilename = "submissions.csv"
	AttachmentType     = "text/csv"
)

var (
	// ErrNotConfigured means sender, credential or recipient is missing.
	// No transport is attempted when it is returned.
	ErrNotConfigured = errors.New("intake: email notification is not configured")
	ErrNotify        = errors.New("intake: failed to send notification")
)

// Notifier emails a summary of each submission to a fixed recipient.
type Notifier struct {
	sender      email.EmailSender
	recipient   string
	attachStore bool
}

// NewNotifier creates a notifier. A nil sender or empty recipient is allowed;
// Notify then reports ErrNotConfigured.
func NewNotifier(sender email.EmailSender, recipient string, attachStore bool) *Notifier {
	return &Notifier{
		sender:      sender,
		recipient:   strings.TrimSpace(recipient),
		attachStore: attachStore,
	}
}

// Configured reports whether a recipient and a sender are set. Sender
// credentials are only known to the provider and are checked at send time.
func (n *Notifier) Configured() bool {
	return n.sender != nil && validator.IsEmail(n.recipient)
}

// Notify sends one message. storeContent, when non-empty and attachments are
// enabled, is attached as a CSV export of the full store.
func (n *Notifier) Notify(ctx context.Context, faculty string, rows []ContactRow, storeContent []byte) error {
	if !n.Configured() {
		return ErrNotConfigured
	}

	params, err := n.message(ctx, faculty, rows, storeContent)
	if err != nil {
		return errors.Join(ErrNotify, err)
	}

	if err := n.sender.SendEmail(ctx, params); err != nil {
		if errors.Is(err, email.ErrInvalidConfig) {
			return errors.Join(ErrNotConfigured, err)
		}
		return errors.Join(ErrNotify, err)
	}
	return nil
}

func (n *Notifier) message(ctx context.Context, faculty string, rows []ContactRow, storeContent []byte) (email.SendEmailParams, error) {
	faculty = strings.TrimSpace(faculty)
	subject := SubjectPrefix + faculty

	html, err := renderSummaryHTML(ctx, subject, faculty, rows)
	if err != nil {
		return email.SendEmailParams{}, fmt.Errorf("render html body: %w", err)
	}

	params := email.SendEmailParams{
		SendTo:   n.recipient,
		Subject:  subject,
		BodyHTML: html,
		BodyText: summaryText(faculty, rows),
		Tag:      "intake-submission",
	}
	if n.attachStore && len(storeContent) > 0 {
		params.Attachments = []email.Attachment{{
			Filename:    AttachmentFilename,
			ContentType: AttachmentType,
			Content:     storeContent,
		}}
	}
	return params, nil
}

func renderSummaryHTML(ctx context.Context, title, faculty string, rows []ContactRow) (string, error) {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, r.Columns())
	}

	body := components.Join(
		components.Header("University Contact Information", "Submitted by "+faculty),
		components.Text(fmt.Sprintf("Faculty Name: %s", faculty)),
		components.Table(StoreHeader[1:], table),
		components.Footer("Sent automatically by the university contact intake form."),
	)
	return templates.Render(templ.WithChildren(ctx, body), components.Layout(title))
}

func summaryText(faculty string, rows []ContactRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "University contact information submitted by %s.\n", faculty)
	for i, r := range rows {
		cols := r.Columns()
		fmt.Fprintf(&b, "\nUniversity %d\n", i+1)
		for j, name := range StoreHeader[1:] {
			fmt.Fprintf(&b, "  %s: %s\n", name, cols[j])
		}
	}
	return b.String()
}
