// Package email defines the provider-neutral contract for sending mail.
//
// Providers implement EmailSender; this repository ships SMTP
// (integration/email/smtp), Postmark (integration/email/postmark) and the
// DevSender below, which writes messages to disk for local development.
//
//	params := email.SendEmailParams{
//		SendTo:   "office@example.edu",
//		Subject:  "New submission",
//		BodyHTML: html,
//		BodyText: text,
//		Attachments: []email.Attachment{{
//			Filename:    "submissions.csv",
//			ContentType: "text/csv",
//			Content:     data,
//		}},
//	}
//	if err := sender.SendEmail(ctx, params); err != nil {
//		// errors.Is(err, email.ErrInvalidParams) or email.ErrFailedToSendEmail
//	}
//
// Validate reports every invalid field at once, joined with ErrInvalidParams.
// HTML bodies are usually rendered from templ components with
// templates.Render.
package email
