// Package postmark implements email.EmailSender with the Postmark
// transactional API (github.com/mrz1836/postmark).
//
//	client, err := postmark.New(postmark.Config{
//		PostmarkServerToken: token,
//		SenderEmail:         "forms@example.edu",
//	})
//	err = client.SendEmail(ctx, params)
//
// Text and HTML bodies are both sent, and attachments are base64-encoded as
// the API expects. API failures and non-zero Postmark error codes are
// returned joined with email.ErrFailedToSendEmail. A missing server token or
// sender address fails with ErrMissingCredentials without an API call.
package postmark
