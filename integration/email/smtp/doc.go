// Package smtp implements email.EmailSender over an SMTP relay.
//
// The default configuration targets implicit TLS on port 465 with
// username/password (PLAIN) authentication:
//
//	client, err := smtp.New(smtp.Config{
//		Host:        "smtp.gmail.com",
//		Port:        465,
//		TLSMode:     smtp.TLSModeTLS,
//		SenderEmail: "forms@example.edu",
//		Password:    appPassword,
//		Timeout:     30 * time.Second,
//	})
//
// Messages are multipart/mixed: a multipart/alternative body with text and
// HTML parts, followed by base64 attachments. Each SendEmail opens one
// connection and makes one attempt. When the sender address or password is
// missing it fails with ErrMissingCredentials before dialing.
//
// WithDialer swaps the network layer; tests use it to record connection
// attempts and capture the DATA payload.
package smtp
