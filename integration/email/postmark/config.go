package postmark

// Config holds Postmark configuration.
// The server token is the sending credential; the account token is optional.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	ReplyTo              string `env:"POSTMARK_REPLY_TO"`
}
