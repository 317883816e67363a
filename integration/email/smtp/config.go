package smtp

import "time"

// TLS modes.
const (
	TLSModeTLS      = "tls"      // implicit TLS, usually port 465
	TLSModeSTARTTLS = "starttls" // upgrade after connect, usually port 587
	TLSModePlain    = "plain"    // no encryption, local relays only
)

// Config holds SMTP relay configuration.
// Username defaults to SenderEmail, which is how most hosted relays authenticate.
type Config struct {
	Host        string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port        int           `env:"SMTP_PORT" envDefault:"465"`
	Username    string        `env:"SMTP_USERNAME"`
	Password    string        `env:"SENDER_PASSWORD"`
	TLSMode     string        `env:"SMTP_TLS_MODE" envDefault:"tls"`
	SenderEmail string        `env:"SENDER_EMAIL"`
	ReplyTo     string        `env:"SMTP_REPLY_TO"`
	Timeout     time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}

func (c Config) username() string {
	if c.Username != "" {
		return c.Username
	}
	return c.SenderEmail
}
