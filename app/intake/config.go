package intake

import (
	"time"

	"github.com/dmitrymomot/contactform/core/cookie"
	"github.com/dmitrymomot/contactform/core/server"
	"github.com/dmitrymomot/contactform/core/session"
	"github.com/dmitrymomot/contactform/core/sessiontransport"
	"github.com/dmitrymomot/contactform/integration/database/redis"
	"github.com/dmitrymomot/contactform/integration/email/postmark"
	"github.com/dmitrymomot/contactform/integration/email/smtp"
	"github.com/dmitrymomot/contactform/integration/storage/s3"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
)

// Email providers.
const (
	EmailProviderSMTP     = "smtp"
	EmailProviderPostmark = "postmark"
	EmailProviderDev      = "dev"
)

// Session stores.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config is the full application configuration, loaded from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"contactform"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorePath         string `env:"STORE_PATH" envDefault:"submissions.csv"`
	NotifyRecipient   string `env:"NOTIFY_RECIPIENT"`
	NotifyAttachStore bool   `env:"NOTIFY_ATTACH_STORE" envDefault:"true"`
	EmailProvider     string `env:"EMAIL_PROVIDER" envDefault:"smtp"`
	DevEmailDir       string `env:"DEV_EMAIL_DIR" envDefault:"./dev_emails"`

	SessionStore           string        `env:"SESSION_STORE" envDefault:"memory"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
	MaxBodyBytes           int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	SecurityHeaders        bool          `env:"SECURITY_HEADERS" envDefault:"true"`
	// TrustProxyHeaders keys the submit limiter on X-Forwarded-For and friends.
	// Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	Branding  Branding
	Server    server.Config
	Cookie    cookie.Config
	Session   session.Config
	Transport sessiontransport.CookieConfig
	SMTP      smtp.Config
	Postmark  postmark.Config
	Redis     redis.Config
	Archive   s3.Config
	// RateLimit throttles POST /submit per client IP. Zero capacity disables it.
	RateLimit ratelimiter.Config
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}
