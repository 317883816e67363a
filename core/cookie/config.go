package cookie

import "strings"

// Config provides environment-based configuration for the cookie manager.
type Config struct {
	Secrets string `env:"SESSION_COOKIE_SECRET" envDefault:""`
	Path    string `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	Domain  string `env:"SESSION_COOKIE_DOMAIN" envDefault:""`
	Secure  bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// parseSecrets splits comma-separated secrets for key rotation support.
// Empty entries are dropped.
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	secrets := make([]string, 0, 2)
	for s := range strings.SplitSeq(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// NewFromConfig creates a Manager from configuration. Options override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	configOpts := make([]Option, 0, 3+len(opts))
	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	configOpts = append(configOpts, WithSecure(cfg.Secure))
	configOpts = append(configOpts, opts...)

	return New(cfg.parseSecrets(), configOpts...)
}
