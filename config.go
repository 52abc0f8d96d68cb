package helpdesk

import "os"

const (
	// DefaultCookieName is the session cookie written to the client
	DefaultCookieName = "auth-token"
	// DefaultTokenExpiration is the token validity window in hours
	DefaultTokenExpiration = 24 * 7
	// EnvSigningKey is the environment key holding the signing secret
	EnvSigningKey = "AUTH_SECRET"
	// EnvEnvironment is the environment key naming the deploy environment
	EnvEnvironment = "APP_ENV"
	// EnvProduction is the environment value that enables secure cookies
	EnvProduction = "production"
)

// AuthConfig is an immutable snapshot of the auth options, built once at
// startup and injected wherever a Config is needed. Tests construct their
// own with distinct secrets.
type AuthConfig struct {
	signingKey      string
	tokenExpiration int
	issuer          string
	cookieName      string
	cookieSecure    bool
}

var _ Config = (*AuthConfig)(nil)

type ConfigOption func(*AuthConfig)

// NewConfig creates an AuthConfig with the given signing key and defaults
// for everything else.
func NewConfig(signingKey string, opts ...ConfigOption) *AuthConfig {
	cfg := &AuthConfig{
		signingKey:      signingKey,
		tokenExpiration: DefaultTokenExpiration,
		cookieName:      DefaultCookieName,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return cfg
}

// NewConfigFromEnv reads the signing secret from AUTH_SECRET and enables
// secure cookies when APP_ENV is production.
func NewConfigFromEnv(opts ...ConfigOption) *AuthConfig {
	base := []ConfigOption{
		WithCookieSecure(os.Getenv(EnvEnvironment) == EnvProduction),
	}
	return NewConfig(os.Getenv(EnvSigningKey), append(base, opts...)...)
}

func WithTokenExpiration(hours int) ConfigOption {
	return func(c *AuthConfig) {
		c.tokenExpiration = hours
	}
}

func WithIssuer(issuer string) ConfigOption {
	return func(c *AuthConfig) {
		c.issuer = issuer
	}
}

func WithCookieName(name string) ConfigOption {
	return func(c *AuthConfig) {
		if name != "" {
			c.cookieName = name
		}
	}
}

func WithCookieSecure(secure bool) ConfigOption {
	return func(c *AuthConfig) {
		c.cookieSecure = secure
	}
}

func (c *AuthConfig) GetSigningKey() string   { return c.signingKey }
func (c *AuthConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c *AuthConfig) GetIssuer() string       { return c.issuer }
func (c *AuthConfig) GetCookieName() string   { return c.cookieName }
func (c *AuthConfig) GetCookieSecure() bool   { return c.cookieSecure }
