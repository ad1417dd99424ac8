package config

import "time"

type HTTP struct {
	BaseURL   string    `env:"BASE_URL,expand" envDefault:"/"`
	Address   string    `env:"ADDRESS,expand" envDefault:":3003"`
	CORS      CORS      `envPrefix:"CORS_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
	Session   Session   `envPrefix:"SESSION_"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,expand" envDefault:"*" envSeparator:","`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED,expand" envDefault:"true"`
	TrustHeaders bool          `env:"TRUST_HEADERS,expand" envDefault:"false"`
	MinInterval  time.Duration `env:"MIN_INTERVAL,expand" envDefault:"10ms"`
	MaxBurst     int           `env:"MAX_BURST,expand" envDefault:"50"`
	CacheSize    int           `env:"CACHE_SIZE,expand" envDefault:"1024"`
	CacheTTL     time.Duration `env:"CACHE_TTL,expand" envDefault:"10m"`
}

type Session struct {
	Keys   []string      `env:"KEYS,expand" envSeparator:","`
	MaxAge time.Duration `env:"MAX_AGE,expand" envDefault:"8760h"`
}
