package config

import "time"

type Cache struct {
	StaleAfter     time.Duration `env:"STALE_AFTER,expand" envDefault:"30s"`
	EvictAfter     time.Duration `env:"EVICT_AFTER,expand" envDefault:"5m"`
	MaxRetries     int           `env:"MAX_RETRIES,expand" envDefault:"3"`
	BaseBackoff    time.Duration `env:"BASE_BACKOFF,expand" envDefault:"1s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,expand" envDefault:"30s"`
}
