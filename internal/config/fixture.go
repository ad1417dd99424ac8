package config

import "time"

type Fixture struct {
	Seed    int64         `env:"SEED,expand" envDefault:"42"`
	Count   int           `env:"COUNT,expand" envDefault:"25"`
	Latency time.Duration `env:"LATENCY,expand" envDefault:"150ms"`
}
