package config

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

type DataSource struct {
	// Environment selects the backend: a mutable API in development, an
	// immutable static file in production. No other environment input
	// affects the selection.
	Environment string `env:"ENVIRONMENT,expand" envDefault:"development"`

	API    API    `envPrefix:"API_"`
	Static Static `envPrefix:"STATIC_"`
}

type API struct {
	// BaseURL of the users API targeted by the client
	BaseURL string `env:"BASE_URL,expand" envDefault:"http://localhost:3003"`

	// MockEnabled short-circuits API calls to the in-process fixture
	// backend instead of the network
	MockEnabled bool `env:"MOCK_ENABLED,expand" envDefault:"true"`
}

type Static struct {
	// Path of the pre-generated JSON collection
	Path string `env:"PATH,expand" envDefault:"data/users.json"`

	// WriteMode decides what happens to create calls against the static
	// backend: "reject" refuses them, "discard" acknowledges them without
	// persisting anything
	WriteMode string `env:"WRITE_MODE,expand" envDefault:"reject"`
}
