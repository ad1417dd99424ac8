package setup

import (
	"context"
	netHTTP "net/http"
	"path/filepath"

	"github.com/bornholm/roster/internal/config"
	"github.com/bornholm/roster/internal/http"
	"github.com/bornholm/roster/internal/http/handler/metrics"
	"github.com/bornholm/roster/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	var apiHandler netHTTP.Handler = api
	if conf.HTTP.RateLimit.Enabled {
		rateLimit := conf.HTTP.RateLimit
		apiHandler = ratelimit.Middleware(
			rateLimit.TrustHeaders,
			rateLimit.MinInterval,
			rateLimit.MaxBurst,
			rateLimit.CacheSize,
			rateLimit.CacheTTL,
		)(apiHandler)
	}

	httpFs := afero.NewHttpFs(afero.NewOsFs())
	data := netHTTP.FileServer(httpFs.Dir(filepath.Dir(conf.DataSource.Static.Path)))

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithAllowedOrigins(conf.HTTP.CORS.AllowedOrigins...),
		http.WithMount("/api/", apiHandler),
		http.WithMount("/data/", data),
		http.WithMount("/metrics/", metrics.NewHandler()),
	}

	server := http.NewServer(options...)

	return server, nil
}
