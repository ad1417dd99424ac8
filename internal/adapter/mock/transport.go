package mock

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Transport intercepts outbound requests to the users API and serves them
// in-process, so that development and tests run against the fixture data
// without a live server. Requests outside the API prefix fall through to
// the base transport.
type Transport struct {
	handler http.Handler
	prefix  string
	base    http.RoundTripper

	mutex  sync.Mutex
	faults []error
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.HasPrefix(req.URL.Path, t.prefix) {
		base := t.base
		if base == nil {
			base = http.DefaultTransport
		}

		return base.RoundTrip(req)
	}

	if err := t.nextFault(); err != nil {
		return nil, err
	}

	intercepted := req.Clone(req.Context())
	intercepted.URL.Path = strings.TrimPrefix(req.URL.Path, t.prefix)
	intercepted.RequestURI = ""

	w := &responseWriter{
		header: http.Header{},
		code:   http.StatusOK,
	}

	t.handler.ServeHTTP(w, intercepted)

	return &http.Response{
		StatusCode:    w.code,
		Status:        http.StatusText(w.code),
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		Header:        w.header,
		Body:          io.NopCloser(bytes.NewReader(w.body.Bytes())),
		ContentLength: int64(w.body.Len()),
		Request:       req,
	}, nil
}

// FailNext queues transport-level errors returned by the next intercepted
// requests, simulating network failures.
func (t *Transport) FailNext(errs ...error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.faults = append(t.faults, errs...)
}

func (t *Transport) nextFault() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if len(t.faults) == 0 {
		return nil
	}

	err := t.faults[0]
	t.faults = t.faults[1:]

	return err
}

type responseWriter struct {
	header http.Header
	body   bytes.Buffer
	code   int
	wrote  bool
}

// Header implements http.ResponseWriter.
func (w *responseWriter) Header() http.Header {
	return w.header
}

// Write implements http.ResponseWriter.
func (w *responseWriter) Write(data []byte) (int, error) {
	w.wrote = true
	return w.body.Write(data)
}

// WriteHeader implements http.ResponseWriter.
func (w *responseWriter) WriteHeader(code int) {
	if w.wrote {
		return
	}

	w.code = code
	w.wrote = true
}

type Options struct {
	Prefix string
	Base   http.RoundTripper
}

type OptionFunc func(opts *Options)

func WithPrefix(prefix string) OptionFunc {
	return func(opts *Options) {
		opts.Prefix = prefix
	}
}

func WithBase(base http.RoundTripper) OptionFunc {
	return func(opts *Options) {
		opts.Base = base
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Prefix: "/api",
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func NewTransport(handler http.Handler, funcs ...OptionFunc) *Transport {
	opts := NewOptions(funcs...)
	return &Transport{
		handler: handler,
		prefix:  opts.Prefix,
		base:    opts.Base,
	}
}

var _ http.RoundTripper = &Transport{}
