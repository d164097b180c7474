package conceptsearch

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/arodidev/openmrs-form-builder/pkg/concepts"
)

// GuardFunc can reject a request before the search runs, e.g. for auth.
type GuardFunc func(r *http.Request) error

// Options configures the handler and routing helpers.
type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc
	Searcher     concepts.Searcher
	Logger       *zap.Logger
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/concepts",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 25,
		MaxLimit:     100,
	}
}

// NewOptions applies overrides on top of the defaults and clamps the result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 25
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/concepts"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// WithRoutePath overrides the route path used by routing helpers.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.RoutePath = path
		}
	}
}

// WithSearchParam overrides the query parameter name.
func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.SearchParam = name
		}
	}
}

// WithLimitParam overrides the limit parameter name.
func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.LimitParam = name
		}
	}
}

// WithDefaultLimit sets the limit applied when the request omits one.
func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.DefaultLimit = limit
		}
	}
}

// WithMaxLimit caps the limit a request may ask for.
func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.MaxLimit = limit
		}
	}
}

// WithGuard installs a request guard.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.Guard = guard
		}
	}
}

// WithSearcher installs the concept backend.
func WithSearcher(searcher concepts.Searcher) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.Searcher = searcher
		}
	}
}

// WithLogger installs a structured logger for request failures.
func WithLogger(log *zap.Logger) OptionFn {
	return func(o *Options) {
		if o != nil && log != nil {
			o.Logger = log
		}
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
