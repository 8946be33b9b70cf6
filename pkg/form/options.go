package form

import (
	"time"

	"github.com/goliatone/go-modelform/pkg/schema"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

// DefaultFieldTimeout bounds each field's validator chain.
const DefaultFieldTimeout = 10 * time.Second

// DefaultMaxMemory is the multipart memory limit used when parsing uploads.
const DefaultMaxMemory = 32 << 20

type config struct {
	fields       []schema.Property
	logger       Logger
	fieldTimeout time.Duration
	registry     *widgets.Registry
	skipNested   bool
	maxMemory    int64
}

// Option customises form construction.
type Option func(*config)

// WithFields adds extra fields that are not schema properties, such as a
// captcha or a password confirmation. They are appended after the schema's
// own extra fields.
func WithFields(fields ...schema.Property) Option {
	return func(cfg *config) {
		cfg.fields = append(cfg.fields, fields...)
	}
}

// WithLogger routes scan diagnostics to logger.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithFieldTimeout bounds every field's validator chain. Non-positive values
// keep the default.
func WithFieldTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		if timeout > 0 {
			cfg.fieldTimeout = timeout
		}
	}
}

// WithWidgetRegistry selects widgets through reg.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithSkipNested logs and skips nested properties instead of failing.
func WithSkipNested() Option {
	return func(cfg *config) {
		cfg.skipNested = true
	}
}

// WithMaxMemory sets the memory limit for multipart request bodies.
func WithMaxMemory(bytes int64) Option {
	return func(cfg *config) {
		if bytes > 0 {
			cfg.maxMemory = bytes
		}
	}
}

// LoggerFrom returns the logger opts configure, or the default one.
func LoggerFrom(opts ...Option) Logger {
	cfg := config{logger: StdLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg.logger
}
