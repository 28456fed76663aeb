package auth

import (
	"context"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/logging"
)

const DefaultStoreTimeout = 3 * time.Second

type options struct {
	now          func() time.Time
	storeTimeout time.Duration
	logger       logging.Logger
}

// Option tunes an Authenticator or TokenValidator.
type Option func(*options)

// WithClock replaces time.Now. Tests use it to move across expiry boundaries.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithStoreTimeout bounds every credential store lookup. Zero disables it.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *options) { o.storeTimeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{
		now:          time.Now,
		storeTimeout: DefaultStoreTimeout,
		logger:       logging.Nop{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.storeTimeout)
}
