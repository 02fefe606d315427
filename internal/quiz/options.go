package quiz

import (
	"math/rand/v2"
	"time"
)

// Clock supplies the current time. A nil Clock means time.Now.
type Clock func() time.Time

// Option injects a clock or random source into engine constructors, so tests
// can pin timestamps and shuffle order.
type Option func(*options)

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithRand overrides the shuffle source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

type options struct {
	clock Clock
	rng   *rand.Rand
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) now() time.Time {
	if o.clock != nil {
		return o.clock()
	}
	return time.Now()
}
