package closer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type namedFunc struct {
	name string
	fn   func(ctx context.Context) error
}

type closer struct {
	mu     sync.Mutex
	once   sync.Once
	done   chan struct{}
	funcs  []namedFunc
	logger Logger
}

var globalCloser = New()

// New returns a closer. When signals are given it runs CloseAll on the first one.
func New(signals ...os.Signal) *closer {
	c := &closer{
		done:   make(chan struct{}),
		logger: noopLogger{},
	}

	if len(signals) > 0 {
		go c.handleSignals(signals...)
	}

	return c
}

func SetLogger(l Logger) { globalCloser.SetLogger(l) }

func Add(fns ...func(ctx context.Context) error) { globalCloser.Add(fns...) }

func AddNamed(name string, fn func(ctx context.Context) error) {
	globalCloser.AddNamed(name, fn)
}

func CloseAll(ctx context.Context) error { return globalCloser.CloseAll(ctx) }

func (c *closer) SetLogger(l Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

func (c *closer) Add(fns ...func(ctx context.Context) error) {
	for i, fn := range fns {
		c.AddNamed(fmt.Sprintf("func-%d", i), fn)
	}
}

func (c *closer) AddNamed(name string, fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, namedFunc{name: name, fn: fn})
}

// CloseAll runs registered functions in reverse order and joins their errors.
func (c *closer) CloseAll(ctx context.Context) error {
	var result error

	c.once.Do(func() {
		defer close(c.done)

		c.mu.Lock()
		funcs := c.funcs
		c.funcs = nil
		log := c.logger
		c.mu.Unlock()

		errs := make([]error, 0, len(funcs))
		for i := len(funcs) - 1; i >= 0; i-- {
			f := funcs[i]
			if ctx.Err() != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f.name, ctx.Err()))
				continue
			}

			log.Info(ctx, "closing", zap.String("name", f.name))
			if err := f.fn(ctx); err != nil {
				log.Error(ctx, "close failed", zap.String("name", f.name), zap.Error(err))
				errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
			}
		}

		result = errors.Join(errs...)
	})

	return result
}

func (c *closer) handleSignals(signals ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	defer signal.Stop(ch)

	select {
	case <-ch:
		_ = c.CloseAll(context.Background())
	case <-c.done:
	}
}

type noopLogger struct{}

func (noopLogger) Info(context.Context, string, ...zap.Field)  {}
func (noopLogger) Error(context.Context, string, ...zap.Field) {}
