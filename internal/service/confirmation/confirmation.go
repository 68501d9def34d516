// Package confirmation implements the administrator credential re-entry that
// guards editing and deleting invoices. It is checked in addition to the
// permission gate, never instead of it.
package confirmation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/inflight"
	"github.com/you-humble/workshop/platform/logger"
)

var errFlowClosed = errors.New("confirmation flow closed")

type CredentialValidator interface {
	ValidateCredential(ctx context.Context, invoiceID int64, c model.Confirmation) (bool, error)
}

// Confirmer counts wrong credentials per actor and invoice across flows. The
// count is cleared by a successful confirmation or once lockout has passed
// since the last wrong credential.
type Confirmer struct {
	validator   CredentialValidator
	flights     *inflight.Registry
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time

	mu       sync.Mutex
	failures map[failureKey]failure
}

type failureKey struct {
	actorID   int64
	invoiceID int64
}

type failure struct {
	count int
	last  time.Time
}

func NewConfirmer(validator CredentialValidator, maxAttempts int, lockout time.Duration) *Confirmer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Confirmer{
		validator:   validator,
		flights:     inflight.NewRegistry(),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
		failures:    make(map[failureKey]failure),
	}
}

// Begin opens the only confirmation flow allowed for an invoice. A second Begin
// for the same invoice fails with model.ErrBusy until the first flow is closed.
func (c *Confirmer) Begin(invoiceID int64, operation model.ConfirmOperation) (*Flow, error) {
	const op = "confirmation.Begin"

	release, ok := c.flights.TryAcquire(strconv.FormatInt(invoiceID, 10))
	if !ok {
		return nil, fmt.Errorf("%s: invoice %d: %w", op, invoiceID, model.ErrBusy)
	}

	return &Flow{
		confirmer: c,
		invoiceID: invoiceID,
		operation: operation,
		release:   release,
	}, nil
}

// Confirm checks secret in a flow of its own and returns the payload that must
// travel with the guarded request.
func (c *Confirmer) Confirm(
	ctx context.Context,
	actor model.Actor,
	invoiceID int64,
	secret string,
	operation model.ConfirmOperation,
) (model.Confirmation, error) {
	flow, err := c.Begin(invoiceID, operation)
	if err != nil {
		return model.Confirmation{}, err
	}
	defer flow.Close()

	if err := flow.Confirm(ctx, actor, secret); err != nil {
		return model.Confirmation{}, err
	}

	conf, _ := flow.Confirmation()
	return conf, nil
}

func (c *Confirmer) left(key failureKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.failures[key]
	if !ok {
		return c.maxAttempts
	}
	if c.lockout > 0 && c.now().Sub(f.last) >= c.lockout {
		delete(c.failures, key)
		return c.maxAttempts
	}
	return max(c.maxAttempts-f.count, 0)
}

func (c *Confirmer) fail(key failureKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.failures[key]
	f.count++
	f.last = c.now()
	c.failures[key] = f

	return max(c.maxAttempts-f.count, 0)
}

func (c *Confirmer) reset(key failureKey) {
	c.mu.Lock()
	delete(c.failures, key)
	c.mu.Unlock()
}

// Flow is one pending confirmation. The caller may retry Confirm until it
// succeeds or the attempts run out, and must Close the flow afterwards.
type Flow struct {
	confirmer *Confirmer
	invoiceID int64
	operation model.ConfirmOperation
	release   func()

	mu        sync.Mutex
	confirmed *model.Confirmation
	closed    bool
}

func (f *Flow) Confirm(ctx context.Context, actor model.Actor, secret string) error {
	const op = "confirmation.Flow.Confirm"
	log := logger.With(
		logger.Int64("invoice_id", f.invoiceID),
		logger.Int64("actor_id", actor.ID),
		logger.String("operation", string(f.operation)),
	)

	f.mu.Lock()
	defer f.mu.Unlock()

	key := failureKey{actorID: actor.ID, invoiceID: f.invoiceID}

	switch {
	case f.closed:
		return fmt.Errorf("%s: %w", op, errFlowClosed)
	case f.confirmed != nil:
		return nil
	case f.confirmer.left(key) == 0:
		log.Warn(ctx, "credential attempts exhausted")
		return fmt.Errorf("%s: %w", op, model.ErrAttemptsExhausted)
	case strings.TrimSpace(secret) == "":
		return fmt.Errorf("%s: %w", op, model.NewValidationError("secret", "credential required"))
	}

	conf := model.Confirmation{Secret: secret, Operation: f.operation}

	ok, err := f.confirmer.validator.ValidateCredential(ctx, f.invoiceID, conf)
	if err != nil {
		log.Error(ctx, "validate credential", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		left := f.confirmer.fail(key)
		log.Warn(ctx, "invalid credential", logger.Int("attempts_left", left))
		if left == 0 {
			return fmt.Errorf("%s: %w: %w", op, model.ErrInvalidCredential, model.ErrAttemptsExhausted)
		}
		return fmt.Errorf("%s: %w: %d attempts left", op, model.ErrInvalidCredential, left)
	}

	f.confirmer.reset(key)
	f.confirmed = &conf
	return nil
}

// Confirmation returns the accepted credential payload.
func (f *Flow) Confirmation() (model.Confirmation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.confirmed == nil {
		return model.Confirmation{}, false
	}
	return *f.confirmed, true
}

// Close frees the invoice for a new flow. It is safe to call more than once.
func (f *Flow) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	f.release()
}
