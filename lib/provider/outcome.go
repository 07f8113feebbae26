package provider

import (
	"context"
	"fmt"
)

// --------------------------------------------------------------------------
// Outcome
// --------------------------------------------------------------------------

// Outcome is the result of a method invocation. Providers are polymorphic
// in whether they complete synchronously or hand back a pending result that
// settles later; both cases are represented by this one type so callers
// have a single resolution path.
//
// Await blocks until the outcome settles or the context is done. It is safe
// to call Await at most once per Outcome.
type Outcome interface {
	Await(ctx context.Context) (any, error)
}

// --------------------------------------------------------------------------
// Immediate Outcomes
// --------------------------------------------------------------------------

// immediateOutcome wraps a value (or error) that is already settled.
type immediateOutcome struct {
	value any
	err   error
}

func (o immediateOutcome) Await(_ context.Context) (any, error) {
	return o.value, o.err
}

// Immediate creates an already-settled successful Outcome.
func Immediate(value any) Outcome {
	return immediateOutcome{value: value}
}

// Fail creates an already-settled failed Outcome.
func Fail(err error) Outcome {
	return immediateOutcome{err: err}
}

// Failf creates an already-settled failed Outcome from a format string.
func Failf(format string, args ...any) Outcome {
	return immediateOutcome{err: fmt.Errorf(format, args...)}
}

// --------------------------------------------------------------------------
// Pending Outcomes
// --------------------------------------------------------------------------

// settled carries the final state of a pending outcome.
type settled struct {
	value any
	err   error
}

// pendingOutcome settles when its backing goroutine finishes.
type pendingOutcome struct {
	ch chan settled
}

func (o *pendingOutcome) Await(ctx context.Context) (any, error) {
	select {
	case s := <-o.ch:
		return s.value, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Deferred creates a pending Outcome backed by fn running in its own
// goroutine. A panic inside fn settles the outcome as a failure instead of
// crashing the process - asynchronous failures must travel the same error
// path as synchronous ones.
func Deferred(fn func() (any, error)) Outcome {
	o := &pendingOutcome{ch: make(chan settled, 1)}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				o.ch <- settled{err: fmt.Errorf("provider call panicked: %v", r)}
			}
		}()
		v, err := fn()
		o.ch <- settled{value: v, err: err}
	}()
	return o
}
