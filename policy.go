// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

import "runtime"

// Op identifies where a semantic signal (ErrWouldBlock / ErrMore) came
// from.
//
// This is intentionally coarse-grained: it lets a policy distinguish
// load-side semantics (a cursor waiting on its source) from transport
// semantics (a connector pushing to or pulling from its store).
type Op uint8

const (
	OpFill Op = iota
	OpRefill

	OpPull
	OpPush
)

func (op Op) String() string {
	switch op {
	case OpFill:
		return "Fill"
	case OpRefill:
		return "Refill"
	case OpPull:
		return "Pull"
	case OpPush:
		return "Push"
	default:
		return "Op(unknown)"
	}
}

// PolicyAction tells an engine whether it should return to the caller
// or attempt the operation again.
type PolicyAction uint8

const (
	// PolicyReturn means: return immediately to the caller.
	// Use this for "delivery boundaries" (e.g., ErrMore after a frame).
	PolicyReturn PolicyAction = iota

	// PolicyRetry means: do not return; retry after waiting/yielding.
	// This is typically used to map ErrWouldBlock to blocking-ish behavior.
	PolicyRetry
)

// SemanticPolicy customizes how a load engine reacts to semantic errors.
//
// This is a decision function that maps (operation, error) pairs to
// actions, plus a yield hook for when retry is selected.
//
// Contract expectations:
//   - OnWouldBlock / OnMore are only called for the matching semantic errors.
//   - If PolicyRetry is returned, the engine will call Yield(op) and then retry.
//   - If Yield(op) does not actually wait for readiness, the engine may spin.
type SemanticPolicy interface {
	Yield(op Op)
	OnWouldBlock(op Op) PolicyAction
	OnMore(op Op) PolicyAction
}

// PolicyFunc is a convenience implementation for callers that want to
// inject behavior without defining a struct type.
//
// Default behaviors when fields are nil:
//   - YieldFunc: calls runtime.Gosched() to yield the processor
//   - WouldBlockFunc: returns PolicyReturn (caller handles ErrWouldBlock)
//   - MoreFunc: returns PolicyReturn (caller handles ErrMore)
type PolicyFunc struct {
	YieldFunc      func(op Op)
	WouldBlockFunc func(op Op) PolicyAction
	MoreFunc       func(op Op) PolicyAction
}

func (p PolicyFunc) Yield(op Op) {
	if p.YieldFunc != nil {
		p.YieldFunc(op)
		return
	}
	runtime.Gosched()
}

func (p PolicyFunc) OnWouldBlock(op Op) PolicyAction {
	if p.WouldBlockFunc != nil {
		return p.WouldBlockFunc(op)
	}
	return PolicyReturn
}

func (p PolicyFunc) OnMore(op Op) PolicyAction {
	if p.MoreFunc != nil {
		return p.MoreFunc(op)
	}
	return PolicyReturn
}

// ReturnPolicy is the simplest policy: never waits and never retries.
// It preserves non-blocking semantics (callers handle ErrWouldBlock and
// ErrMore themselves).
type ReturnPolicy struct{}

func (ReturnPolicy) Yield(Op) {}

func (ReturnPolicy) OnWouldBlock(Op) PolicyAction { return PolicyReturn }

func (ReturnPolicy) OnMore(Op) PolicyAction { return PolicyReturn }

// YieldPolicy is a ready-to-use policy with the common mapping:
//
//   - ErrWouldBlock: yield and retry
//   - ErrMore: return immediately (treat as a delivery/boundary signal)
//
// This matches sources where ErrMore denotes a completed delivery and
// the caller wants to consume the window now, then load again.
//
// Default Yield behavior: runtime.Gosched().
type YieldPolicy struct {
	// YieldFunc is invoked when the engine decides to retry after
	// ErrWouldBlock. It may spin, park, poll, run an event-loop tick, etc.
	YieldFunc func(op Op)
}

func (p YieldPolicy) Yield(op Op) {
	if p.YieldFunc != nil {
		p.YieldFunc(op)
		return
	}
	runtime.Gosched()
}

func (YieldPolicy) OnWouldBlock(Op) PolicyAction { return PolicyRetry }

func (YieldPolicy) OnMore(Op) PolicyAction { return PolicyReturn }

// BackoffPolicy retries on ErrWouldBlock, sleeping through a Backoff
// between attempts so an unready source is polled at a decelerating
// rate instead of spun on. ErrMore returns immediately.
//
// Zero-value is ready to use and shares one Backoff progression across
// all ops; call Reset between independent waits.
type BackoffPolicy struct {
	Backoff Backoff
}

func (p *BackoffPolicy) Yield(Op) { p.Backoff.Wait() }

func (p *BackoffPolicy) OnWouldBlock(Op) PolicyAction { return PolicyRetry }

func (p *BackoffPolicy) OnMore(Op) PolicyAction { return PolicyReturn }

// Reset restores the underlying backoff progression for a fresh wait.
func (p *BackoffPolicy) Reset() { p.Backoff.Reset() }
