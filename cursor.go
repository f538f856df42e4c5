// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

import (
	"io"
)

// Cursor is a read-side buffering cursor over one fixed-size byte arena.
//
// It mediates between a byte source and a consumer that repeatedly takes
// the next n bytes, tracking separately how much memory is allocated
// (Cap), how much has ever been written by a load (Initialized), how
// much currently holds valid unread data (Filled), and where the read
// position sits (Pos). The indices obey
//
//	0 <= Pos <= Filled <= Initialized <= Cap
//
// after every operation. Only the window [Pos, Filled) is ever exposed;
// bytes between Filled and Initialized are stale data from an earlier
// load and are never interpreted as current; bytes at or beyond
// Initialized are never read.
//
// A Cursor has exactly one logical owner. It performs no internal
// synchronization; callers sharing one across goroutines must provide
// their own mutual exclusion. The intended usage is one cursor per
// connection or worker, not a shared pool.
type Cursor struct {
	// arena is allocated once at construction and never grows. Go has no
	// allocated-but-uninitialized heap memory, so the arena is defined
	// from the start; the initialized index still bounds what may be
	// exposed, so behavior matches an uninitialized-memory arena exactly.
	arena []byte

	// pos is the read position. Anything in [pos, filled) is unread data.
	pos int

	// filled is one past the last byte currently holding valid data.
	filled int

	// initialized is the high-water mark of bytes ever written by a load.
	// Monotonically non-decreasing for the life of the cursor; Discard
	// does not reset it, which is what lets a refill skip re-zeroing.
	initialized int
}

// NewCursor allocates a cursor backed by capacity bytes.
// A negative capacity is treated as zero.
func NewCursor(capacity int) *Cursor {
	if capacity < 0 {
		capacity = 0
	}
	return &Cursor{arena: make([]byte, capacity)}
}

// View returns the window of unread data, [Pos, Filled).
//
// Every byte in the returned slice was written by a prior successful
// load; calling View is always safe and advances nothing. The slice
// aliases the arena: callers must not modify it and must not retain it
// across Discard, Fill, or Refill.
func (c *Cursor) View() []byte {
	return c.arena[c.pos:c.filled]
}

// Pos returns the read position.
func (c *Cursor) Pos() int { return c.pos }

// Filled returns one past the last byte of current valid data.
func (c *Cursor) Filled() int { return c.filled }

// Initialized returns the number of arena bytes ever written by a load.
func (c *Cursor) Initialized() int { return c.initialized }

// Cap returns the arena size. It never changes after construction.
func (c *Cursor) Cap() int { return len(c.arena) }

// Discard resets Pos and Filled to 0 without touching Initialized,
// logically emptying the window so the next load can reuse the arena
// from the start. Idempotent.
func (c *Cursor) Discard() {
	c.pos = 0
	c.filled = 0
}

// Advance moves the read position forward by n, clamped at Filled.
// It can never move past valid data. n <= 0 is a no-op.
func (c *Cursor) Advance(n int) {
	if n <= 0 {
		return
	}
	if c.pos+n > c.filled {
		c.pos = c.filled
		return
	}
	c.pos += n
}

// TryAdvance is the checked counterpart of Advance: it moves the read
// position forward by exactly n and reports true iff Pos+n <= Filled.
// Otherwise it reports false and the position is unchanged.
func (c *Cursor) TryAdvance(n int) bool {
	if n < 0 || c.pos+n > c.filled {
		return false
	}
	c.pos += n
	return true
}

// Retreat moves the read position backward by n, saturating at 0.
// n <= 0 is a no-op.
func (c *Cursor) Retreat(n int) {
	if n <= 0 {
		return
	}
	if n > c.pos {
		c.pos = 0
		return
	}
	c.pos -= n
}

// TryRetreat is the checked counterpart of Retreat: it moves the read
// position backward by exactly n and reports true iff n <= Pos.
// Otherwise it reports false and the position is unchanged.
func (c *Cursor) TryRetreat(n int) bool {
	if n < 0 || n > c.pos {
		return false
	}
	c.pos -= n
	return true
}

// Consume hands the next n unread bytes to f and advances past them.
//
// If at least n unread bytes are available, Consume calls f exactly once
// with View()[:n], advances the position by n, and reports true. If not,
// it reports false without calling f and without mutating anything, so
// callers can treat the failure as "not enough data yet, load more".
// Consume(0, f) succeeds and calls f with an empty slice.
func (c *Cursor) Consume(n int, f func(p []byte)) bool {
	if n < 0 || c.filled-c.pos < n {
		return false
	}
	f(c.arena[c.pos : c.pos+n])
	c.pos += n
	return true
}

// Fill reads once from src into the arena at the current position,
// appending to the window, and returns the number of bytes loaded.
//
// On a load of k > 0 bytes, Filled grows by k and Initialized rises to
// keep covering the whole window. The loaded region is only exposed for
// reading after src has written it.
//
// Result semantics:
//   - (0, nil) is the end-of-source signal, never a failure; no index
//     changes. io.EOF from src is absorbed into this form.
//   - Any other error from src propagates verbatim, with no retry;
//     bytes delivered alongside the error are committed first. Retry
//     policy belongs to the caller (see FillPolicy).
//
// Fill is meant to be called once the window has been drained (or after
// Discard), so that new data lands after everything already consumed.
// The request is bounded by the free space after the window, so Filled
// can never pass Cap; with a full window Fill returns (0, nil).
func (c *Cursor) Fill(src Reader) (int, error) {
	avail := len(c.arena) - c.filled
	n, err := src.Read(c.arena[c.pos : c.pos+avail])
	if n > 0 {
		c.filled += n
		if c.filled > c.initialized {
			c.initialized = c.filled
		}
	}
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// Refill starts the window over from the front of the arena: it reads
// once from src into [0, Cap) and, on a load of k > 0 bytes, commits
// Pos = 0, Filled = k, Initialized = max(Initialized, k).
//
// Result semantics match Fill: (0, nil) is exhaustion and leaves every
// index unchanged; other errors propagate verbatim, with any delivered
// bytes committed first.
func (c *Cursor) Refill(src Reader) (int, error) {
	n, err := src.Read(c.arena)
	if n > 0 {
		c.pos = 0
		c.filled = n
		if n > c.initialized {
			c.initialized = n
		}
	}
	if err == io.EOF {
		err = nil
	}
	return n, err
}
