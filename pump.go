// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

// FillPolicy is like Cursor.Fill but consults policy when the source
// reports a semantic error.
//
// Semantics:
//   - If policy is nil, behavior is identical to Fill (default
//     non-blocking semantics).
//   - If policy returns PolicyRetry on ErrWouldBlock/ErrMore, the
//     engine calls policy.Yield(OpFill) and retries from that point;
//     otherwise it returns the semantic error unchanged.
//
// The cursor itself never retries: moving retry decisions into a
// policy keeps the buffer's failure semantics propagation-only while
// still giving callers blocking-ish behavior when they want it.
//
// An attempt that delivered bytes returns immediately even under
// PolicyRetry: loads land at the read position, so the window must be
// drained (or discarded) before the next attempt. Retries only happen
// for zero-progress attempts.
func FillPolicy(c *Cursor, src Reader, policy SemanticPolicy) (loaded int, err error) {
	if policy == nil {
		return c.Fill(src)
	}
	return loadPolicy(c.Fill, src, OpFill, policy)
}

// RefillPolicy is like Cursor.Refill but consults policy on semantic
// errors.
//
//   - nil policy: identical to Refill
//   - non-nil: PolicyRetry triggers policy.Yield(OpRefill) and a retry;
//     otherwise the semantic error is returned unchanged.
func RefillPolicy(c *Cursor, src Reader, policy SemanticPolicy) (loaded int, err error) {
	if policy == nil {
		return c.Refill(src)
	}
	return loadPolicy(c.Refill, src, OpRefill, policy)
}

// loadPolicy is the policy-aware load engine shared by FillPolicy and
// RefillPolicy. policy is guaranteed non-nil by callers.
func loadPolicy(load func(Reader) (int, error), src Reader, op Op, policy SemanticPolicy) (loaded int, err error) {
	for {
		n, e := load(src)
		if e == nil {
			return n, nil
		}
		if e == ErrWouldBlock {
			if n == 0 && policy.OnWouldBlock(op) == PolicyRetry {
				policy.Yield(op)
				continue
			}
			return n, ErrWouldBlock
		}
		if e == ErrMore {
			if n == 0 && policy.OnMore(op) == PolicyRetry {
				policy.Yield(op)
				continue
			}
			return n, ErrMore
		}
		return n, e
	}
}
