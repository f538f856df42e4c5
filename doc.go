// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

// Package bufx provides a read-side buffering cursor for staging bytes
// between a byte source (file, socket, in-memory store) and a consumer
// that repeatedly takes "the next n bytes" without per-call copying or
// re-zeroing, plus the connector transport layer that feeds it.
//
// Cursor bookkeeping
//
// A Cursor owns one fixed arena and tracks four indices independently:
//   - capacity:    bytes physically allocated (fixed at creation)
//   - initialized: high-water mark of bytes ever written by a load
//   - filled:      one past the last byte of current, valid data
//   - pos:         the consumer's read position
//
// with 0 <= pos <= filled <= initialized <= capacity after every
// operation. Only the window [pos, filled) is ever exposed to readers;
// bytes at or beyond initialized are never read or exposed.
//
// Extended result semantics
//   - ErrWouldBlock: the source cannot make progress now without waiting.
//     Return immediately; retry later (see FillPolicy / BackoffPolicy).
//   - ErrMore: the current completion made progress and more completions
//     will follow (multi-shot style). Process now, keep polling.
//   - A (0, nil) result from Fill/Refill is the end-of-source signal,
//     not a failure; use ClassifyFill to branch on it.
//
// Connectors stage bytes to and from persistent stores (memory, file,
// TCP). They surface the same semantics, so a single policy loop can
// drive a Cursor from any of them.
