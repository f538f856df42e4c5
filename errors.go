// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

import (
	"errors"
	"fmt"
)

// bufx introduces two semantic errors for non-blocking and multi-shot
// sources, plus a typed connector error for the transport layer.
//
// Mental model:
//   - ErrWouldBlock: retry later (wait for readiness, then try again).
//   - ErrMore: keep polling (source remains active; more completions
//     will follow).
//
// Notes:
//   - Either may accompany partial progress: counts first, semantics
//     second.
//   - Cursor.Fill and Cursor.Refill propagate both verbatim; they are
//     expected control flow, not failures.

// ErrWouldBlock means “no further progress without waiting”.
// Linux analogy: EAGAIN/EWOULDBLOCK / not-ready / no completion available.
// Next step: wait for readiness, then retry (see FillPolicy).
var ErrWouldBlock = errors.New("bufx: would block")

// ErrMore means “this source remains active; more completions will follow”
// (multi-shot / streaming style).
// Next step: keep polling and processing results.
var ErrMore = errors.New("bufx: expect more")

// ConnKind classifies connector failures.
type ConnKind uint8

const (
	// KindConnection covers failures establishing or holding a connection
	// to the underlying store.
	KindConnection ConnKind = iota

	// KindClosed reports an operation on a connector that is not connected.
	KindClosed

	// KindIO covers push/pull failures surfaced by the underlying store.
	KindIO

	// KindConfig covers malformed or incomplete connector configuration.
	KindConfig

	// KindUnknown is everything else.
	KindUnknown
)

func (k ConnKind) String() string {
	switch k {
	case KindConnection:
		return "Connection"
	case KindClosed:
		return "Closed"
	case KindIO:
		return "IO"
	case KindConfig:
		return "Config"
	default:
		return "Unknown"
	}
}

// ConnError carries a classified connector failure with its cause.
//
// It wraps the underlying error (when there is one) so callers can keep
// using errors.Is / errors.As on the original failure.
type ConnError struct {
	Kind ConnKind
	Msg  string
	Err  error
}

func (e *ConnError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Msg, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Msg, e.Kind)
}

func (e *ConnError) Unwrap() error { return e.Err }

// connErr builds a ConnError. msg should name the failing operation.
func connErr(kind ConnKind, msg string, err error) *ConnError {
	return &ConnError{Kind: kind, Msg: msg, Err: err}
}

// IsConnKind reports whether err is (or wraps) a ConnError of the given
// kind.
func IsConnKind(err error, kind ConnKind) bool {
	var ce *ConnError
	return errors.As(err, &ce) && ce.Kind == kind
}
