// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// IDE note: bufx re-exports (aliases) the io interfaces its API
// consumes so that users can stay in the "bufx" namespace while reading
// documentation and navigating types. The contracts mirror the standard
// io expectations, with bufx-specific behavior documented at call sites
// (Cursor.Fill, FillPolicy, Connector).
package bufx

import (
	"io"
)

// Reader is the source contract consumed by Cursor.Fill and
// Cursor.Refill.
//
// Read must return the number of bytes written into p
// (0 <= n <= len(p)) and any error encountered; it never writes beyond
// len(p). bufx treats a 0-byte result with a nil error as the
// end-of-source signal, and absorbs io.EOF into that form at the
// cursor boundary.
//
// Reader is an alias of io.Reader.
type Reader = io.Reader

// Writer is the sink contract for Connector push paths.
//
// Write must return the number of bytes written from p
// (0 <= n <= len(p)) and any error encountered. If Write returns
// n < len(p), it must return a non-nil error.
//
// Writer is an alias of io.Writer.
type Writer = io.Writer

// Closer is implemented by connectors that hold external resources.
//
// Close should be idempotent where practical.
//
// Closer is an alias of io.Closer.
type Closer = io.Closer

// Common sentinel errors re-exported for convenience.
//
// Note: bufx also defines semantic non-failure errors (ErrWouldBlock,
// ErrMore) used by its load engines and connectors; those are not part
// of the standard io set.
var (
	// EOF is returned by Read when no more input is available. Cursor
	// loads absorb it into the (0, nil) end-of-source form; it remains
	// visible to callers reading a Connector directly through Source.
	EOF = io.EOF

	// ErrShortWrite means a write accepted fewer bytes than requested and
	// returned no explicit error. Connector push loops surface it when a
	// store stops accepting data without failing.
	ErrShortWrite = io.ErrShortWrite

	// ErrUnexpectedEOF means EOF was encountered earlier than expected,
	// e.g. a store ending mid-record during a sized pull.
	ErrUnexpectedEOF = io.ErrUnexpectedEOF
)
