// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

import (
	"context"

	"github.com/valyala/bytebufferpool"
)

// MemConnector is an in-memory store, intended for debugging and tests
// rather than production persistence.
//
// Pushed bytes append to a pooled byte buffer; pulls read them back
// sequentially. Close returns the buffer to the pool, so pushed data
// does not survive a Close/Connect cycle.
type MemConnector struct {
	bb        *bytebufferpool.ByteBuffer
	off       int
	connected bool
}

// NewMemConnector returns an unconnected in-memory connector.
func NewMemConnector() *MemConnector { return &MemConnector{} }

// Connect acquires the backing buffer. Reconnecting an already
// connected connector is a no-op.
func (c *MemConnector) Connect(_ context.Context) error {
	if c.connected {
		return nil
	}
	c.bb = bytebufferpool.Get()
	c.off = 0
	c.connected = true
	return nil
}

// Connected reports whether the backing buffer is held.
func (c *MemConnector) Connected() bool { return c.connected }

// Push appends p to the store.
func (c *MemConnector) Push(p []byte) (int, error) {
	if !c.connected {
		return 0, connErr(KindClosed, "mem push", nil)
	}
	return c.bb.Write(p)
}

// Pull copies the next unread bytes of the store into p. A 0-byte
// result means everything pushed so far has been pulled.
func (c *MemConnector) Pull(p []byte) (int, error) {
	if !c.connected {
		return 0, connErr(KindClosed, "mem pull", nil)
	}
	if c.off >= len(c.bb.B) {
		return 0, nil
	}
	n := copy(p, c.bb.B[c.off:])
	c.off += n
	return n, nil
}

// Len returns the number of bytes currently stored.
func (c *MemConnector) Len() int {
	if c.bb == nil {
		return 0
	}
	return len(c.bb.B)
}

// Close releases the backing buffer to the pool. Idempotent.
func (c *MemConnector) Close() error {
	if !c.connected {
		return nil
	}
	bytebufferpool.Put(c.bb)
	c.bb = nil
	c.off = 0
	c.connected = false
	return nil
}
