// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

import (
	"context"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// FileConnector stores bytes in a single file: pushes append at the
// end, pulls read sequentially from the front.
//
// Both directions feed running xxhash digests (PushSum / PullSum) so an
// owner replaying a file through a Cursor can cheaply verify it pulled
// exactly what was pushed. The digests reset on Connect.
type FileConnector struct {
	path      string
	f         *os.File
	pullOff   int64
	pushSum   *xxhash.Digest
	pullSum   *xxhash.Digest
	log       *zap.Logger
	connected bool
}

// NewFileConnector returns an unconnected connector storing to path.
func NewFileConnector(path string) *FileConnector {
	return &FileConnector{
		path: path,
		log:  zap.NewNop(),
	}
}

// SetLogger attaches a logger for connection lifecycle events.
// A nil logger restores the no-op default.
func (c *FileConnector) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
}

// Connect opens (creating if needed) the backing file and resets the
// pull offset and integrity digests.
func (c *FileConnector) Connect(_ context.Context) error {
	if c.connected {
		return nil
	}
	f, err := os.OpenFile(c.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		c.log.Warn("file connect failed", zap.String("path", c.path), zap.Error(err))
		return connErr(KindConnection, "file connect", err)
	}
	c.f = f
	c.pullOff = 0
	c.pushSum = xxhash.New()
	c.pullSum = xxhash.New()
	c.connected = true
	c.log.Debug("file connected", zap.String("path", c.path))
	return nil
}

// Connected reports whether the backing file is open.
func (c *FileConnector) Connected() bool { return c.connected }

// Push appends p to the file.
func (c *FileConnector) Push(p []byte) (int, error) {
	if !c.connected {
		return 0, connErr(KindClosed, "file push", nil)
	}
	n, err := c.f.Write(p)
	if n > 0 {
		_, _ = c.pushSum.Write(p[:n])
	}
	if err != nil {
		c.log.Warn("file push failed", zap.String("path", c.path), zap.Error(err))
		return n, connErr(KindIO, "file push", err)
	}
	return n, nil
}

// Pull reads the next unread bytes of the file into p. A 0-byte result
// means the pull offset has reached the end of the file.
func (c *FileConnector) Pull(p []byte) (int, error) {
	if !c.connected {
		return 0, connErr(KindClosed, "file pull", nil)
	}
	n, err := c.f.ReadAt(p, c.pullOff)
	if n > 0 {
		c.pullOff += int64(n)
		_, _ = c.pullSum.Write(p[:n])
	}
	if err == io.EOF {
		return n, nil
	}
	if err != nil {
		c.log.Warn("file pull failed", zap.String("path", c.path), zap.Error(err))
		return n, connErr(KindIO, "file pull", err)
	}
	return n, nil
}

// PushSum returns the xxhash of every byte pushed since Connect.
func (c *FileConnector) PushSum() uint64 {
	if c.pushSum == nil {
		return 0
	}
	return c.pushSum.Sum64()
}

// PullSum returns the xxhash of every byte pulled since Connect.
// After a full replay, PullSum equals PushSum iff the file round-tripped
// intact.
func (c *FileConnector) PullSum() uint64 {
	if c.pullSum == nil {
		return 0
	}
	return c.pullSum.Sum64()
}

// Close closes the backing file. Idempotent.
func (c *FileConnector) Close() error {
	if !c.connected {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	c.connected = false
	c.log.Debug("file closed", zap.String("path", c.path))
	if err != nil {
		return connErr(KindIO, "file close", err)
	}
	return nil
}
