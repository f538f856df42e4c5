// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"go.uber.org/zap"
)

// DefaultDialTimeout bounds TCP connection establishment when the
// configuration leaves dial_timeout unset.
const DefaultDialTimeout = 3 * time.Second

// TCPConnector stores bytes on a TCP peer.
//
// Push drains the whole input before returning, looping over partial
// writes the way a proxy relay does. Pull maps read deadline expiry to
// ErrWouldBlock so that the FillPolicy engines can wait and retry
// instead of treating an idle peer as a failure.
type TCPConnector struct {
	addr        string
	dialTimeout time.Duration
	conn        net.Conn
	log         *zap.Logger
	connected   bool
}

// NewTCPConnector returns an unconnected connector for addr.
// A non-positive dialTimeout means DefaultDialTimeout.
func NewTCPConnector(addr string, dialTimeout time.Duration) *TCPConnector {
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}
	return &TCPConnector{
		addr:        addr,
		dialTimeout: dialTimeout,
		log:         zap.NewNop(),
	}
}

// SetLogger attaches a logger for connection lifecycle events.
// A nil logger restores the no-op default.
func (c *TCPConnector) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
}

// Connect dials the peer. ctx may cut the attempt short of the dial
// timeout.
func (c *TCPConnector) Connect(ctx context.Context) error {
	if c.connected {
		return nil
	}
	d := net.Dialer{Timeout: c.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		c.log.Warn("tcp connect failed", zap.String("addr", c.addr), zap.Error(err))
		return connErr(KindConnection, "tcp connect", err)
	}
	c.conn = conn
	c.connected = true
	c.log.Debug("tcp connected", zap.String("addr", c.addr))
	return nil
}

// Connected reports whether the peer connection is established.
func (c *TCPConnector) Connected() bool { return c.connected }

// SetPullDeadline bounds how long the next Pull may block. Deadline
// expiry surfaces as ErrWouldBlock, not a failure.
func (c *TCPConnector) SetPullDeadline(t time.Time) error {
	if !c.connected {
		return connErr(KindClosed, "tcp deadline", nil)
	}
	return c.conn.SetReadDeadline(t)
}

// Push writes p to the peer, looping until every byte is written.
func (c *TCPConnector) Push(p []byte) (int, error) {
	if !c.connected {
		return 0, connErr(KindClosed, "tcp push", nil)
	}
	written := 0
	for written < len(p) {
		n, err := c.conn.Write(p[written:])
		written += n
		if err != nil {
			c.log.Warn("tcp push failed", zap.String("addr", c.addr), zap.Error(err))
			return written, connErr(KindIO, "tcp push", err)
		}
		if n == 0 {
			return written, ErrShortWrite
		}
	}
	return written, nil
}

// Pull reads the next bytes from the peer into p. A closed peer is the
// 0-byte exhaustion signal; a deadline expiry is ErrWouldBlock.
func (c *TCPConnector) Pull(p []byte) (int, error) {
	if !c.connected {
		return 0, connErr(KindClosed, "tcp pull", nil)
	}
	n, err := c.conn.Read(p)
	if err == nil {
		return n, nil
	}
	if err == io.EOF {
		return n, nil
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return n, ErrWouldBlock
	}
	c.log.Warn("tcp pull failed", zap.String("addr", c.addr), zap.Error(err))
	return n, connErr(KindIO, "tcp pull", err)
}

// Close closes the peer connection. Idempotent.
func (c *TCPConnector) Close() error {
	if !c.connected {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.connected = false
	c.log.Debug("tcp closed", zap.String("addr", c.addr))
	if err != nil {
		return connErr(KindIO, "tcp close", err)
	}
	return nil
}
