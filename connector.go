// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Connector is the transport boundary between a Cursor and a persistent
// byte store: memory (debugging only), a file, a TCP peer, and anything
// in between.
//
// Push sends bytes to the store; Pull requests bytes from it. Pull
// follows the Reader contract: it writes up to len(p) bytes into p,
// returns the count, and a 0-byte result signals exhaustion. Both
// propagate store failures verbatim; retry policy belongs to the caller
// (see FillPolicy).
//
// Connectors are not safe for concurrent use; like a Cursor, each has
// one logical owner.
type Connector interface {
	// Connect establishes the data flow to the underlying store.
	// ctx bounds the attempt for stores that dial or open slowly.
	Connect(ctx context.Context) error

	// Connected reports whether the connector currently holds an
	// established data flow.
	Connected() bool

	// Push sends bytes to the underlying store, returning how many were
	// accepted.
	Push(p []byte) (int, error)

	// Pull requests bytes from the underlying store under the Reader
	// contract: 0 with a nil error means exhausted.
	Pull(p []byte) (int, error)

	Closer
}

// Source adapts the pull side of a Connector to the Reader contract so
// it can feed Cursor.Fill and Cursor.Refill directly.
func Source(c Connector) Reader { return pullReader{c} }

type pullReader struct{ c Connector }

func (r pullReader) Read(p []byte) (int, error) { return r.c.Pull(p) }

// Connector kind names accepted by Config.
const (
	KindNameMem  = "mem"
	KindNameFile = "file"
	KindNameTCP  = "tcp"
)

// DefaultBufferCapacity is the arena size Config.NewCursor uses when
// the configuration leaves buffer_capacity unset.
const DefaultBufferCapacity = 8192

// Config describes a connector declaratively, typically parsed from a
// YAML document:
//
//	kind: tcp
//	addr: 127.0.0.1:9530
//	dial_timeout: 3s
//	buffer_capacity: 16384
//
// Only the fields relevant to the chosen kind need to be set.
type Config struct {
	// Kind selects the connector implementation: "mem", "file" or "tcp".
	Kind string `yaml:"kind"`

	// Path is the backing file for the "file" kind.
	Path string `yaml:"path,omitempty"`

	// Addr is the remote address for the "tcp" kind.
	Addr string `yaml:"addr,omitempty"`

	// DialTimeout bounds connection establishment for the "tcp" kind.
	// Zero means DefaultDialTimeout.
	DialTimeout Duration `yaml:"dial_timeout,omitempty"`

	// BufferCapacity sizes the cursor built by NewCursor. Zero means
	// DefaultBufferCapacity.
	BufferCapacity int `yaml:"buffer_capacity,omitempty"`
}

// Duration is a time.Duration that decodes from Go duration strings
// ("3s", "250ms") in YAML documents.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return connErr(KindConfig, "parse dial_timeout", err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// ParseConfig decodes a YAML connector configuration.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, connErr(KindConfig, "parse config", err)
	}
	return cfg, nil
}

// NewCursor builds the staging cursor sized for this configuration.
func (cfg *Config) NewCursor() *Cursor {
	capacity := cfg.BufferCapacity
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return NewCursor(capacity)
}

// Open builds the connector this configuration describes. The connector
// is constructed but not yet connected; callers decide when to Connect.
func Open(cfg *Config) (Connector, error) {
	if cfg == nil {
		return nil, connErr(KindConfig, "open connector", fmt.Errorf("nil config"))
	}
	switch cfg.Kind {
	case KindNameMem:
		return NewMemConnector(), nil
	case KindNameFile:
		if cfg.Path == "" {
			return nil, connErr(KindConfig, "open file connector", fmt.Errorf("path is required"))
		}
		return NewFileConnector(cfg.Path), nil
	case KindNameTCP:
		if cfg.Addr == "" {
			return nil, connErr(KindConfig, "open tcp connector", fmt.Errorf("addr is required"))
		}
		return NewTCPConnector(cfg.Addr, time.Duration(cfg.DialTimeout)), nil
	default:
		return nil, connErr(KindConfig, "open connector", fmt.Errorf("unknown kind %q", cfg.Kind))
	}
}
