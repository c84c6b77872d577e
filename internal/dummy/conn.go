// Package dummy provides an in-memory net.Conn for tests: reads are scripted
// as a sequence of chunks, writes are captured, closes are counted.
package dummy

import (
	"io"
	"net"
	"sync"
	"time"
)

type Conn struct {
	mu sync.Mutex
	// chunks are returned by consecutive Read calls; once exhausted, FinalErr
	// (io.EOF unless overridden) is returned.
	chunks   [][]byte
	FinalErr error
	// Data accumulates everything written into the conn.
	Data   []byte
	Closes int
}

func NewConn(chunks ...[]byte) *Conn {
	return &Conn{chunks: chunks, FinalErr: io.EOF}
}

// NewTimeoutConn simulates an idle peer: every read fails with a timeout.
func NewTimeoutConn() *Conn {
	return &Conn{FinalErr: timeoutError{}}
}

func (c *Conn) Read(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.chunks) == 0 {
		return 0, c.FinalErr
	}

	n := copy(b, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Data = append(c.Data, b...)

	return len(b), nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Closes++

	return nil
}

// Written returns everything written so far.
func (c *Conn) Written() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.Data
}

func (c *Conn) LocalAddr() net.Addr              { return nil }
func (c *Conn) RemoteAddr() net.Addr             { return nil }
func (c *Conn) SetDeadline(time.Time) error      { return nil }
func (c *Conn) SetReadDeadline(time.Time) error  { return nil }
func (c *Conn) SetWriteDeadline(time.Time) error { return nil }

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
