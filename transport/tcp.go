// Package transport owns the listening socket. The accept loop does nothing
// but accept and hand off: connection handling happens in the worker pool, so
// admission latency stays independent of handling latency.
package transport

import (
	"errors"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/httpool/httpool/config"
	"github.com/httpool/httpool/internal/timer"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

type TCP struct {
	l    listener
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{stop: new(atomic.Bool)}
}

func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return err
	}

	t.l, err = net.ListenTCP("tcp", tcpaddr)

	return err
}

// Addr returns the bound address; useful when the configured port was 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen accepts connections until Stop is called, passing each one to cb.
// The callback must not block: it only enqueues. Accept is armed with a
// deadline so the stop flag is observed even on an idle socket.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	for !t.stop.Load() {
		if err := t.l.SetDeadline(timer.Now().Add(cfg.AcceptLoopInterruptPeriod)); err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			if t.stop.Load() {
				return nil
			}

			return err
		}

		cb(conn)
	}

	return nil
}

func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() error {
	return t.l.Close()
}
