// Package dispatch implements the bounded worker pool feeding accepted
// connections to sessions. A fixed set of long-lived workers pulls from one
// shared bounded queue; the accept loop never blocks on it. When the queue is
// full, admission control rejects the connection with 503 right away.
package dispatch

import (
	"log/slog"
	"net"
	"strconv"
	"sync"

	"github.com/httpool/httpool/config"
)

// Handler serves one connection, keep-alive lifetime included. It must close
// the connection itself.
type Handler func(conn net.Conn)

type Pool struct {
	queue  chan net.Conn
	stopch chan struct{}
	wg     sync.WaitGroup
	serve  Handler
	log    *slog.Logger
	cfg    *config.Config
	// rejection is the pre-built 503 wire response for saturated admission.
	rejection []byte
}

func NewPool(cfg *config.Config, log *slog.Logger, serve Handler) *Pool {
	return &Pool{
		queue:     make(chan net.Conn, cfg.Pool.QueueCapacity),
		stopch:    make(chan struct{}),
		serve:     serve,
		log:       log,
		cfg:       cfg,
		rejection: rejection(cfg),
	}
}

// Start launches the fixed worker set. Workers live until Stop.
func (p *Pool) Start() {
	for i := 1; i <= p.cfg.Pool.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Submit enqueues an accepted connection or, if the queue is already at
// capacity, rejects it immediately with 503 so the accept loop never blocks.
// A non-empty but not yet full queue is logged as a saturation early warning.
func (p *Pool) Submit(conn net.Conn) {
	if depth := len(p.queue); depth >= cap(p.queue) {
		p.reject(conn)
		return
	} else if depth > 0 {
		p.log.Warn("pool saturated, queuing connection", "depth", depth)
	}

	select {
	case p.queue <- conn:
	default:
		// the queue filled up between the depth check and the send; still
		// never block the accept path
		p.reject(conn)
	}
}

// Stop signals every worker, waits for them to finish their current
// connections, and closes whatever was still queued and never dequeued.
func (p *Pool) Stop() {
	close(p.stopch)
	p.wg.Wait()

	for {
		select {
		case conn := <-p.queue:
			_ = conn.Close()
		default:
			return
		}
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	log := p.log.With("worker", "Worker-"+strconv.Itoa(id))
	log.Info("started")

	for {
		select {
		case <-p.stopch:
			log.Info("stopped")
			return
		case conn := <-p.queue:
			p.serveConn(log, conn)
		}
	}
}

// serveConn runs the handler under a recover, so a session fault can never
// take the worker down: it is logged and the worker returns to the queue.
func (p *Pool) serveConn(log *slog.Logger, conn net.Conn) {
	defer func() {
		if fault := recover(); fault != nil {
			log.Error("unhandled error", "error", fault)
			_ = conn.Close()
		}
	}()

	log.Info("serving connection", "peer", conn.RemoteAddr())
	p.serve(conn)
}

func (p *Pool) reject(conn net.Conn) {
	_, _ = conn.Write(p.rejection)
	_ = conn.Close()
	p.log.Warn("connection rejected with 503 due to worker pool saturation")
}

func rejection(cfg *config.Config) []byte {
	return []byte("HTTP/1.1 503 Service Unavailable\r\n" +
		"Server: " + cfg.HTTP.ServerName + "\r\n" +
		"Retry-After: " + strconv.Itoa(cfg.Pool.RetryAfter) + "\r\n" +
		"Connection: close\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Length: 0\r\n\r\n")
}
