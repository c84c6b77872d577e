package dispatch

import (
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/httpool/httpool/config"
	"github.com/httpool/httpool/internal/dummy"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(workers, capacity int) *config.Config {
	cfg := config.Default()
	cfg.Pool.Workers = workers
	cfg.Pool.QueueCapacity = capacity
	return cfg
}

// recorder counts how many times each connection was handed to a worker.
type recorder struct {
	mu    sync.Mutex
	seen  map[net.Conn]int
	total int
}

func newRecorder() *recorder {
	return &recorder{seen: make(map[net.Conn]int)}
}

func (r *recorder) serve(conn net.Conn) {
	r.mu.Lock()
	r.seen[conn]++
	r.total++
	r.mu.Unlock()
	_ = conn.Close()
}

func (r *recorder) served() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func TestRejectionWhenFull(t *testing.T) {
	rec := newRecorder()
	// no Start: nothing drains the queue, so capacity is reached deterministically
	pool := NewPool(testConfig(1, 2), testLogger(), rec.serve)

	first, second := dummy.NewConn(), dummy.NewConn()
	pool.Submit(first)
	pool.Submit(second)
	require.Empty(t, first.Written())
	require.Empty(t, second.Written())

	rejected := dummy.NewConn()
	pool.Submit(rejected)

	response := string(rejected.Written())
	require.Contains(t, response, "HTTP/1.1 503 Service Unavailable\r\n")
	require.Contains(t, response, "Retry-After: 5\r\n")
	require.Contains(t, response, "Connection: close\r\n")
	require.Contains(t, response, "Content-Length: 0\r\n")
	require.Equal(t, 1, rejected.Closes)

	// queued connections were never touched
	require.Equal(t, 0, first.Closes)
	require.Equal(t, 0, second.Closes)
}

func TestEveryConnectionServedExactlyOnce(t *testing.T) {
	rec := newRecorder()
	pool := NewPool(testConfig(5, 50), testLogger(), rec.serve)
	pool.Start()
	defer pool.Stop()

	conns := make([]*dummy.Conn, 20)
	for i := range conns {
		conns[i] = dummy.NewConn()
		pool.Submit(conns[i])
	}

	require.Eventually(t, func() bool {
		return rec.served() == len(conns)
	}, time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, conn := range conns {
		require.Equal(t, 1, rec.seen[conn], "a connection must be dequeued exactly once")
	}
}

func TestStopJoinsWorkersAndDrainsQueue(t *testing.T) {
	block := make(chan struct{})
	entered := make(chan struct{}, 10)

	pool := NewPool(testConfig(1, 10), testLogger(), func(conn net.Conn) {
		entered <- struct{}{}
		<-block
		_ = conn.Close()
	})
	pool.Start()

	busy := dummy.NewConn()
	pool.Submit(busy)
	<-entered

	// queued behind the busy worker, never dequeued
	leftover := dummy.NewConn()
	pool.Submit(leftover)

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Stop returned while a worker was still busy")
	case <-time.After(50 * time.Millisecond):
	}

	close(block)
	<-done

	require.Equal(t, 1, busy.Closes)
	require.Equal(t, 1, leftover.Closes, "undequeued connections are closed on shutdown")
}

func TestWorkerSurvivesPanic(t *testing.T) {
	rec := newRecorder()
	panicking := dummy.NewConn()

	pool := NewPool(testConfig(1, 10), testLogger(), func(conn net.Conn) {
		if conn == panicking {
			panic("session fault")
		}
		rec.serve(conn)
	})
	pool.Start()
	defer pool.Stop()

	healthy := dummy.NewConn()
	pool.Submit(panicking)
	pool.Submit(healthy)

	require.Eventually(t, func() bool {
		return rec.served() == 1
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, 1, panicking.Closes, "a faulted connection is still closed")
	require.Equal(t, 1, healthy.Closes)
}
