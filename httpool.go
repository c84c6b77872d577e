// Package httpool is a small concurrent TCP server speaking a restricted
// subset of HTTP/1.0 and HTTP/1.1: static files out, JSON uploads in,
// persistent connections up to configured limits, served by a fixed worker
// pool with admission control.
package httpool

import (
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/httpool/httpool/config"
	"github.com/httpool/httpool/internal/dispatch"
	"github.com/httpool/httpool/internal/policy"
	"github.com/httpool/httpool/internal/session"
	"github.com/httpool/httpool/internal/statics"
	"github.com/httpool/httpool/internal/uploads"
	"github.com/httpool/httpool/transport"
)

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	tcp     *transport.TCP
	pool    *dispatch.Pool
	onStart func()
}

func New() *App {
	return &App{
		cfg: config.Default(),
		log: slog.Default(),
		tcp: transport.NewTCP(),
	}
}

// Tune replaces default settings. Zero fields keep their defaults.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = config.Fill(cfg)
	return a
}

// Log replaces the default process logger.
func (a *App) Log(log *slog.Logger) *App {
	a.log = log
	return a
}

// NotifyOnStart calls the callback once the listener is bound and the worker
// pool is running.
func (a *App) NotifyOnStart(cb func()) *App {
	a.onStart = cb
	return a
}

// Addr returns the bound listener address. Valid only after Serve bound the
// socket, which NotifyOnStart signals.
func (a *App) Addr() net.Addr {
	return a.tcp.Addr()
}

// Serve binds the listener, starts the worker pool and runs the accept loop
// until Stop. On return the pool has been joined and the socket closed.
func (a *App) Serve() error {
	if err := a.setupDirectories(); err != nil {
		return err
	}

	if err := a.tcp.Bind(a.cfg.NET.Host + ":" + strconv.Itoa(a.cfg.NET.Port)); err != nil {
		return err
	}

	// the policy must know the actually bound port: with port 0 the
	// configured one says nothing
	port := a.tcp.Addr().(*net.TCPAddr).Port
	expectedHost := a.cfg.NET.Host + ":" + strconv.Itoa(port)

	pol, err := policy.New(expectedHost, a.cfg.FS.ResourceDir)
	if err != nil {
		return err
	}

	resolver := statics.NewResolver()
	sink := uploads.NewSink(a.cfg.FS.UploadDir)

	a.pool = dispatch.NewPool(a.cfg, a.log, func(conn net.Conn) {
		session.New(conn, a.cfg, pol, resolver, sink, a.log).Serve()
	})
	a.pool.Start()

	a.log.Info("HTTP server started", "addr", "http://"+expectedHost)
	a.log.Info("worker pool size", "workers", a.cfg.Pool.Workers)
	a.log.Info("serving files", "dir", a.cfg.FS.ResourceDir)

	if a.onStart != nil {
		a.onStart()
	}

	err = a.tcp.Listen(a.cfg.NET, a.pool.Submit)

	// workers drain their current connections before the socket goes away
	a.pool.Stop()
	_ = a.tcp.Close()
	a.log.Info("server stopped")

	return err
}

// Stop makes the accept loop exit; Serve then joins the pool and closes the
// listener. The call is not blocking.
func (a *App) Stop() {
	a.tcp.Stop()
}

func (a *App) setupDirectories() error {
	for _, dir := range []string{a.cfg.FS.ResourceDir, a.cfg.FS.UploadDir} {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}

		if err = os.MkdirAll(abs, 0o755); err != nil {
			return err
		}
	}

	return nil
}
