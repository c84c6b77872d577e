package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/httpool/httpool"
	"github.com/httpool/httpool/config"
)

func main() {
	cfg := config.Default()

	flag.StringVar(&cfg.FS.ResourceDir, "resources", cfg.FS.ResourceDir, "static file root directory")
	flag.StringVar(&cfg.FS.UploadDir, "uploads", cfg.FS.UploadDir, "upload directory")
	flag.IntVar(&cfg.HTTP.MaxRequestSize, "max-request-size", cfg.HTTP.MaxRequestSize, "request size ceiling in bytes")
	flag.IntVar(&cfg.Pool.QueueCapacity, "queue", cfg.Pool.QueueCapacity, "connection queue capacity")
	flag.DurationVar(&cfg.HTTP.KeepAliveTimeout, "idle-timeout", cfg.HTTP.KeepAliveTimeout, "keep-alive idle timeout")
	flag.IntVar(&cfg.HTTP.MaxRequestsPerConn, "max-requests", cfg.HTTP.MaxRequestsPerConn, "max requests per connection")
	flag.Parse()

	// positional arguments [port] [host] [workers]; invalid values silently
	// fall back to defaults
	args := flag.Args()
	if len(args) > 0 {
		if port, err := strconv.Atoi(args[0]); err == nil {
			cfg.NET.Port = port
		}
	}
	if len(args) > 1 {
		cfg.NET.Host = args[1]
	}
	if len(args) > 2 {
		if workers, err := strconv.Atoi(args[2]); err == nil {
			cfg.Pool.Workers = workers
		}
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.DateTime))
			}

			return a
		},
	}))

	app := httpool.New().Tune(cfg).Log(log)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-interrupt
		log.Info("server shutting down...")
		app.Stop()
	}()

	if err := app.Serve(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
