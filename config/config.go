package config

import "time"

type (
	NET struct {
		// Host is the address the listener binds to and the hostname part of
		// the Host header clients are expected to present.
		Host string
		// Port to listen on. Port 0 picks a free one, which is mainly useful
		// in tests.
		Port int `test:"nullable"`
		// AcceptLoopInterruptPeriod controls how often the Accept() call is
		// interrupted in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
	}

	Pool struct {
		// Workers is the fixed number of long-lived workers serving accepted
		// connections. Clamped to [MinWorkers, MaxWorkers] by Fill.
		Workers int
		// QueueCapacity bounds the shared connection queue. An accepted
		// connection arriving at a full queue is rejected with 503 instead
		// of blocking the accept loop.
		QueueCapacity int
		// RetryAfter is the hint advertised to rejected clients, in seconds.
		RetryAfter int
	}

	HTTP struct {
		// MaxRequestSize is the hard cap on a single request, head and body
		// included.
		MaxRequestSize int
		// KeepAliveTimeout is how long an idle persistent connection is kept
		// open between requests.
		KeepAliveTimeout time.Duration
		// MaxRequestsPerConn limits how many cycles a single connection may
		// run; the cycle after the limit is answered 400 and the connection
		// is closed.
		MaxRequestsPerConn int
		// ServerName is the Server response header value.
		ServerName string
	}

	FS struct {
		// ResourceDir is the static file root. Everything served must resolve
		// strictly under it.
		ResourceDir string
		// UploadDir is where POSTed JSON documents are stored.
		UploadDir string
		// ChunkSize is the buffer size used when streaming files to a socket.
		ChunkSize int
	}
)

const (
	MinWorkers = 1
	MaxWorkers = 100
)

// Config holds settings used across the server: bind address, pool geometry,
// protocol limits and filesystem roots.
type Config struct {
	NET  NET
	Pool Pool
	HTTP HTTP
	FS   FS
}

func Default() *Config {
	return &Config{
		NET: NET{
			Host:                      "127.0.0.1",
			Port:                      8080,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Pool: Pool{
			Workers:       10,
			QueueCapacity: 50,
			RetryAfter:    5,
		},
		HTTP: HTTP{
			MaxRequestSize:     8192,
			KeepAliveTimeout:   30 * time.Second,
			MaxRequestsPerConn: 100,
			ServerName:         "httpool",
		},
		FS: FS{
			ResourceDir: "resources",
			UploadDir:   "resources/uploads",
			ChunkSize:   8192,
		},
	}
}

// Fill replaces zero fields of the passed config with defaults and clamps the
// worker count into its permitted range, so a partially initialized Config is
// always safe to run with.
func Fill(original *Config) *Config {
	if original == nil {
		return Default()
	}

	defaults := Default()

	original.NET.Host = customOrDefault(original.NET.Host, defaults.NET.Host)
	original.NET.AcceptLoopInterruptPeriod = customOrDefault(
		original.NET.AcceptLoopInterruptPeriod, defaults.NET.AcceptLoopInterruptPeriod,
	)
	original.Pool.Workers = clamp(
		customOrDefault(original.Pool.Workers, defaults.Pool.Workers),
		MinWorkers, MaxWorkers,
	)
	original.Pool.QueueCapacity = customOrDefault(original.Pool.QueueCapacity, defaults.Pool.QueueCapacity)
	original.Pool.RetryAfter = customOrDefault(original.Pool.RetryAfter, defaults.Pool.RetryAfter)
	original.HTTP.MaxRequestSize = customOrDefault(original.HTTP.MaxRequestSize, defaults.HTTP.MaxRequestSize)
	original.HTTP.KeepAliveTimeout = customOrDefault(original.HTTP.KeepAliveTimeout, defaults.HTTP.KeepAliveTimeout)
	original.HTTP.MaxRequestsPerConn = customOrDefault(original.HTTP.MaxRequestsPerConn, defaults.HTTP.MaxRequestsPerConn)
	original.HTTP.ServerName = customOrDefault(original.HTTP.ServerName, defaults.HTTP.ServerName)
	original.FS.ResourceDir = customOrDefault(original.FS.ResourceDir, defaults.FS.ResourceDir)
	original.FS.UploadDir = customOrDefault(original.FS.UploadDir, defaults.FS.UploadDir)
	original.FS.ChunkSize = customOrDefault(original.FS.ChunkSize, defaults.FS.ChunkSize)

	return original
}

func customOrDefault[T comparable](custom, defaultVal T) T {
	var zero T
	if custom == zero {
		return defaultVal
	}

	return custom
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}

	return value
}
