// Package session drives one accepted connection through repeated
// request/response cycles: receive, parse, validate, handle, then either loop
// (keep-alive) or close. A session owns its socket exclusively and closes it
// exactly once, no matter how the loop ends.
package session

import (
	"errors"
	"log/slog"
	"net"

	"github.com/httpool/httpool/config"
	"github.com/httpool/httpool/http"
	"github.com/httpool/httpool/http/method"
	"github.com/httpool/httpool/http/status"
	"github.com/httpool/httpool/internal/policy"
	"github.com/httpool/httpool/internal/statics"
	"github.com/httpool/httpool/internal/timer"
	"github.com/httpool/httpool/internal/uploads"
)

type Session struct {
	conn    net.Conn
	cfg     *config.Config
	policy  policy.Policy
	statics statics.Resolver
	uploads uploads.Sink
	log     *slog.Logger

	// persistent is re-derived from every parsed request and may only be
	// revoked afterwards, never granted back within the same cycle.
	persistent bool
	// served counts attempted cycles, including ones that fail parsing.
	served int
	buff   []byte
}

func New(
	conn net.Conn,
	cfg *config.Config,
	pol policy.Policy,
	resolver statics.Resolver,
	sink uploads.Sink,
	log *slog.Logger,
) *Session {
	return &Session{
		conn:    conn,
		cfg:     cfg,
		policy:  pol,
		statics: resolver,
		uploads: sink,
		log:     log,
		buff:    make([]byte, 0, cfg.HTTP.MaxRequestSize),
	}
}

// Serve runs the session until the connection is done. All exits, including
// panics from deeper layers, funnel through here: the fault is logged, a 500
// is attempted, and the socket is closed.
func (s *Session) Serve() {
	defer func() {
		if fault := recover(); fault != nil {
			s.log.Error("error during connection handling", "error", fault)
			s.persistent = false
			_ = s.respond(http.Error(status.ErrInternalServerError))
		}

		_ = s.conn.Close()
	}()

	for s.cycle() {
	}
}

// cycle performs one full request/response exchange and reports whether the
// connection should be kept for another one.
func (s *Session) cycle() bool {
	s.served++

	raw, err := s.receive()
	switch {
	case err == nil:
	case errors.As(err, new(status.HTTPError)):
		// the request overflowed the size ceiling: the one receive failure
		// that still gets an answer
		s.respond(http.Error(err))
		return false
	default:
		// peer closed, idle timeout or transport failure: nobody is
		// listening anymore, end silently
		return false
	}

	request, err := http.Parse(raw)
	if err != nil {
		s.respond(http.Error(err))
		return false
	}

	s.persistent = request.Persistent
	s.log.Info("request",
		"method", request.RawMethod, "path", request.Path, "proto", request.Proto.String())

	// the ceiling is checked before security validation on purpose: a request
	// that would fail validation must not be able to extend the connection
	// past its limit
	if s.served > s.cfg.HTTP.MaxRequestsPerConn {
		s.log.Info("connection limit reached, closing")
		return s.terminate(status.ErrConnectionLimit)
	}

	if _, err = s.policy.Validate(request); err != nil {
		s.log.Warn("security violation", "path", request.Path, "reason", err)
		return s.terminate(err)
	}

	if !s.handle(request) {
		return false
	}

	if !s.persistent {
		s.log.Info("connection: close")
		return false
	}

	s.log.Info("connection: keep-alive", "requests", s.served)

	return true
}

func (s *Session) handle(request *http.Request) bool {
	switch request.Method {
	case method.GET:
		return s.get(request)
	case method.POST:
		return s.post(request)
	default:
		return s.terminate(status.ErrMethodNotAllowed)
	}
}

func (s *Session) get(request *http.Request) bool {
	file, err := s.statics.Resolve(request.SafePath)
	switch {
	case err == nil:
	case errors.Is(err, status.ErrInternalServerError):
		// a file that exists but can't be opened is a transfer failure,
		// not something the client can fix by retrying on this connection
		return s.terminate(err)
	default:
		// 404 and 415 don't poison the connection
		return s.respond(http.Error(err)) == nil && s.persistent
	}

	response := http.NewResponse().
		ContentType(file.MIME).
		Stream(file.Stream, file.Size)
	if file.Attachment {
		response.Attachment(file.Name)
	}

	if err = s.respond(response); err != nil {
		s.log.Error("file transfer failed", "file", file.Name, "error", err)
		return false
	}

	s.log.Info("sent file", "file", file.Name, "size", file.Size)

	return s.persistent
}

func (s *Session) post(request *http.Request) bool {
	result, err := s.uploads.Store(request.ContentType(), request.Body)
	switch {
	case err == nil:
	case errors.Is(err, status.ErrInternalServerError):
		s.log.Error("upload persistence failed", "error", err)
		return s.terminate(err)
	default:
		return s.respond(http.Error(err)) == nil && s.persistent
	}

	response, err := http.NewResponse().Code(status.Created).TryJSON(result)
	if err != nil {
		return s.terminate(status.ErrInternalServerError)
	}

	if err = s.respond(response); err != nil {
		return false
	}

	s.log.Info("created file", "filepath", result.Filepath)

	return s.persistent
}

// terminate answers with the error and ends the session. The response still
// reflects the persistence known before the failure; the flag is dropped only
// after the bytes are out.
func (s *Session) terminate(err error) bool {
	_ = s.respond(http.Error(err))
	s.persistent = false
	return false
}

// receive reads one complete request: it loops until the blank-line head
// terminator plus the declared Content-Length bytes are in, bounded by the
// request size ceiling. An empty first read, a timeout or any transport
// failure returns the raw error for the caller to end the session silently.
func (s *Session) receive() ([]byte, error) {
	if err := s.conn.SetReadDeadline(timer.Now().Add(s.cfg.HTTP.KeepAliveTimeout)); err != nil {
		return nil, err
	}

	s.buff = s.buff[:0]

	for {
		if len(s.buff) == cap(s.buff) {
			return nil, status.ErrRequestTooLarge
		}

		n, err := s.conn.Read(s.buff[len(s.buff):cap(s.buff)])
		s.buff = s.buff[:len(s.buff)+n]

		if complete(s.buff) {
			return s.buff, nil
		}

		if err != nil {
			// includes io.EOF with a half-received request: the peer left
			// mid-sentence and there is nobody to answer
			return nil, err
		}
	}
}

// complete reports whether buff holds the full head and the declared body.
func complete(buff []byte) bool {
	head := headEnd(buff)
	if head == -1 {
		return false
	}

	return len(buff)-head >= http.ContentLength(buff)
}

func headEnd(buff []byte) int {
	for i := 0; i+3 < len(buff); i++ {
		if buff[i] == '\r' && buff[i+1] == '\n' && buff[i+2] == '\r' && buff[i+3] == '\n' {
			return i + 4
		}
	}

	return -1
}
