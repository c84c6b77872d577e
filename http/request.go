package http

import (
	"github.com/httpool/httpool/http/headers"
	"github.com/httpool/httpool/http/method"
	"github.com/httpool/httpool/http/proto"
)

// Request is owned by exactly one session for the duration of one
// request/response cycle. A fresh instance is produced by Parse for every
// cycle, so nothing ever leaks between requests on a persistent connection.
type Request struct {
	// Method is the closed method variant; RawMethod keeps the original token
	// for logging unsupported methods.
	Method    method.Method
	RawMethod string
	Path      string
	Proto     proto.Proto
	Headers   headers.Headers
	Body      []byte
	// Persistent is the keep-alive decision derived from the protocol version
	// and the Connection header. The session may later revoke it, never grant it.
	Persistent bool
	// SafePath is the resolved filesystem path. It is non-empty only after the
	// security policy accepted the request.
	SafePath string
}

func (r *Request) ContentType() string {
	return r.Headers.Value("content-type")
}

func (r *Request) Host() (string, bool) {
	return r.Headers.Lookup("host")
}
