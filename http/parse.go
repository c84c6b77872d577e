package http

import (
	"strconv"
	"strings"

	"github.com/httpool/httpool/http/headers"
	"github.com/httpool/httpool/http/method"
	"github.com/httpool/httpool/http/proto"
	"github.com/httpool/httpool/http/status"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const crlf = "\r\n"

// Parse frames a complete raw request into a Request. The input must contain
// the whole head (the receive loop guarantees the blank-line terminator);
// everything after the first empty line is taken as the body verbatim.
//
// Framing rules:
//   - the request line must consist of exactly three whitespace-separated
//     tokens, otherwise status.ErrMalformedRequestLine is returned;
//   - header lines are split on the first colon, the key lower-cased and both
//     parts trimmed; lines without a colon are silently skipped;
//   - a head without a terminating empty line is a framing error.
func Parse(raw []byte) (*Request, error) {
	lines := strings.Split(uf.B2S(raw), crlf)

	parts := strings.Fields(lines[0])
	if len(parts) != 3 {
		return nil, status.ErrMalformedRequestLine
	}

	blank := -1
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) == 0 {
			blank = i
			break
		}
	}
	if blank == -1 {
		return nil, status.ErrMalformedRequestLine
	}

	hdrs := headers.New()
	for _, line := range lines[1:blank] {
		colon := strings.IndexByte(line, ':')
		if colon == -1 {
			continue
		}

		hdrs.Set(strings.TrimSpace(line[:colon]), strings.TrimSpace(line[colon+1:]))
	}

	request := &Request{
		Method:    method.Parse(parts[0]),
		RawMethod: parts[0],
		Path:      parts[1],
		Proto:     proto.FromString(parts[2]),
		Headers:   hdrs,
		Body:      uf.S2B(strings.Join(lines[blank+1:], crlf)),
	}
	request.Persistent = persistent(request.Proto, hdrs.Value("connection"))

	return request, nil
}

// persistent implements the keep-alive derivation: HTTP/1.1 is persistent
// unless the client asked to close, HTTP/1.0 only if it asked to keep alive,
// and unrecognized protocols never are.
func persistent(p proto.Proto, connection string) bool {
	switch p {
	case proto.HTTP11:
		return !strcomp.EqualFold(connection, "close")
	case proto.HTTP10:
		return strcomp.EqualFold(connection, "keep-alive")
	default:
		return false
	}
}

// ContentLength extracts the declared body length from a raw (possibly still
// incomplete) head. Used by the receive loop to decide how many body bytes to
// wait for; absent or malformed declarations count as zero.
func ContentLength(raw []byte) int {
	for _, line := range strings.Split(uf.B2S(raw), crlf) {
		if len(line) == 0 {
			break
		}

		colon := strings.IndexByte(line, ':')
		if colon == -1 || !strcomp.EqualFold(strings.TrimSpace(line[:colon]), "content-length") {
			continue
		}

		length, err := strconv.Atoi(strings.TrimSpace(line[colon+1:]))
		if err != nil || length < 0 {
			return 0
		}

		return length
	}

	return 0
}
