package session

import (
	"io"
	"strconv"

	"github.com/httpool/httpool/http"
	"github.com/httpool/httpool/http/status"
	"github.com/httpool/httpool/internal/timer"
)

const crlf = "\r\n"

// respond serializes the head and transfers the body. The head is constructed
// completely before the first byte hits the socket, so the client never sees
// a partial or ambiguous header block. In-memory bodies go out in the same
// write as the head; file streams are copied afterwards in fixed-size chunks.
func (s *Session) respond(response *http.Response) error {
	head := s.appendHead(make([]byte, 0, 256), response)

	if stream := response.BodyStream(); stream != nil {
		defer stream.Close()

		if _, err := s.conn.Write(head); err != nil {
			return err
		}

		_, err := io.CopyBuffer(s.conn, stream, make([]byte, s.cfg.FS.ChunkSize))
		s.logResponse(response)

		return err
	}

	_, err := s.conn.Write(append(head, response.Body()...))
	s.logResponse(response)

	return err
}

// appendHead writes the status line and the full header block, shared across
// every response the session produces: Content-Type, Content-Length, the
// optional attachment disposition, Date, Server and the connection headers
// reflecting the current persistence decision.
func (s *Session) appendHead(buff []byte, response *http.Response) []byte {
	code := response.StatusCode()

	buff = append(buff, "HTTP/1.1 "...)
	buff = strconv.AppendUint(buff, uint64(code), 10)
	buff = append(buff, ' ')
	buff = append(buff, status.Text(code)...)
	buff = append(buff, crlf...)

	buff = appendHeader(buff, "Content-Type", response.ContentTypeValue())
	buff = appendHeader(buff, "Content-Length", strconv.FormatInt(response.ContentLength(), 10))

	if name := response.AttachmentName(); len(name) > 0 {
		buff = appendHeader(buff, "Content-Disposition", `attachment; filename="`+name+`"`)
	}

	buff = appendHeader(buff, "Date", timer.Date())
	buff = appendHeader(buff, "Server", s.cfg.HTTP.ServerName)

	if s.persistent {
		buff = appendHeader(buff, "Connection", "keep-alive")
		buff = appendHeader(buff, "Keep-Alive",
			"timeout="+strconv.Itoa(int(s.cfg.HTTP.KeepAliveTimeout.Seconds()))+
				", max="+strconv.Itoa(s.cfg.HTTP.MaxRequestsPerConn))
	} else {
		buff = appendHeader(buff, "Connection", "close")
	}

	return append(buff, crlf...)
}

func appendHeader(buff []byte, key, value string) []byte {
	buff = append(buff, key...)
	buff = append(buff, ": "...)
	buff = append(buff, value...)

	return append(buff, crlf...)
}

func (s *Session) logResponse(response *http.Response) {
	code := response.StatusCode()
	s.log.Info("response", "status", int(code), "text", string(status.Text(code)))
}
