package http

import (
	"testing"

	"github.com/httpool/httpool/http/method"
	"github.com/httpool/httpool/http/proto"
	"github.com/httpool/httpool/http/status"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("simple GET", func(t *testing.T) {
		request, err := Parse([]byte("GET /index.html HTTP/1.1\r\nHost: localhost:8080\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, method.GET, request.Method)
		require.Equal(t, "GET", request.RawMethod)
		require.Equal(t, "/index.html", request.Path)
		require.Equal(t, proto.HTTP11, request.Proto)
		require.Equal(t, "localhost:8080", request.Headers.Value("host"))
		require.Empty(t, request.Body)
		require.True(t, request.Persistent)
		require.Empty(t, request.SafePath)
	})

	t.Run("header keys are lower-cased and trimmed", func(t *testing.T) {
		request, err := Parse([]byte("GET / HTTP/1.1\r\n  HoSt :  a:1  \r\nContent-Type: text/plain\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "a:1", request.Headers.Value("host"))
		require.Equal(t, "text/plain", request.Headers.Value("Content-Type"))
	})

	t.Run("colonless header lines are ignored", func(t *testing.T) {
		request, err := Parse([]byte("GET / HTTP/1.1\r\nHost: a\r\nnot a header\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, 1, request.Headers.Len())
	})

	t.Run("body is everything after the blank line", func(t *testing.T) {
		request, err := Parse([]byte("POST /x HTTP/1.1\r\nHost: a\r\n\r\nline1\r\nline2"))
		require.NoError(t, err)
		require.Equal(t, method.POST, request.Method)
		require.Equal(t, "line1\r\nline2", string(request.Body))
	})

	for _, line := range []string{
		"GET /\r\n\r\n",
		"GET / HTTP/1.1 extra\r\n\r\n",
		"\r\n\r\n",
		"GET\r\n\r\n",
	} {
		t.Run("malformed request line: "+line, func(t *testing.T) {
			_, err := Parse([]byte(line))
			require.ErrorIs(t, err, status.ErrMalformedRequestLine)
		})
	}

	t.Run("no blank line terminator", func(t *testing.T) {
		_, err := Parse([]byte("GET / HTTP/1.1\r\nHost: a"))
		require.ErrorIs(t, err, status.ErrMalformedRequestLine)
	})

	t.Run("unknown method is preserved raw", func(t *testing.T) {
		request, err := Parse([]byte("BREW /pot HTTP/1.1\r\nHost: a\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, method.Unknown, request.Method)
		require.Equal(t, "BREW", request.RawMethod)
	})
}

func TestPersistence(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		persistent bool
	}{
		{"HTTP/1.1 default", "GET / HTTP/1.1\r\nHost: a\r\n\r\n", true},
		{"HTTP/1.1 close", "GET / HTTP/1.1\r\nHost: a\r\nConnection: close\r\n\r\n", false},
		{"HTTP/1.1 Close mixed case", "GET / HTTP/1.1\r\nHost: a\r\nConnection: Close\r\n\r\n", false},
		{"HTTP/1.0 default", "GET / HTTP/1.0\r\nHost: a\r\n\r\n", false},
		{"HTTP/1.0 keep-alive", "GET / HTTP/1.0\r\nHost: a\r\nConnection: keep-alive\r\n\r\n", true},
		{"unknown protocol", "GET / HTTP/2\r\nHost: a\r\nConnection: keep-alive\r\n\r\n", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request, err := Parse([]byte(tc.raw))
			require.NoError(t, err)
			require.Equal(t, tc.persistent, request.Persistent)
		})
	}
}

func TestContentLength(t *testing.T) {
	require.Equal(t, 5, ContentLength([]byte("POST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello")))
	require.Equal(t, 7, ContentLength([]byte("POST / HTTP/1.1\r\ncontent-length:7\r\n\r\n")))
	require.Equal(t, 0, ContentLength([]byte("GET / HTTP/1.1\r\nHost: a\r\n\r\n")))
	require.Equal(t, 0, ContentLength([]byte("POST / HTTP/1.1\r\nContent-Length: nope\r\n\r\n")))
	require.Equal(t, 0, ContentLength([]byte("POST / HTTP/1.1\r\nContent-Length: -3\r\n\r\n")))
	// declarations below the blank line belong to the body, not the head
	require.Equal(t, 0, ContentLength([]byte("GET / HTTP/1.1\r\n\r\nContent-Length: 9")))
}
