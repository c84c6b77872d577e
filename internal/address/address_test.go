package address

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHostname(t *testing.T) {
	require.Equal(t, "localhost", Hostname("localhost:8080"))
	require.Equal(t, "localhost", Hostname("localhost"))
	require.Equal(t, "", Hostname(":8080"))
}

func TestIsLoopback(t *testing.T) {
	require.True(t, IsLoopback("localhost"))
	require.True(t, IsLoopback("LocalHost:1234"))
	require.True(t, IsLoopback("127.0.0.1:8080"))
	require.False(t, IsLoopback("127.0.0.2"))
	require.False(t, IsLoopback("example.com:8080"))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "0.0.0.0:80", Normalize(":80"))
	require.Equal(t, "127.0.0.1:80", Normalize("127.0.0.1:80"))
}
