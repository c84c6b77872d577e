package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	require.Equal(t, GET, Parse("GET"))
	require.Equal(t, POST, Parse("POST"))
	require.Equal(t, Unknown, Parse("PUT"))
	require.Equal(t, Unknown, Parse("get"))
	require.Equal(t, Unknown, Parse(""))
}
