package qr_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"quickqueue/internal/qr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURIEncoder_Encode(t *testing.T) {
	encoder := qr.NewDataURIEncoder()

	token, err := encoder.Encode("TICKET:TKT-ABCD1234:EVENT:3f2504e0-4f89-11d3-9a0c-0305e82c3301")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(token, "data:image/png;base64,"))

	// base64 部分要是合法的 PNG
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), raw[:4])
}

func TestDataURIEncoder_DistinctContent(t *testing.T) {
	encoder := qr.NewDataURIEncoder()

	a, err := encoder.Encode("TICKET:TKT-AAAA0000:EVENT:e1")
	require.NoError(t, err)
	b, err := encoder.Encode("TICKET:TKT-BBBB1111:EVENT:e1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
