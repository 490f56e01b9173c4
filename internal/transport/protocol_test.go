package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte(`{"kind":"ls","dir":"/"}`)))

	payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"ls","dir":"/"}`, string(payload))
}

func TestReadFrameRejectsOversizeLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&bytes.Buffer{}, nil)) // sanity: zero-length frame doesn't panic

	oversized := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	buf.Write(oversized)
	_, err := ReadFrame(&buf)
	assert.Error(t, err)
}

func TestDecodeRequestRequiresKind(t *testing.T) {
	_, err := DecodeRequest([]byte(`{"dir":"/"}`))
	assert.Error(t, err)
}

func TestDecodeRequestParsesArgs(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"kind":"ls","dir":"/music"}`))
	require.NoError(t, err)
	assert.Equal(t, "ls", req.Kind)

	var dir string
	present, err := req.Arg("dir", &dir)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "/music", dir)
}
