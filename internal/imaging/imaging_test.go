package imaging

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIngestRoundTrip(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}

	img, err := Ingest(raw, "image/png", 1<<20)
	require.NoError(t, err)
	require.Equal(t, "image/png", img.MIME)
	require.True(t, strings.HasPrefix(img.DataURL, "data:image/png;base64,"))

	payload := strings.TrimPrefix(img.DataURL, "data:image/png;base64,")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	require.True(t, bytes.Equal(raw, decoded))
}

func TestIngestMissingPayload(t *testing.T) {
	_, err := Ingest(nil, "image/png", 1<<20)
	require.ErrorIs(t, err, ErrMissingPayload)
}

func TestIngestTooLarge(t *testing.T) {
	raw := make([]byte, 17)
	_, err := Ingest(raw, "image/png", 16)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestIngestNotAnImage(t *testing.T) {
	_, err := Ingest([]byte("hello"), "text/plain", 1<<20)
	require.ErrorIs(t, err, ErrUnsupportedMediaType)

	_, err = Ingest([]byte("hello"), "", 1<<20)
	require.ErrorIs(t, err, ErrUnsupportedMediaType)
}
