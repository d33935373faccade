package imaging

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrMissingPayload       = errors.New("Icon image is required.")
	ErrPayloadTooLarge      = errors.New("Icon image is too large.")
	ErrUnsupportedMediaType = errors.New("Icon must be an image file.")
)

// InlineImage is an icon encoded as a data URL, renderable directly
// by an <img> tag without a separate blob store.
type InlineImage struct {
	MIME    string
	DataURL string
}

func Ingest(raw []byte, declaredMIME string, maxBytes int64) (*InlineImage, error) {
	if len(raw) == 0 {
		return nil, ErrMissingPayload
	}
	if int64(len(raw)) > maxBytes {
		return nil, ErrPayloadTooLarge
	}
	mime := strings.TrimSpace(declaredMIME)
	if !strings.HasPrefix(mime, "image/") {
		return nil, ErrUnsupportedMediaType
	}

	return &InlineImage{
		MIME:    mime,
		DataURL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw),
	}, nil
}
