package base64_test

import (
	enc "encoding/base64"
	"testing"

	"lodge/shared/base64"

	"github.com/stretchr/testify/assert"
)

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "image/png", base64.GetContentType("data:image/png;base64,aGVsbG8="))
	assert.Empty(t, base64.GetContentType("aGVsbG8="))
	assert.Empty(t, base64.GetContentType("data:image/png"))
}

func TestDecode(t *testing.T) {
	decoded, err := base64.Decode("data:text/plain;base64," + enc.StdEncoding.EncodeToString([]byte("hello")))

	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)
}

func TestPayloadSize(t *testing.T) {
	payload := make([]byte, 300)
	uri := "data:image/png;base64," + enc.StdEncoding.EncodeToString(payload)

	assert.Equal(t, 300, base64.PayloadSize(uri))
}
