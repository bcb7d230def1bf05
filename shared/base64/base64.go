package base64

import (
	enc "encoding/base64"
	"strings"
)

const dataURIPrefix = "data:"

// GetContentType extracts the MIME type from a base64 data URI
// ("data:image/png;base64,...."). It returns an empty string when the
// value is not a data URI.
func GetContentType(value string) string {
	if !strings.HasPrefix(value, dataURIPrefix) {
		return ""
	}

	rest := value[len(dataURIPrefix):]

	semicolon := strings.Index(rest, ";")
	if semicolon == -1 {
		return ""
	}

	return rest[:semicolon]
}

// Decode strips the data URI header (when present) and decodes the payload.
func Decode(value string) ([]byte, error) {
	if idx := strings.Index(value, ","); strings.HasPrefix(value, dataURIPrefix) && idx != -1 {
		value = value[idx+1:]
	}

	return enc.StdEncoding.DecodeString(value)
}

// PayloadSize returns the decoded byte size of a base64 data URI without
// decoding it. Used by the file-size validator.
func PayloadSize(value string) int {
	if idx := strings.Index(value, ","); strings.HasPrefix(value, dataURIPrefix) && idx != -1 {
		value = value[idx+1:]
	}

	padding := strings.Count(value, "=")

	return len(value)/4*3 - padding
}
