package json

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Unmarshal decodes data into v, copying any strings it retains.
// go-json is used on every architecture so data may be reused after the call.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Compact appends to dst the JSON-encoded src with insignificant space characters elided.
// It fails when src is not valid JSON.
func Compact(dst *bytes.Buffer, src []byte) error {
	return json.Compact(dst, src)
}
