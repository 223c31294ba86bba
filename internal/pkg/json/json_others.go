//go:build !amd64 && !arm64

// This file is used when building for architectures Sonic does not support, utilizing the go-json library for JSON operations

package json // Package json provides a unified interface for JSON encoding and decoding operations

import (
	"github.com/goccy/go-json"
)

const Library = "github.com/goccy/go-json"

// Marshal encodes v as compact JSON without escaping HTML characters
func Marshal(v any) ([]byte, error) {
	return json.MarshalNoEscape(v)
}

// UnmarshalNoCopy decodes data into v.
// go-json copies string contents, so the result does not borrow from data.
func UnmarshalNoCopy(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
