//go:build amd64 || arm64

package json // Package json provides a unified interface for JSON encoding and decoding operations

import (
	"unsafe"

	"github.com/bytedance/sonic"
)

const Library = "github.com/bytedance/sonic"

// api leaves CopyString off so decoded strings point into the input
var api = sonic.Config{
	CompactMarshaler: true,
}.Froze()

// Marshal encodes v as compact JSON using the high-performance Sonic encoder
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// UnmarshalNoCopy decodes data into v without copying string contents.
// Strings without escape sequences reference data directly, so data must stay
// valid and unmodified for as long as v is in use.
func UnmarshalNoCopy(data []byte, v any) error {
	return api.UnmarshalFromString(unsafe.String(unsafe.SliceData(data), len(data)), v)
}
