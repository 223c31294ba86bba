package record

import (
	"bytes"
	"errors"

	"github.com/mazrean/json2jsonl/internal/pkg/json"
	"github.com/mazrean/json2jsonl/sequence"
)

// Raw is a passthrough element holding any valid JSON value in compact form.
// Object keys keep their input order.
type Raw []byte

func (r *Raw) UnmarshalJSON(data []byte) error {
	if r == nil {
		return errors.New("record.Raw: UnmarshalJSON on nil pointer")
	}

	if err := sequence.Valid(data); err != nil {
		return err
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(data)))
	if err := json.Compact(buf, data); err != nil {
		return err
	}
	*r = buf.Bytes()

	return nil
}

func (r Raw) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	return r, nil
}
