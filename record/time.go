package record

import (
	"fmt"
	"time"

	"github.com/mazrean/json2jsonl/internal/pkg/json"
)

const (
	localDateLayout     = "1/2/2006"
	localDateTimeLayout = "1/2/2006 15:04"

	localDateOutputLayout     = "2006-01-02"
	localDateTimeOutputLayout = "2006-01-02T15:04:05"
)

// Timestamp is an RFC 3339 timestamp normalized to UTC
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	s, err := unmarshalText(data)
	if err != nil {
		return err
	}

	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parse %q as RFC 3339 timestamp: %w", s, err)
	}
	t.Time = parsed.UTC()

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	utc := t.UTC()

	// fractional seconds are written in groups of three digits
	layout := "2006-01-02T15:04:05Z07:00"
	switch nsec := utc.Nanosecond(); {
	case nsec == 0:
	case nsec%int(time.Millisecond) == 0:
		layout = "2006-01-02T15:04:05.000Z07:00"
	case nsec%int(time.Microsecond) == 0:
		layout = "2006-01-02T15:04:05.000000Z07:00"
	default:
		layout = "2006-01-02T15:04:05.000000000Z07:00"
	}

	return quote(utc.Format(layout)), nil
}

// LocalDate is a calendar date without a time zone, written MM/DD/YYYY in source data
type LocalDate struct {
	time.Time
}

func (d *LocalDate) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	s, err := unmarshalText(data)
	if err != nil {
		return err
	}

	parsed, err := time.Parse(localDateLayout, s)
	if err != nil {
		return fmt.Errorf("parse %q as MM/DD/YYYY: %w", s, err)
	}
	d.Time = parsed

	return nil
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	return quote(d.Format(localDateOutputLayout)), nil
}

// LocalDateTime is a date and time without a time zone, written MM/DD/YYYY HH:MM in source data
type LocalDateTime struct {
	time.Time
}

func (d *LocalDateTime) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	s, err := unmarshalText(data)
	if err != nil {
		return err
	}

	parsed, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse %q as MM/DD/YYYY HH:MM: %w", s, err)
	}
	d.Time = parsed

	return nil
}

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	return quote(d.Format(localDateTimeOutputLayout)), nil
}

func unmarshalText(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("expected a string: %w", err)
	}

	return s, nil
}

func isNull(data []byte) bool {
	return string(data) == "null"
}

func quote(s string) []byte {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	b = append(b, s...)
	return append(b, '"')
}
