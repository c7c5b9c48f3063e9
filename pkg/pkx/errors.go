package pkx

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports a buffer that matches no known layout.
	ErrFormat = errors.New("pkx: invalid record format")
	// ErrOutOfRange reports a setter value outside the field's domain.
	ErrOutOfRange = errors.New("pkx: value out of range")
	// ErrEncrypted reports a field write to a record still in its stored form.
	ErrEncrypted = errors.New("pkx: record is encrypted")
)

// FormatError describes why a buffer was rejected at construction.
type FormatError struct {
	Generation Generation
	Length     int
	Reason     string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("pkx: %s record: %s", e.Generation, e.Reason)
	}
	box, party := e.Generation.Lengths()
	return fmt.Sprintf("pkx: %s record length %d, want %d or %d", e.Generation, e.Length, box, party)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// RangeError is returned by setters. The buffer is left untouched.
type RangeError struct {
	Field string
	Value int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("pkx: %s value %d out of range (max %d)", e.Field, e.Value, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

func rangeErr(field string, v, lim int64) error {
	return &RangeError{Field: field, Value: v, Max: lim}
}
