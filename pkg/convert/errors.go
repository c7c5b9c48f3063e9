package convert

import (
	"errors"
	"fmt"

	"github.com/samcharles93/pkxcore/pkg/pkx"
)

var (
	// ErrConversionUnsupported reports a generation pair with no conversion.
	ErrConversionUnsupported = errors.New("convert: conversion unsupported")
	// ErrIncompatible reports a record that cannot be transferred at all,
	// such as an egg or a species the target generation lacks. It matches
	// ErrConversionUnsupported.
	ErrIncompatible = fmt.Errorf("%w: record not transferable", ErrConversionUnsupported)
	// ErrInvalidConfig reports a Config rejected by Validate.
	ErrInvalidConfig = errors.New("convert: invalid config")
)

// UnsupportedError names the rejected generation pair.
type UnsupportedError struct {
	From pkx.Generation
	To   pkx.Generation
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("convert: %s to %s is not supported", e.From, e.To)
}

func (e *UnsupportedError) Unwrap() error { return ErrConversionUnsupported }

func incompatible(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrIncompatible}, args...)...)
}

// firstErr returns the first non-nil error. Arguments are evaluated left to
// right, so a list of setter calls runs in order.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
