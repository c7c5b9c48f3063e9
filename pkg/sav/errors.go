package sav

import (
	"errors"
	"fmt"
)

var (
	ErrFormat     = errors.New("sav: unrecognised save file")
	ErrChecksum   = errors.New("sav: sector checksum mismatch")
	ErrDirty      = errors.New("sav: unsaved changes, resign before export")
	ErrOutOfRange = errors.New("sav: index out of range")
)

// ChecksumError describes one sector that failed validation. It is reported
// through Problems and never stops a save from opening.
type ChecksumError struct {
	Copy     int
	Sector   int
	Block    int
	Stored   uint16
	Computed uint16
	Reason   string
}

func (e *ChecksumError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("sav: copy %d sector %d: %s", e.Copy, e.Sector, e.Reason)
	}
	return fmt.Sprintf("sav: copy %d sector %d (block %d): checksum %#04x, computed %#04x",
		e.Copy, e.Sector, e.Block, e.Stored, e.Computed)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksum }

func rangeErr(what string, v, lim int) error {
	return fmt.Errorf("%w: %s %d (max %d)", ErrOutOfRange, what, v, lim)
}
