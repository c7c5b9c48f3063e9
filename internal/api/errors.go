package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/pkxcore/pkg/convert"
	"github.com/samcharles93/pkxcore/pkg/pkx"
	"github.com/samcharles93/pkxcore/pkg/sav"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg   string
	param string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(param, msg string) error {
	return invalidRequestError{msg: msg, param: param}
}

// classify maps a library error to an HTTP status and error type.
func classify(err error) (status int, errType, param string) {
	var inv invalidRequestError
	switch {
	case errors.As(err, &inv):
		return http.StatusBadRequest, "invalid_request_error", inv.param
	case errors.Is(err, pkx.ErrFormat), errors.Is(err, sav.ErrFormat):
		return http.StatusBadRequest, "invalid_format_error", "data"
	case errors.Is(err, pkx.ErrOutOfRange), errors.Is(err, sav.ErrOutOfRange):
		return http.StatusBadRequest, "out_of_range_error", ""
	case errors.Is(err, convert.ErrConversionUnsupported):
		return http.StatusUnprocessableEntity, "conversion_unsupported_error", "target"
	}
	return http.StatusInternalServerError, "server_error", ""
}
