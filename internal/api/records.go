package api

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pkxcore/pkg/pkx"
)

func (s *Server) handleDecodeRecord(c *echo.Context) error {
	req, err := decodeJSON[RecordRequest](c.Request().Body)
	if err != nil {
		return writeFailure(c, err)
	}
	pk, err := s.parseRecord(req)
	if err != nil {
		return writeFailure(c, err)
	}
	return writeJSON(c, http.StatusOK, RecordResponse{
		ID:     newObjectID("rec"),
		Object: "record",
		Record: NewRecordView(pk),
	})
}

func (s *Server) handleConvertRecord(c *echo.Context) error {
	req, err := decodeJSON[ConvertRequest](c.Request().Body)
	if err != nil {
		return writeFailure(c, err)
	}
	if req.Target == "" {
		return writeBadRequest(c, "target", "target is required")
	}
	target, err := pkx.ParseGeneration(req.Target)
	if err != nil {
		return writeBadRequest(c, "target", err.Error())
	}
	pk, err := s.parseRecord(req.RecordRequest)
	if err != nil {
		return writeFailure(c, err)
	}

	out, err := s.conv.ConvertTo(pk, target)
	if err != nil {
		s.requestLogger(c).Info("conversion refused", "from", pk.Generation().String(),
			"to", target.String(), "species", pk.Species(), "error", err)
		return writeFailure(c, err)
	}
	return writeJSON(c, http.StatusOK, ConvertResponse{
		ID:     newObjectID("conv"),
		Object: "conversion",
		From:   pk.Generation().String(),
		To:     out.Generation().String(),
		Record: NewRecordView(out),
		Data:   out.Bytes(),
	})
}

func (s *Server) parseRecord(req RecordRequest) (pkx.Entity, error) {
	if len(req.Data) == 0 {
		return nil, newInvalidRequest("data", "data is required")
	}
	opts := s.options(req.Japanese)
	if req.Generation == "" {
		return pkx.Parse(req.Data, opts)
	}
	gen, err := pkx.ParseGeneration(req.Generation)
	if err != nil {
		return nil, newInvalidRequest("generation", err.Error())
	}
	return pkx.FromBytes(gen, req.Data, opts)
}
