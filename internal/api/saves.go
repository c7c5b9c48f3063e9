package api

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pkxcore/pkg/sav"
)

func (s *Server) handleInspectSave(c *echo.Context) error {
	req, err := decodeJSON[SaveRequest](c.Request().Body)
	if err != nil {
		return writeFailure(c, err)
	}
	if len(req.Data) == 0 {
		return writeBadRequest(c, "data", "data is required")
	}
	opts := s.options(req.Japanese)
	save, err := sav.Open(req.Data,
		sav.WithLogger(s.requestLogger(c)),
		sav.WithPersonal(opts.Personal),
		sav.WithJapanese(opts.Japanese),
	)
	if err != nil {
		return writeFailure(c, err)
	}
	view, err := NewSaveView(save, req.IncludeBoxes)
	if err != nil {
		return writeFailure(c, err)
	}
	return writeJSON(c, http.StatusOK, SaveResponse{
		ID:     newObjectID("sav"),
		Object: "save",
		Save:   view,
	})
}
