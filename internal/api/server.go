// Package api serves record decoding, conversion and save inspection over
// HTTP. Requests carry raw files as base64 JSON fields; the service keeps no
// state between requests.
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pkxcore/internal/logger"
	"github.com/samcharles93/pkxcore/internal/version"
	"github.com/samcharles93/pkxcore/pkg/convert"
	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// Config wires the server to the record libraries.
type Config struct {
	Personal personal.Provider
	// Convert configures the converter. Personal and Logger default to the
	// server's own.
	Convert *convert.Config
	Logger  logger.Logger
	// Japanese is the default for requests that do not say.
	Japanese bool
}

type Server struct {
	personal personal.Provider
	conv     *convert.Converter
	log      logger.Logger
	japanese bool
}

func NewServer(cfg Config) (*Server, error) {
	p := cfg.Personal
	if p == nil {
		p = personal.Builtin()
	}
	log := logger.OrNop(cfg.Logger)

	cc := convert.Config{}
	if cfg.Convert != nil {
		cc = *cfg.Convert
	}
	if cc.Personal == nil {
		cc.Personal = p
	}
	if cc.Logger == nil {
		cc.Logger = log
	}
	conv, err := convert.NewConverter(&cc)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	return &Server{personal: p, conv: conv, log: log, japanese: cfg.Japanese}, nil
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID)

	e.GET("/v1/healthz", s.handleHealth)

	// Records
	e.POST("/v1/records/decode", s.handleDecodeRecord)
	e.POST("/v1/records/convert", s.handleConvertRecord)

	// Saves
	e.POST("/v1/saves/inspect", s.handleInspectSave)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, HealthResponse{Status: "ok", Version: version.Resolve()})
}

func (s *Server) options(japanese *bool) pkx.Options {
	opts := pkx.Options{Personal: s.personal, Japanese: s.japanese}
	if japanese != nil {
		opts.Japanese = *japanese
	}
	return opts
}

func (s *Server) requestLogger(c *echo.Context) logger.Logger {
	return s.log.With("request_id", requestIDOf(c))
}
