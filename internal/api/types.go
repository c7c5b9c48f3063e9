package api

import "github.com/samcharles93/pkxcore/internal/version"

// RecordRequest carries one raw record. Data is base64 in JSON.
type RecordRequest struct {
	Data []byte `json:"data"`
	// Generation forces a format; empty detects it from the length.
	Generation string `json:"generation,omitempty"`
	Japanese   *bool  `json:"japanese,omitempty"`
}

type ConvertRequest struct {
	RecordRequest
	// Target is the generation to convert to, e.g. "7" or "pk7".
	Target string `json:"target"`
}

type SaveRequest struct {
	Data         []byte `json:"data"`
	Japanese     *bool  `json:"japanese,omitempty"`
	IncludeBoxes bool   `json:"include_boxes,omitempty"`
}

type RecordResponse struct {
	ID     string     `json:"id"`
	Object string     `json:"object"`
	Record RecordView `json:"record"`
}

type ConvertResponse struct {
	ID     string     `json:"id"`
	Object string     `json:"object"`
	From   string     `json:"from"`
	To     string     `json:"to"`
	Record RecordView `json:"record"`
	// Data is the converted record, decrypted, with a fresh checksum.
	Data []byte `json:"data"`
}

type SaveResponse struct {
	ID     string   `json:"id"`
	Object string   `json:"object"`
	Save   SaveView `json:"save"`
}

type HealthResponse struct {
	Status  string       `json:"status"`
	Version version.Info `json:"version"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type errorBody struct {
	Error ResponseError `json:"error"`
}
