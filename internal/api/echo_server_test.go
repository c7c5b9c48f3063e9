package api

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pkxcore/pkg/pkx"
	"github.com/samcharles93/pkxcore/pkg/sav"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	server, err := NewServer(Config{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	e := echo.New()
	server.Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %s: %v", rec.Body.String(), err)
	}
	return out
}

func newBulbasaur(t *testing.T) pkx.Entity {
	t.Helper()
	pk, err := pkx.Empty(pkx.Gen3, false, pkx.Options{})
	if err != nil {
		t.Fatalf("empty record: %v", err)
	}
	for _, err := range []error{
		pk.SetSpecies(1),
		pk.SetPID(0xDEADBEEF),
		pk.SetTID(31337),
		pk.SetSID(4242),
		pk.SetExperience(135),
		pk.SetMove(0, 33),
		pk.SetPP(0, 35),
		pk.SetLanguage(pkx.LangEnglish),
	} {
		if err != nil {
			t.Fatalf("build record: %v", err)
		}
	}
	pk.Encrypt()
	return pk
}

// newSave builds a resigned single-copy-valid save holding one boxed record
// in a slot that straddles two sectors.
func newSave(t *testing.T) []byte {
	t.Helper()
	s, err := sav.Open(make([]byte, sav.SizeFull))
	if err != nil {
		t.Fatalf("open blank save: %v", err)
	}
	s.SetTID(31337)
	if err := s.SetMoney(3000); err != nil {
		t.Fatalf("SetMoney: %v", err)
	}
	if err := s.SetSeen(1, true); err != nil {
		t.Fatalf("SetSeen: %v", err)
	}
	if err := s.SetCaught(1, true); err != nil {
		t.Fatalf("SetCaught: %v", err)
	}
	if err := s.SetBox(1, 19, newBulbasaur(t).(*pkx.PK3)); err != nil {
		t.Fatalf("SetBox: %v", err)
	}
	s.Resign()
	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	return data
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	rec := doJSON(t, e, http.MethodGet, "/v1/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[HealthResponse](t, rec)
	if resp.Status != "ok" || resp.Version.Version == "" {
		t.Fatalf("unexpected health response: %+v", resp)
	}
	if id := rec.Header().Get(headerRequestID); !strings.HasPrefix(id, "req_") {
		t.Fatalf("missing generated request id, got %q", id)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	req.Header.Set(headerRequestID, "trace-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(headerRequestID); got != "trace-1" {
		t.Fatalf("request id: got %q want trace-1", got)
	}
}

func TestDecodeRecord(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	pk := newBulbasaur(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/records/decode", mustJSON(t, RecordRequest{Data: pk.Bytes()}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[RecordResponse](t, rec)
	if resp.Object != "record" || !strings.HasPrefix(resp.ID, "rec_") {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	got := resp.Record
	if got.Generation != "gen3" || got.Length != 80 || got.Party {
		t.Fatalf("unexpected format fields: %+v", got)
	}
	if !got.Encrypted || !got.ChecksumValid {
		t.Fatalf("expected encrypted record with valid checksum: %+v", got)
	}
	if got.Species != 1 || got.Level != 5 || got.TID != 31337 || got.PID != 0xDEADBEEF {
		t.Fatalf("unexpected record fields: %+v", got)
	}
	if got.Moves[0] != 33 || got.PP[0] != 35 {
		t.Fatalf("unexpected moves: %v pp=%v", got.Moves, got.PP)
	}
}

func TestDecodeRecordErrors(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	cases := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"empty body", "", http.StatusBadRequest, "invalid_request_error"},
		{"bad json", "{", http.StatusBadRequest, "invalid_request_error"},
		{"unknown field", `{"payload":"AA=="}`, http.StatusBadRequest, "invalid_request_error"},
		{"missing data", `{}`, http.StatusBadRequest, "data is required"},
		{"unknown length", mustJSON(t, RecordRequest{Data: make([]byte, 81)}), http.StatusBadRequest, "invalid_format_error"},
		{"bad generation", mustJSON(t, RecordRequest{Data: make([]byte, 80), Generation: "gen9"}), http.StatusBadRequest, `"param":"generation"`},
		{"length for other generation", mustJSON(t, RecordRequest{Data: make([]byte, 80), Generation: "7"}), http.StatusBadRequest, "invalid_format_error"},
	}
	for _, tc := range cases {
		rec := doJSON(t, e, http.MethodPost, "/v1/records/decode", tc.body)
		if rec.Code != tc.status {
			t.Fatalf("%s: status got %d want %d body=%s", tc.name, rec.Code, tc.status, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Fatalf("%s: body missing %q: %s", tc.name, tc.want, rec.Body.String())
		}
	}
}

func TestConvertRecord(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	req := ConvertRequest{RecordRequest: RecordRequest{Data: newBulbasaur(t).Bytes()}, Target: "pk7"}
	rec := doJSON(t, e, http.MethodPost, "/v1/records/convert", mustJSON(t, req))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[ConvertResponse](t, rec)
	if resp.From != "gen3" || resp.To != "gen7" {
		t.Fatalf("unexpected generations: %s -> %s", resp.From, resp.To)
	}
	if len(resp.Data) != 232 {
		t.Fatalf("converted length: got %d want 232", len(resp.Data))
	}
	if resp.Record.Species != 1 || resp.Record.EC != 0xDEADBEEF || resp.Record.MetLocation != 30001 {
		t.Fatalf("unexpected converted record: %+v", resp.Record)
	}

	out, err := pkx.FromBytes(pkx.Gen7, resp.Data, pkx.Options{})
	if err != nil {
		t.Fatalf("parse converted bytes: %v", err)
	}
	if out.IsEncrypted() || out.Checksum() != out.CalcChecksum() {
		t.Fatalf("converted bytes should be decrypted with a valid checksum")
	}
}

func TestConvertRecordErrors(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	data := newBulbasaur(t).Bytes()

	rec := doJSON(t, e, http.MethodPost, "/v1/records/convert", mustJSON(t, RecordRequest{Data: data}))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "target is required") {
		t.Fatalf("missing target: got %d body=%s", rec.Code, rec.Body.String())
	}

	req := ConvertRequest{RecordRequest: RecordRequest{Data: data}, Target: "4"}
	rec = doJSON(t, e, http.MethodPost, "/v1/records/convert", mustJSON(t, req))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown target: got %d body=%s", rec.Code, rec.Body.String())
	}

	req.Target = "1"
	rec = doJSON(t, e, http.MethodPost, "/v1/records/convert", mustJSON(t, req))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("backwards conversion: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "conversion_unsupported_error") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestInspectSave(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	body := `{"data":"` + base64.StdEncoding.EncodeToString(newSave(t)) + `","include_boxes":true}`
	rec := doJSON(t, e, http.MethodPost, "/v1/saves/inspect", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[SaveResponse](t, rec)
	got := resp.Save
	if got.Copies != 2 || got.ActiveCopy != 0 || got.Counter != 1 {
		t.Fatalf("unexpected copy selection: %+v", got)
	}
	if got.State != "validated" || len(got.Problems) != 0 {
		t.Fatalf("expected clean validated save: state=%s problems=%v", got.State, got.Problems)
	}
	if got.Trainer.TID != 31337 || got.Game != "ruby-sapphire" {
		t.Fatalf("unexpected trainer or game: %+v %s", got.Trainer, got.Game)
	}
	if got.Trainer.Money != 3000 || got.Trainer.DexSeen != 1 || got.Trainer.DexCaught != 1 {
		t.Fatalf("unexpected trainer progress: %+v", got.Trainer)
	}
	if len(got.Party) != 0 {
		t.Fatalf("expected empty party, got %d", len(got.Party))
	}
	if len(got.Boxes) != 1 {
		t.Fatalf("expected one occupied box slot, got %d", len(got.Boxes))
	}
	slot := got.Boxes[0]
	if slot.Box != 1 || slot.Slot != 19 || !slot.Split || slot.Record.Species != 1 {
		t.Fatalf("unexpected box slot: %+v", slot)
	}
}

func TestInspectSaveReportsProblems(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/saves/inspect", mustJSON(t, SaveRequest{Data: make([]byte, sav.SizeFull)}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[SaveResponse](t, rec)
	if len(resp.Save.Problems) == 0 {
		t.Fatalf("blank save should report problems")
	}
	if resp.Save.Boxes != nil {
		t.Fatalf("boxes listed without include_boxes")
	}

	rec = doJSON(t, e, http.MethodPost, "/v1/saves/inspect", mustJSON(t, SaveRequest{Data: make([]byte, 100)}))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "invalid_format_error") {
		t.Fatalf("bad size: got %d body=%s", rec.Code, rec.Body.String())
	}
}
