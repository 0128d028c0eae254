package prescription

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medscript/medscript/internal/domain/patient"
)

func newTestHandler() (*Handler, *mockPrescriptionRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

const validBody = `{
	"patient": {"first_name": "Ana", "last_name": "Silva", "birthdate": "1990-03-14T00:00:00Z"},
	"doctor_id": 1,
	"date": "2025-05-22T00:00:00Z",
	"due_date": "2025-06-22T00:00:00Z",
	"medicaments": [{"id": 1, "dose": 2, "details": "after meals"}]
}`

func postPrescription(h *Handler, e *echo.Echo, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h.CreatePrescription(c)
}

func TestHandler_CreatePrescription(t *testing.T) {
	h, _, e := newTestHandler()
	rec, err := postPrescription(h, e, validBody)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/api/v1/prescriptions/100" {
		t.Errorf("unexpected location header %q", loc)
	}
	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["id"] != 100 {
		t.Errorf("expected id 100, got %d", body["id"])
	}
}

func TestHandler_CreatePrescription_MalformedBody(t *testing.T) {
	h, _, e := newTestHandler()
	_, err := postPrescription(h, e, `{"doctor_id": "not a number"}`)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestHandler_CreatePrescription_ValidationFailure(t *testing.T) {
	h, _, e := newTestHandler()
	body := strings.Replace(validBody, `"doctor_id": 1`, `"doctor_id": 0`, 1)
	_, err := postPrescription(h, e, body)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
	fields, ok := err.(*echo.HTTPError).Message.(map[string]string)
	if !ok {
		t.Fatalf("expected a field map, got %v", err.(*echo.HTTPError).Message)
	}
	if _, ok := fields["doctor_id"]; !ok {
		t.Errorf("expected a doctor_id violation, got %v", fields)
	}
}

func TestHandler_CreatePrescription_UnknownDoctor(t *testing.T) {
	h, _, e := newTestHandler()
	body := strings.Replace(validBody, `"doctor_id": 1`, `"doctor_id": 42`, 1)
	_, err := postPrescription(h, e, body)
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestHandler_CreatePrescription_UnknownMedicament(t *testing.T) {
	h, _, e := newTestHandler()
	body := strings.Replace(validBody, `"id": 1, "dose": 2`, `"id": 999, "dose": 2`, 1)
	_, err := postPrescription(h, e, body)
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
	if msg := err.(*echo.HTTPError).Message.(string); !strings.Contains(msg, "999") {
		t.Errorf("expected the missing id enumerated, got %q", msg)
	}
}

func TestHandler_CreatePrescription_UnknownPatient(t *testing.T) {
	h, _, e := newTestHandler()
	body := strings.Replace(validBody,
		`"patient": {"first_name": "Ana", "last_name": "Silva", "birthdate": "1990-03-14T00:00:00Z"}`,
		`"patient": {"id": 404}`, 1)
	_, err := postPrescription(h, e, body)
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestHandler_CreatePrescription_Conflict(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.createErr = ErrConflict
	_, err := postPrescription(h, e, validBody)
	if code := httpCode(t, err); code != http.StatusConflict {
		t.Errorf("expected 409, got %d", code)
	}
}

func TestHandler_CreatePrescription_StoreFailure(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.createErr = errors.New("connection reset")
	_, err := postPrescription(h, e, validBody)
	if code := httpCode(t, err); code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
}

func TestHandler_GetPrescription(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.details[5] = &Details{ID: 5, DueDate: time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.GetPrescription(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPrescription_NotFound(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("12345")
	err := h.GetPrescription(c)
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestHandler_GetPrescription_InvalidID(t *testing.T) {
	h, _, e := newTestHandler()
	for _, raw := range []string{"abc", "0", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(raw)
		err := h.GetPrescription(c)
		if code := httpCode(t, err); code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", raw, code)
		}
	}
}

func TestHandler_GetPatientDetails(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.patients[7] = &patient.Patient{ID: 7, FirstName: "Ana", LastName: "Silva"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.GetPatientDetails(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"prescriptions":[]`) {
		t.Errorf("empty history must serialize as an empty array, got %s", rec.Body.String())
	}
}

func TestHandler_GetPatientDetails_NotFound(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")
	err := h.GetPatientDetails(c)
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}
