package conceptsearch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arodidev/openmrs-form-builder/pkg/concepts"
)

func seededSearcher() *concepts.Memory {
	mem := concepts.NewMemory()
	mem.Add(
		concepts.Concept{UUID: "weight-uuid", Display: "Weight (kg)", Datatype: "Numeric"},
		concepts.Concept{UUID: "height-uuid", Display: "Height (cm)", Datatype: "Numeric"},
		concepts.Concept{UUID: "pain-uuid", Display: "Pain level", Datatype: "Coded"},
	)
	return mem
}

func decodeData(t *testing.T, body []byte) []concepts.Concept {
	t.Helper()
	var payload struct {
		Data []concepts.Concept `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload.Data
}

func TestHandler_Search(t *testing.T) {
	handler := Handler(WithSearcher(seededSearcher()))

	req := httptest.NewRequest(http.MethodGet, "/api/concepts?q=weight", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	data := decodeData(t, rec.Body.Bytes())
	if len(data) != 1 || data[0].UUID != "weight-uuid" {
		t.Fatalf("unexpected results: %+v", data)
	}
}

func TestHandler_LimitClamped(t *testing.T) {
	handler := Handler(WithSearcher(seededSearcher()), WithMaxLimit(2))

	req := httptest.NewRequest(http.MethodGet, "/api/concepts?limit=50", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	data := decodeData(t, rec.Body.Bytes())
	if len(data) != 2 {
		t.Fatalf("limit not clamped: got %d results", len(data))
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	handler := Handler(WithSearcher(seededSearcher()))

	req := httptest.NewRequest(http.MethodPost, "/api/concepts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: %d", rec.Code)
	}
	if rec.Header().Get("Allow") == "" {
		t.Fatal("Allow header missing")
	}
}

func TestHandler_Guard(t *testing.T) {
	handler := Handler(
		WithSearcher(seededSearcher()),
		WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/concepts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestHandler_NoSearcher(t *testing.T) {
	handler := Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/concepts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestHandler_Head(t *testing.T) {
	handler := Handler(WithSearcher(seededSearcher()))

	req := httptest.NewRequest(http.MethodHead, "/api/concepts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("HEAD should not carry a body, got %q", rec.Body.String())
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/builder", WithSearcher(seededSearcher()))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/builder/api/concepts" {
		t.Fatalf("pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/builder/api/concepts?q=pain", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	data := decodeData(t, rec.Body.Bytes())
	if len(data) != 1 || data[0].UUID != "pain-uuid" {
		t.Fatalf("unexpected results: %+v", data)
	}
}
