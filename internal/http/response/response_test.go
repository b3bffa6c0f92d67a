package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) JSONResponse {
	t.Helper()
	var out JSONResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	return out
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"id": 1}, nil)

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type, got %s", rec.Header().Get("Content-Type"))
	}
	if body := decode(t, rec); !body.Success || body.Error != "" {
		t.Errorf("Unexpected body: %+v", body)
	}
}

func TestError_Variants(t *testing.T) {
	tests := []struct {
		name     string
		errData  any
		expected string
	}{
		{"string", "boom", "boom"},
		{"error", errors.New("db down"), "db down"},
		{"validation", map[string][]string{"name": {"required"}}, "Doğrulama hatası"},
		{"unknown", 42, "Bilinmeyen bir sunucu hatası oluştu"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, http.StatusBadRequest, tc.errData)

			body := decode(t, rec)
			if body.Success || body.Error != tc.expected {
				t.Errorf("Expected error %q, got %+v", tc.expected, body)
			}
		})
	}
}

func TestHelpers_DefaultMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "")
	if rec.Code != http.StatusNotFound || decode(t, rec).Error != "Kayıt bulunamadı" {
		t.Errorf("Unexpected NotFound response: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	ServerError(rec, "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	BadRequest(rec, "id geçersiz")
	if decode(t, rec).Error != "id geçersiz" {
		t.Errorf("Unexpected BadRequest body: %s", rec.Body.String())
	}
}
