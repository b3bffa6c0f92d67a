package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func userSchema() *Schema {
	return Make().Shape(map[string]Type{
		"name":     String().Required().Trim().Max(10),
		"email":    String().Required().Email(),
		"password": String().Required().Min(8).Label("Şifre"),
		"bio":      String(),
	})
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name   string
		data   map[string]any
		failed []string
	}{
		{"valid", map[string]any{"name": "Ali", "email": "ali@example.com", "password": "password123"}, nil},
		{"missing all", map[string]any{}, []string{"name", "email", "password"}},
		{"blank name after trim", map[string]any{"name": "   ", "email": "ali@example.com", "password": "password123"}, []string{"name"}},
		{"bad email", map[string]any{"name": "Ali", "email": "nope", "password": "password123"}, []string{"email"}},
		{"short password", map[string]any{"name": "Ali", "email": "ali@example.com", "password": "123"}, []string{"password"}},
		{"long name", map[string]any{"name": "Çok Uzun Bir İsim", "email": "ali@example.com", "password": "password123"}, []string{"name"}},
		{"non-string", map[string]any{"name": 42, "email": "ali@example.com", "password": "password123"}, []string{"name"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := userSchema().Validate(tc.data)
			errs := result.Errors()
			if len(errs) != len(tc.failed) {
				t.Errorf("Expected %d failing fields, got %v", len(tc.failed), errs)
			}
			for _, field := range tc.failed {
				if _, ok := errs[field]; !ok {
					t.Errorf("Expected error for %s, got %v", field, errs)
				}
			}
		})
	}
}

func TestSchema_ValidDataIsTransformed(t *testing.T) {
	result := userSchema().Validate(map[string]any{
		"name": "  Ali  ", "email": "ali@example.com", "password": "password123",
	})
	if result.HasErrors() {
		t.Fatalf("Unexpected errors: %v", result.Errors())
	}

	data := result.ValidData()
	if data["name"] != "Ali" {
		t.Errorf("Expected trimmed name, got %q", data["name"])
	}
	if _, ok := data["bio"]; ok {
		t.Error("Absent optional fields must not appear in valid data")
	}
}

func TestSchema_LabelInMessage(t *testing.T) {
	result := userSchema().Validate(map[string]any{"password": "1"})
	msg := result.Errors()["password"][0]
	if !strings.HasPrefix(msg, "Şifre") {
		t.Errorf("Expected label in message, got %q", msg)
	}
}

func TestValidateAndRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, ok := ValidateAndRespond(userSchema(), map[string]any{}, rec); ok {
		t.Error("Expected validation to fail")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	data, ok := ValidateAndRespond(userSchema(), map[string]any{
		"name": "Ali", "email": "ali@example.com", "password": "password123",
	}, rec)
	if !ok || data["email"] != "ali@example.com" {
		t.Errorf("Expected valid data, got %v", data)
	}
	if rec.Body.Len() != 0 {
		t.Error("Nothing must be written on success")
	}
}
