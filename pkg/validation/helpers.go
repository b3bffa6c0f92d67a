package validation

import (
	"net/http"

	"github.com/biyonik/atom/internal/http/response"
)

// ValidateAndRespond, veriyi doğrular; hata varsa 422 yanıtını kendisi gönderir.
//
//	validData, ok := validation.ValidateAndRespond(schema, data, w)
//	if !ok {
//	    return // Hata yanıtı gönderildi
//	}
func ValidateAndRespond(schema *Schema, data map[string]any, w http.ResponseWriter) (map[string]any, bool) {
	result := schema.Validate(data)
	if result.HasErrors() {
		response.ValidationError(w, result.Errors())
		return nil, false
	}
	return result.ValidData(), true
}
