// -----------------------------------------------------------------------------
// Standardized Error Response Helpers
// -----------------------------------------------------------------------------
// Sık kullanılan hata yanıtları için kısayollar. Boş mesaj verilirse
// varsayılan Türkçe mesaj kullanılır.
// -----------------------------------------------------------------------------

package response

import (
	"net/http"
)

// InvalidJSON sends a 400 Bad Request error for invalid JSON format.
func InvalidJSON(w http.ResponseWriter) {
	Error(w, http.StatusBadRequest, "Geçersiz JSON formatı")
}

// ValidationError sends a 422 Unprocessable Entity error with field errors.
//
// Example:
//
//	response.ValidationError(w, map[string][]string{"name": {"Ad gerekli"}})
func ValidationError(w http.ResponseWriter, errors map[string][]string) {
	Error(w, http.StatusUnprocessableEntity, errors)
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Kayıt bulunamadı"
	}
	Error(w, http.StatusNotFound, message)
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Geçersiz istek"
	}
	Error(w, http.StatusBadRequest, message)
}

// ServerError sends a 500 Internal Server Error.
//
// The underlying error should be logged by the caller; it is never sent to
// the client.
func ServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Sunucuda beklenmedik bir hata oluştu"
	}
	Error(w, http.StatusInternalServerError, message)
}
