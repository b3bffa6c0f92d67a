// Package response, JSON tabanlı HTTP yanıtlarını tek bir merkezden ve
// standart bir zarf (envelope) içinde üretir:
//
//	{"success": true, "data": ..., "meta": ...}
//	{"success": false, "error": "..."}
package response

import (
	"encoding/json"
	"net/http"
)

// JSONResponse, tüm API yanıtlarının ortak veri sözleşmesi.
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// Send, HTTP yanıtını statü kodu ve JSONResponse ile istemciye gönderir.
// Success ve Error bu fonksiyonu çağırır.
func Send(w http.ResponseWriter, status int, payload JSONResponse) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(payload)
}

// Success, başarılı bir işlem için standart JSON çıktı oluşturur.
// meta isteğe bağlıdır (nil verilebilir).
func Success(w http.ResponseWriter, status int, data interface{}, meta interface{}) error {
	return Send(w, status, JSONResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error, başarısız bir işlem için hata zarfı döndürür. errData string,
// error veya alan bazlı doğrulama hataları (map[string][]string) olabilir.
func Error(w http.ResponseWriter, status int, errData any) error {
	payload := JSONResponse{
		Success: false,
	}

	switch e := errData.(type) {
	case string:
		payload.Error = e
	case error:
		payload.Error = e.Error()
	case map[string][]string:
		payload.Error = "Doğrulama hatası"
		payload.Data = e
	default:
		payload.Error = "Bilinmeyen bir sunucu hatası oluştu"
	}

	return Send(w, status, payload)
}
