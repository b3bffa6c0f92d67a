// -----------------------------------------------------------------------------
// Request Globals
// -----------------------------------------------------------------------------
// İsteğin URI, path, method, server değişkenleri, GET/POST parametreleri ve
// yüklenen dosyalarına tek noktadan erişim.
//
// Server değişkenleri, CGI tarzı isimlerle (REQUEST_URI, REQUEST_METHOD,
// HTTP_USER_AGENT ...) http.Request'ten türetilir ve istek başına bir kez
// hesaplanır.
// -----------------------------------------------------------------------------

package request

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/biyonik/atom/pkg/storage"
)

// MaxMemory, multipart form parse edilirken bellekte tutulacak maksimum boyut.
const MaxMemory = 32 << 20

// ErrNoFile, istenen alan için yüklenmiş dosya yok.
var ErrNoFile = errors.New("no uploaded file for field")

// apiPrefixLen, API modunda URI'den atılan karakter sayısı ("/api").
const apiPrefixLen = 4

// FileInfo, yüklenen dosyanın meta bilgisi.
type FileInfo struct {
	Name   string // İstemcideki dosya adı
	Type   string // İstemcinin bildirdiği Content-Type
	Size   int64
	Header *multipart.FileHeader
}

// URI, ham istek URI'sini döndürür. API modunda ilk 4 karakter atılır;
// daha kısa URI'ler boş string olur.
func (r *Request) URI() string {
	uri := r.Server("REQUEST_URI")
	if !r.apiMode {
		return uri
	}
	if len(uri) <= apiPrefixLen {
		return ""
	}
	return uri[apiPrefixLen:]
}

// Path, URI'nin path kısmını döndürür.
func (r *Request) Path() string {
	u, err := url.ParseRequestURI(r.URI())
	if err != nil {
		// Query string ile başlayan veya boş URI
		uri := r.URI()
		if i := strings.IndexByte(uri, '?'); i >= 0 {
			uri = uri[:i]
		}
		return uri
	}
	return u.Path
}

// Method, HTTP method'unu döndürür.
func (r *Request) Method() string {
	return r.Request.Method
}

// Server, tek bir server değişkenini döndürür. Bilinmeyen isimler için "".
func (r *Request) Server(name string) string {
	return r.serverVars()[name]
}

// ServerAll, tüm server değişkenlerinin kopyasını döndürür.
func (r *Request) ServerAll() map[string]string {
	vars := r.serverVars()
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	return out
}

func (r *Request) serverVars() map[string]string {
	if r.server != nil {
		return r.server
	}

	vars := map[string]string{
		"REQUEST_URI":     r.RequestURI,
		"REQUEST_METHOD":  r.Request.Method,
		"QUERY_STRING":    r.URL.RawQuery,
		"SERVER_PROTOCOL": r.Proto,
		"CONTENT_TYPE":    r.Header.Get("Content-Type"),
		"REQUEST_TIME":    strconv.FormatInt(r.requestTime.Unix(), 10),
	}

	// Client tarafında oluşturulan isteklerde RequestURI boştur
	if vars["REQUEST_URI"] == "" {
		vars["REQUEST_URI"] = r.URL.RequestURI()
	}

	if r.ContentLength > 0 {
		vars["CONTENT_LENGTH"] = strconv.FormatInt(r.ContentLength, 10)
	}

	if host, port, ok := splitHostPort(r.RemoteAddr); ok {
		vars["REMOTE_ADDR"] = host
		vars["REMOTE_PORT"] = port
	} else {
		vars["REMOTE_ADDR"] = r.RemoteAddr
	}

	serverPort := "80"
	if r.TLS != nil {
		vars["HTTPS"] = "on"
		serverPort = "443"
	}
	if host, port, ok := splitHostPort(r.Host); ok {
		vars["SERVER_NAME"] = host
		vars["SERVER_PORT"] = port
	} else {
		vars["SERVER_NAME"] = r.Host
		vars["SERVER_PORT"] = serverPort
	}

	for name, values := range r.Header {
		key := "HTTP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		vars[key] = strings.Join(values, ", ")
	}

	r.server = vars
	return vars
}

func splitHostPort(addr string) (string, string, bool) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", "", false
	}
	return host, port, true
}

// Get, query string parametrelerini döndürür (her anahtar için ilk değer).
func (r *Request) Get() map[string]string {
	return firstValues(r.URL.Query())
}

// Post, body'deki form parametrelerini döndürür (urlencoded veya multipart).
// Parse edilemeyen body için boş map döner.
func (r *Request) Post() map[string]string {
	if err := r.parseForm(); err != nil {
		return map[string]string{}
	}
	return firstValues(r.PostForm)
}

// Files, yüklenen dosyaların meta bilgilerini alan adına göre döndürür.
// Bir alanda birden fazla dosya varsa ilki döner.
func (r *Request) Files() map[string]FileInfo {
	files := map[string]FileInfo{}
	if err := r.parseForm(); err != nil || r.MultipartForm == nil {
		return files
	}

	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		files[field] = FileInfo{
			Name:   fh.Filename,
			Type:   fh.Header.Get("Content-Type"),
			Size:   fh.Size,
			Header: fh,
		}
	}
	return files
}

// StoreFile, alanın dosyasını benzersiz bir isimle storage'a kaydeder ve
// kaydedilen yolu döndürür.
//
// Örnek:
//
//	path, err := r.StoreFile("avatar", store)
//	if errors.Is(err, request.ErrNoFile) {
//	    response.BadRequest(w, "avatar gerekli")
//	}
func (r *Request) StoreFile(field string, store storage.Storage) (string, error) {
	info, ok := r.Files()[field]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoFile, field)
	}

	src, err := info.Header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	path := storage.GenerateUniqueName(info.Name)
	if _, err := store.PutFile(path, src); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Request) parseForm() error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if r.MultipartForm != nil {
			return nil
		}
		return r.ParseMultipartForm(MaxMemory)
	}
	return r.ParseForm()
}

func firstValues(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
