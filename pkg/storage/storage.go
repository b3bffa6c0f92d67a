// -----------------------------------------------------------------------------
// Storage Package
// -----------------------------------------------------------------------------
// Yüklenen dosyalar (request.StoreFile) için basit depolama katmanı.
//
// Kullanım:
//
//	store, _ := storage.NewLocalStorage("./storage/uploads", logger)
//	path, err := req.StoreFile("avatar", store)
//	url := store.Url(path)
// -----------------------------------------------------------------------------

package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Storage, dosya depolama interface'i.
type Storage interface {
	// Put, dosya yükler.
	Put(path string, contents []byte) error

	// PutFile, io.Reader'dan dosya yükler (stream için).
	PutFile(path string, reader io.Reader) (int64, error)

	// Get, dosya içeriğini okur.
	Get(path string) ([]byte, error)

	// Delete, dosyayı siler.
	Delete(path string) error

	// Exists, dosyanın var olup olmadığını kontrol eder.
	Exists(path string) (bool, error)

	// Url, dosyanın erişilebilir URL'ini döndürür.
	Url(path string) string
}

// Logger interface - dependency injection için
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid path")
)

// SanitizePath, dosya yolunu güvenli hale getirir.
//
// Path traversal (../), null byte ve boş yol reddedilir; baştaki ve sondaki
// ayraçlar temizlenir.
func SanitizePath(path string) (string, error) {
	if strings.ContainsRune(path, 0) || containsPathTraversal(path) {
		return "", ErrInvalidPath
	}

	path = strings.Trim(path, `/\`)
	if path == "" {
		return "", ErrInvalidPath
	}
	return filepath.ToSlash(filepath.Clean(path)), nil
}

// containsPathTraversal, ".." path segmenti içerip içermediğini kontrol eder.
func containsPathTraversal(path string) bool {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, seg := range segments {
		if seg == ".." {
			return true
		}
	}
	return false
}

// GenerateUniqueName, benzersiz dosya adı oluşturur.
//
// Örnek:
//
//	storage.GenerateUniqueName("../photos/me.jpg")
//	// → "1704067200-9f86d081-me.jpg"
func GenerateUniqueName(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, `\`, "/"))
	if base == "." || base == "/" || base == ".." {
		base = "file"
	}

	suffix := make([]byte, 4)
	rand.Read(suffix)

	return fmt.Sprintf("%d-%s-%s", time.Now().Unix(), hex.EncodeToString(suffix), base)
}
