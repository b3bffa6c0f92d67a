// -----------------------------------------------------------------------------
// Local Storage Driver
// -----------------------------------------------------------------------------
// Yerel dosya sistemi üzerinde dosya depolama. Tüm yollar basePath altına
// sandbox'lanır.
// -----------------------------------------------------------------------------

package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage, yerel dosya sisteminde depolama yapan driver.
type LocalStorage struct {
	basePath string // Temel dizin yolu (örn: "./storage/uploads")
	baseURL  string // Temel URL (örn: "/uploads")
	logger   Logger
}

// NewLocalStorage, yeni bir LocalStorage oluşturur.
// basePath dizini yoksa otomatik oluşturulur.
func NewLocalStorage(basePath string, logger Logger) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	logger.Printf("✅ Local storage initialized: %s", abs)

	return &LocalStorage{
		basePath: abs,
		baseURL:  "/uploads",
		logger:   logger,
	}, nil
}

// SetBaseURL, URL prefix'ini ayarlar.
func (s *LocalStorage) SetBaseURL(baseURL string) {
	s.baseURL = strings.TrimRight(baseURL, "/")
}

// resolve, path'i sanitize eder ve basePath altında tam yol döndürür.
func (s *LocalStorage) resolve(path string) (string, string, error) {
	sanitized, err := SanitizePath(path)
	if err != nil {
		return "", "", err
	}

	full := filepath.Join(s.basePath, filepath.FromSlash(sanitized))
	rel, err := filepath.Rel(s.basePath, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", ErrInvalidPath
	}
	return sanitized, full, nil
}

// Put, dosya yükler.
func (s *LocalStorage) Put(path string, contents []byte) error {
	sanitized, full, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, contents, 0644); err != nil {
		s.logger.Printf("❌ Failed to write file: %s - %v", sanitized, err)
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Printf("✅ File saved: %s (%d bytes)", sanitized, len(contents))
	return nil
}

// PutFile, io.Reader'dan dosya yükler (stream) ve yazılan byte sayısını döndürür.
func (s *LocalStorage) PutFile(path string, reader io.Reader) (int64, error) {
	sanitized, full, err := s.resolve(path)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, reader)
	if err != nil {
		s.logger.Printf("❌ Failed to write file stream: %s - %v", sanitized, err)
		return written, fmt.Errorf("failed to write file stream: %w", err)
	}

	s.logger.Printf("✅ File saved (stream): %s (%d bytes)", sanitized, written)
	return written, nil
}

// Get, dosya içeriğini okur.
func (s *LocalStorage) Get(path string) ([]byte, error) {
	_, full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	return data, err
}

// Delete, dosyayı siler.
func (s *LocalStorage) Delete(path string) error {
	sanitized, full, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.Printf("🗑️  File deleted: %s", sanitized)
	return nil
}

// Exists, dosyanın var olup olmadığını kontrol eder.
func (s *LocalStorage) Exists(path string) (bool, error) {
	_, full, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Url, dosyanın URL'ini döndürür.
func (s *LocalStorage) Url(path string) string {
	sanitized, _ := SanitizePath(path)
	return s.baseURL + "/" + sanitized
}

// BasePath, temel dizin yolunu döndürür.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}
