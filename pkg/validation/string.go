package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// StringType, metin alanlarının doğrulamasını ve dönüşümünü yönetir.
type StringType struct {
	required   bool
	label      string
	minLength  *int
	maxLength  *int
	email      bool
	transforms []func(string) string
}

// String, yeni bir metin alanı tipi oluşturur.
func String() *StringType {
	return &StringType{}
}

// Required, alanın zorunlu olduğunu belirtir. Boş string de eksik sayılır.
func (s *StringType) Required() *StringType {
	s.required = true
	return s
}

// Label, hata mesajlarında kullanılacak insan okunabilir isim.
func (s *StringType) Label(label string) *StringType {
	s.label = label
	return s
}

// Min, karakter cinsinden minimum uzunluk.
func (s *StringType) Min(length int) *StringType {
	s.minLength = &length
	return s
}

// Max, karakter cinsinden maksimum uzunluk.
func (s *StringType) Max(length int) *StringType {
	s.maxLength = &length
	return s
}

// Email, alanın e-posta formatında olmasını zorunlu kılar.
func (s *StringType) Email() *StringType {
	s.email = true
	return s
}

// Trim, baştaki ve sondaki boşlukları temizler.
func (s *StringType) Trim() *StringType {
	s.transforms = append(s.transforms, strings.TrimSpace)
	return s
}

// Transform, tanımlı dönüşümleri uygular. nil değer olduğu gibi döner.
func (s *StringType) Transform(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	str, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("metin bekleniyordu, %T geldi", value)
	}
	for _, fn := range s.transforms {
		str = fn(str)
	}
	return str, nil
}

// Validate, değeri kurallara göre doğrular.
func (s *StringType) Validate(field string, value any, result *ValidationResult) {
	name := s.label
	if name == "" {
		name = field
	}

	str, _ := value.(string)
	if value == nil || str == "" {
		if s.required {
			result.AddError(field, fmt.Sprintf("%s alanı zorunludur", name))
		}
		return
	}

	length := utf8.RuneCountInString(str)
	if s.minLength != nil && length < *s.minLength {
		result.AddError(field, fmt.Sprintf("%s alanı en az %d karakter olmalıdır", name, *s.minLength))
	}
	if s.maxLength != nil && length > *s.maxLength {
		result.AddError(field, fmt.Sprintf("%s alanı en fazla %d karakter olmalıdır", name, *s.maxLength))
	}
	if s.email && !emailRegex.MatchString(str) {
		result.AddError(field, fmt.Sprintf("%s alanı geçerli bir e-posta formatında değil", name))
	}
}
