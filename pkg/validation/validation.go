// Package validation, form verileri ve JSON payload'ları için şema bazlı
// doğrulama sağlar. Alanlar Type ile tanımlanır; Schema tüm veri setini
// önce dönüştürür (trim vb.), sonra doğrular.
//
//	schema := validation.Make().Shape(map[string]validation.Type{
//	    "email": validation.String().Required().Email(),
//	})
//	result := schema.Validate(data)
package validation

import "fmt"

// @author    Ahmet Altun
// @email     ahmet.altun60@gmail.com
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik

// ValidationResult, bir doğrulama işleminin sonucunu temsil eder.
type ValidationResult struct {
	errors    map[string][]string // Alan bazlı doğrulama hataları
	validData map[string]any      // Doğrulanmış ve temizlenmiş veriler
}

// NewResult, boş bir ValidationResult oluşturur.
func NewResult() *ValidationResult {
	return &ValidationResult{
		errors:    make(map[string][]string),
		validData: make(map[string]any),
	}
}

// AddError, belirtilen alan için bir doğrulama hatası ekler.
func (r *ValidationResult) AddError(field, message string) {
	r.errors[field] = append(r.errors[field], message)
}

// HasErrors, en az bir hata varsa true döner.
func (r *ValidationResult) HasErrors() bool {
	return len(r.errors) > 0
}

// Errors, alan bazlı hata mesajlarını döndürür.
func (r *ValidationResult) Errors() map[string][]string {
	return r.errors
}

// ValidData, doğrulama başarılıysa temizlenmiş veriyi döndürür.
// Veride bulunmayan alanlar sonuçta da yer almaz.
func (r *ValidationResult) ValidData() map[string]any {
	return r.validData
}

// Type, her alan tipinin uygulaması gereken arayüz.
type Type interface {
	// Validate, değeri doğrular ve hataları result'a ekler.
	Validate(field string, value any, result *ValidationResult)

	// Transform, doğrulamadan önce değeri temizler (ör. trim).
	Transform(value any) (any, error)
}

// Schema, alan adı -> Type eşlemesiyle tüm veri setini doğrular.
type Schema struct {
	shape map[string]Type
}

// Make, boş bir şema oluşturur.
func Make() *Schema {
	return &Schema{shape: make(map[string]Type)}
}

// Shape, şemanın alanlarını tanımlar.
func (s *Schema) Shape(shape map[string]Type) *Schema {
	for field, typ := range shape {
		s.shape[field] = typ
	}
	return s
}

// Validate, veriyi dönüştürür ve doğrular.
func (s *Schema) Validate(data map[string]any) *ValidationResult {
	result := NewResult()
	transformed := make(map[string]any)

	// 1. Dönüştürme
	for field, typ := range s.shape {
		value, present := data[field]
		if !present {
			continue
		}
		v, err := typ.Transform(value)
		if err != nil {
			result.AddError(field, fmt.Sprintf("Dönüşüm hatası: %s", err.Error()))
			continue
		}
		transformed[field] = v
	}

	// 2. Doğrulama (eksik alanlar nil olarak doğrulanır)
	for field, typ := range s.shape {
		if _, failed := result.errors[field]; failed {
			continue
		}
		typ.Validate(field, transformed[field], result)
	}

	if !result.HasErrors() {
		result.validData = transformed
	}
	return result
}
