// -----------------------------------------------------------------------------
// Database Types - Query Builder İçin Yardımcı Tipler
// -----------------------------------------------------------------------------
// Bu dosya, QueryBuilder'ın kullandığı veri tiplerini içerir: sıralı kolon
// verisi (Data), bağlanacak parametreler (Params) ve WHERE koşullarını temsil
// eden Condition varyantı (Equals | Compare).
// -----------------------------------------------------------------------------

package database

import (
	"fmt"
	"sort"
)

// Params, isimli parametreleri (":name" → değer) tutar.
type Params map[string]any

// Pair, tek bir kolon ataması.
type Pair struct {
	Column string
	Value  any
}

// P, Pair oluşturmak için kısayol.
func P(column string, value any) Pair {
	return Pair{Column: column, Value: value}
}

// Data, INSERT/UPDATE için sıralı kolon verisidir. Go map'leri sırasız olduğu
// için kolonlar üretilen SQL'de verildikleri sırayla yer alır.
//
// Örnek:
//
//	database.Data{database.P("name", "a"), database.P("age", 5)}
//	→ INSERT INTO users(name, age) VALUES(:name,:age)
type Data []Pair

// DataFromMap, map'i kolon adına göre sıralanmış Data'ya çevirir.
func DataFromMap(m map[string]any) Data {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := make(Data, len(keys))
	for i, k := range keys {
		data[i] = Pair{Column: k, Value: m[k]}
	}
	return data
}

// Columns, kolon adlarını sırayla döndürür.
func (d Data) Columns() []string {
	cols := make([]string, len(d))
	for i, p := range d {
		cols[i] = p.Column
	}
	return cols
}

// Map, veriyi Params'a çevirir. Aynı kolon iki kez verilirse sonuncusu kazanır.
func (d Data) Map() Params {
	m := make(Params, len(d))
	for _, p := range d {
		m[p.Column] = p.Value
	}
	return m
}

// Condition, tek bir WHERE koşulunu temsil eder. Yalnızca Equals ve Compare
// tarafından uygulanır; 1 elemanlı koşul tip seviyesinde ifade edilemez.
type Condition interface {
	field() string
	operator() string
	value() any
}

// Equals, "field = :field" koşuludur.
type Equals struct {
	Field string
	Value any
}

func (c Equals) field() string    { return c.Field }
func (c Equals) operator() string { return "=" }
func (c Equals) value() any       { return c.Value }

// Compare, "field OPERATOR :field" koşuludur. Operatör büyük harfe çevrilir,
// içeriği doğrulanmaz.
type Compare struct {
	Field    string
	Operator string
	Value    any
}

func (c Compare) field() string    { return c.Field }
func (c Compare) operator() string { return c.Operator }
func (c Compare) value() any       { return c.Value }

// ParseTuple, dinamik bir koşul dizisini Condition'a çevirir.
//
//	[]any{"id", 1}          → Equals{"id", 1}
//	[]any{"age", ">", 18}   → Compare{"age", ">", 18}
//	[]any{"id"}             → ErrInvalidArguments
func ParseTuple(tuple []any) (Condition, error) {
	switch len(tuple) {
	case 2:
		field, ok := tuple[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: field must be a string, got %T", ErrInvalidArguments, tuple[0])
		}
		return Equals{Field: field, Value: tuple[1]}, nil
	case 3:
		field, ok := tuple[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: field must be a string, got %T", ErrInvalidArguments, tuple[0])
		}
		op, ok := tuple[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: operator must be a string, got %T", ErrInvalidArguments, tuple[1])
		}
		return Compare{Field: field, Operator: op, Value: tuple[2]}, nil
	default:
		return nil, fmt.Errorf("%w: condition needs 2 or 3 elements, got %d", ErrInvalidArguments, len(tuple))
	}
}
