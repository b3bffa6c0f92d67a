package database

import (
	"strings"
)

// -----------------------------------------------------------------------------
// Grammar Interface
// -----------------------------------------------------------------------------
// Grammar, QueryBuilder state'inden SQL string'i üretir. Tüm değerler ":name"
// biçiminde isimli parametre olarak bırakılır; sürücüye özgü placeholder'a
// (?, $1) dönüşüm sqlx tarafından yürütme anında yapılır.
//
// Üretilen SQL düz ANSI SQL'dir; identifier'lar sarmalanmaz.
// -----------------------------------------------------------------------------

// Grammar, SQL lehçesine özgü sorgu üretimini tanımlar.
type Grammar interface {
	// Name, grammar'ın adını döndürür ("ansi", "postgres").
	Name() string

	// CompileSelect: SELECT * FROM <table><where>
	CompileSelect(table, where string) string

	// CompileInsert: INSERT INTO <table>(a, b) VALUES(:a,:b)
	CompileInsert(table string, columns []string) string

	// CompileUpdate: UPDATE <table> SET a = :a, b = :b<where>
	CompileUpdate(table string, columns []string, where string) string

	// CompileDelete: DELETE FROM <table><where>
	CompileDelete(table, where string) string

	// ReturningID, INSERT sorgusunun yeni id'yi satır olarak döndürüp
	// döndürmediğini belirtir (LastInsertId desteklemeyen sürücüler için).
	ReturningID() bool
}

// ANSIGrammar, MySQL ve SQLite için kullanılan varsayılan grammar'dır.
type ANSIGrammar struct{}

func NewANSIGrammar() *ANSIGrammar {
	return &ANSIGrammar{}
}

func (g *ANSIGrammar) Name() string { return "ansi" }

func (g *ANSIGrammar) CompileSelect(table, where string) string {
	return "SELECT * FROM " + table + where
}

func (g *ANSIGrammar) CompileInsert(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}
	return "INSERT INTO " + table + "(" + strings.Join(columns, ", ") + ") VALUES(" + strings.Join(placeholders, ",") + ")"
}

func (g *ANSIGrammar) CompileUpdate(table string, columns []string, where string) string {
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = col + " = :" + col
	}
	return "UPDATE " + table + " SET " + strings.Join(sets, ", ") + where
}

func (g *ANSIGrammar) CompileDelete(table, where string) string {
	return "DELETE FROM " + table + where
}

func (g *ANSIGrammar) ReturningID() bool { return false }

// PostgresGrammar, lib/pq ve pgx LastInsertId desteklemediği için INSERT
// sorgusuna "RETURNING id" ekler.
type PostgresGrammar struct {
	ANSIGrammar
}

func NewPostgresGrammar() *PostgresGrammar {
	return &PostgresGrammar{}
}

func (g *PostgresGrammar) Name() string { return "postgres" }

func (g *PostgresGrammar) CompileInsert(table string, columns []string) string {
	return g.ANSIGrammar.CompileInsert(table, columns) + " RETURNING id"
}

func (g *PostgresGrammar) ReturningID() bool { return true }

// GrammarFor, database/sql sürücü adına göre uygun grammar'ı döndürür.
func GrammarFor(driverName string) Grammar {
	switch driverName {
	case "postgres", "pgx":
		return NewPostgresGrammar()
	default:
		return NewANSIGrammar()
	}
}
