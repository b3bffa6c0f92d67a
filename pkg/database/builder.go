package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// -----------------------------------------------------------------------------
// QUERY BUILDER
// -----------------------------------------------------------------------------
// QueryBuilder; tablo adı, bağlanacak parametreler ve WHERE parçalarını
// biriktirir, ardından INSERT/UPDATE/DELETE/SELECT sorgularını string
// birleştirme ile üretip tek seferde çalıştırır.
//
// Bir builder tek bir mantıksal sorgu için kullanılır. Terminal işlemler
// (Get, Fetch, Insert, Update, Delete) biriken state'i temizler.
//
// Örnek:
//
//	qb := database.New(db, database.NewANSIGrammar(), "users")
//	n, err := qb.Where(database.Compare{Field: "id", Operator: "=", Value: 1}).
//	    Update(ctx, database.Data{database.P("age", 6)})
//	// UPDATE users SET age = :age WHERE id = :id  {age: 6, id: 1}
// -----------------------------------------------------------------------------

type QueryBuilder struct {
	executor sqlx.ExtContext
	grammar  Grammar
	table    string
	params   Params
	wheres   []string

	// Zincirleme sırasında oluşan ilk hata
	err error
}

// New, executor (*sqlx.DB veya *sqlx.Tx) ve grammar ile yeni bir QueryBuilder üretir.
func New(executor sqlx.ExtContext, grammar Grammar, table string) *QueryBuilder {
	if grammar == nil {
		grammar = NewANSIGrammar()
	}
	return &QueryBuilder{
		executor: executor,
		grammar:  grammar,
		table:    table,
		params:   make(Params),
	}
}

// Table, sorgunun çalışacağı tablo adını belirler.
func (qb *QueryBuilder) Table(name string) *QueryBuilder {
	qb.table = name
	return qb
}

// SetParams, verilen parametreleri bekleyen parametrelerle birleştirir.
// Aynı isimli anahtarlarda sonraki değer kazanır.
func (qb *QueryBuilder) SetParams(data Params) {
	for k, v := range data {
		qb.params[k] = v
	}
}

// Params, bekleyen parametrelerin bir kopyasını döndürür.
func (qb *QueryBuilder) Params() Params {
	out := make(Params, len(qb.params))
	for k, v := range qb.params {
		out[k] = v
	}
	return out
}

// ParseConditions, koşulu SQL parçasına çevirir ve değerini "field" adıyla
// parametre olarak kaydeder.
//
//	Equals{"id", 1}              → "id = :id"
//	Compare{"name", "like", "a%"} → "name LIKE :name"
//
// Parametre adı alan adıdır: aynı alana ikinci bir koşul (veya aynı adlı bir
// UPDATE kolonu) önceki değeri ezer. Aralık sorguları için Compare değerleri
// farklı alan adlarıyla verilmeli ya da sorgu Execute ile yazılmalıdır.
func (qb *QueryBuilder) ParseConditions(cond Condition) string {
	field := cond.field()
	qb.SetParams(Params{field: cond.value()})
	return field + " " + strings.ToUpper(cond.operator()) + " :" + field
}

// Where, her koşul için bir WHERE parçası ekler (AND ile birleşir, sıra korunur).
// Koşul verilmezse ErrInvalidArguments builder'a kaydedilir.
func (qb *QueryBuilder) Where(conditions ...Condition) *QueryBuilder {
	if len(conditions) == 0 {
		qb.setErr(fmt.Errorf("%w: where requires at least one condition", ErrInvalidArguments))
		return qb
	}
	for _, cond := range conditions {
		if cond == nil {
			qb.setErr(fmt.Errorf("%w: nil condition", ErrInvalidArguments))
			return qb
		}
		qb.wheres = append(qb.wheres, qb.ParseConditions(cond))
	}
	return qb
}

// WhereTuples, dinamik girdiyi kabul eder: tek bir koşul dizisi
// ([]any{"id", 1}) ya da koşul dizilerinin listesi ([]any{[]any{"id", 1}, ...}).
// İlk eleman bir dizi ise girdi liste olarak yorumlanır.
func (qb *QueryBuilder) WhereTuples(conditions []any) *QueryBuilder {
	if len(conditions) == 0 {
		qb.setErr(fmt.Errorf("%w: where requires a non-empty list", ErrInvalidArguments))
		return qb
	}

	if _, isList := conditions[0].([]any); !isList {
		cond, err := ParseTuple(conditions)
		if err != nil {
			qb.setErr(err)
			return qb
		}
		return qb.Where(cond)
	}

	parsed := make([]Condition, 0, len(conditions))
	for _, item := range conditions {
		tuple, ok := item.([]any)
		if !ok {
			qb.setErr(fmt.Errorf("%w: mixed list of conditions", ErrInvalidArguments))
			return qb
		}
		cond, err := ParseTuple(tuple)
		if err != nil {
			qb.setErr(err)
			return qb
		}
		parsed = append(parsed, cond)
	}
	return qb.Where(parsed...)
}

// Err, zincirleme sırasında oluşan ilk hatayı döndürür.
func (qb *QueryBuilder) Err() error {
	return qb.err
}

func (qb *QueryBuilder) setErr(err error) {
	if qb.err == nil {
		qb.err = err
	}
}

// WhereSQL, biriken WHERE parçalarını " WHERE a AND b" olarak döndürür.
func (qb *QueryBuilder) WhereSQL() string {
	if len(qb.wheres) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(qb.wheres, " AND ")
}

// Reset, WHERE parçalarını, parametreleri ve hatayı temizler.
func (qb *QueryBuilder) Reset() *QueryBuilder {
	qb.params = make(Params)
	qb.wheres = nil
	qb.err = nil
	return qb
}

func (qb *QueryBuilder) check() error {
	if qb.err != nil {
		return qb.err
	}
	if qb.table == "" {
		return ErrNoTable
	}
	return nil
}

// ToSelectSQL, Get() sorgusunu döndürür. WHERE parçaları uygulanmaz.
func (qb *QueryBuilder) ToSelectSQL() (string, error) {
	if err := qb.check(); err != nil {
		return "", err
	}
	return qb.grammar.CompileSelect(qb.table, ""), nil
}

// ToFetchSQL, Fetch() sorgusunu (WHERE dahil) döndürür.
func (qb *QueryBuilder) ToFetchSQL() (string, error) {
	if err := qb.check(); err != nil {
		return "", err
	}
	return qb.grammar.CompileSelect(qb.table, qb.WhereSQL()), nil
}

// ToInsertSQL, INSERT sorgusunu döndürür ve veriyi parametre olarak kaydeder.
func (qb *QueryBuilder) ToInsertSQL(data Data) (string, error) {
	if err := qb.check(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoColumns
	}
	qb.SetParams(data.Map())
	return qb.grammar.CompileInsert(qb.table, data.Columns()), nil
}

// ToUpdateSQL, UPDATE sorgusunu döndürür ve veriyi parametre olarak kaydeder.
func (qb *QueryBuilder) ToUpdateSQL(data Data) (string, error) {
	if err := qb.check(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoColumns
	}
	qb.SetParams(data.Map())
	return qb.grammar.CompileUpdate(qb.table, data.Columns(), qb.WhereSQL()), nil
}

// ToDeleteSQL, DELETE sorgusunu döndürür.
func (qb *QueryBuilder) ToDeleteSQL() (string, error) {
	if err := qb.check(); err != nil {
		return "", err
	}
	return qb.grammar.CompileDelete(qb.table, qb.WhereSQL()), nil
}

// Execute, sorguyu bekleyen tüm parametreleri isimleriyle bağlayarak bir kez çalıştırır.
// Sürücü hataları sarmalanmadan döner.
func (qb *QueryBuilder) Execute(ctx context.Context, query string) (sql.Result, error) {
	return sqlx.NamedExecContext(ctx, qb.executor, query, map[string]any(qb.params))
}

func (qb *QueryBuilder) query(ctx context.Context, query string) (*sqlx.Rows, error) {
	return sqlx.NamedQueryContext(ctx, qb.executor, query, map[string]any(qb.params))
}

// Get, "SELECT * FROM <table>" çalıştırır ve satırları map olarak döndürür.
// WHERE parçaları bu sorguya uygulanmaz; filtreli okuma için Fetch kullanın.
func (qb *QueryBuilder) Get(ctx context.Context) ([]map[string]any, error) {
	defer qb.Reset()

	sqlStr, err := qb.ToSelectSQL()
	if err != nil {
		return nil, err
	}
	rows, err := qb.query(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

// Fetch, biriken WHERE koşullarıyla SELECT çalıştırır.
func (qb *QueryBuilder) Fetch(ctx context.Context) ([]map[string]any, error) {
	defer qb.Reset()

	sqlStr, err := qb.ToFetchSQL()
	if err != nil {
		return nil, err
	}
	rows, err := qb.query(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

// Insert, veriyi ekler ve {"id": <yeni id>} döndürür.
func (qb *QueryBuilder) Insert(ctx context.Context, data Data) (map[string]any, error) {
	defer qb.Reset()

	sqlStr, err := qb.ToInsertSQL(data)
	if err != nil {
		return nil, err
	}

	if qb.grammar.ReturningID() {
		rows, err := qb.query(ctx, sqlStr)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var id int64
		if rows.Next() {
			if err := rows.Scan(&id); err != nil {
				return nil, err
			}
		}
		return map[string]any{"id": id}, rows.Err()
	}

	res, err := qb.Execute(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": id}, nil
}

// Update, veriyi günceller ve etkilenen satır sayısını döndürür.
//
// UYARI: WHERE koşulu yoksa tüm tablo güncellenir.
func (qb *QueryBuilder) Update(ctx context.Context, data Data) (int64, error) {
	defer qb.Reset()

	sqlStr, err := qb.ToUpdateSQL(data)
	if err != nil {
		return 0, err
	}
	res, err := qb.Execute(ctx, sqlStr)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete, satırları siler ve etkilenen satır sayısını döndürür.
//
// UYARI: WHERE koşulu yoksa TÜM TABLO silinir.
func (qb *QueryBuilder) Delete(ctx context.Context) (int64, error) {
	defer qb.Reset()

	sqlStr, err := qb.ToDeleteSQL()
	if err != nil {
		return 0, err
	}
	res, err := qb.Execute(ctx, sqlStr)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
