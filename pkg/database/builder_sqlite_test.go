package database

import (
	"context"
	"testing"
)

// setupUsers, geçici bir SQLite dosyasında users tablosu oluşturur.
func setupUsers(t *testing.T) (*Registry, Config) {
	t.Helper()

	reg := NewRegistry(testLogger())
	t.Cleanup(func() { reg.Close() })

	cfg := sqliteConfig(t, "users.db")
	db, err := reg.Connect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	_, err = db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		age INTEGER NOT NULL
	)`)
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	return reg, cfg
}

func TestBuilder_InsertReturnsID(t *testing.T) {
	reg, cfg := setupUsers(t)
	ctx := context.Background()

	qb, err := reg.Builder(ctx, cfg, "users")
	if err != nil {
		t.Fatalf("Builder failed: %v", err)
	}

	res, err := qb.Insert(ctx, Data{P("name", "a"), P("age", 5)})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if res["id"] != int64(1) {
		t.Errorf("Expected id 1, got %v", res["id"])
	}

	res, err = qb.Insert(ctx, Data{P("name", "b"), P("age", 7)})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if res["id"] != int64(2) {
		t.Errorf("Expected id 2, got %v", res["id"])
	}
}

func TestBuilder_UpdateDeleteGetFetch(t *testing.T) {
	reg, cfg := setupUsers(t)
	ctx := context.Background()

	qb, _ := reg.Builder(ctx, cfg, "users")
	for _, name := range []string{"a", "b", "c"} {
		if _, err := qb.Insert(ctx, Data{P("name", name), P("age", 5)}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	n, err := qb.WhereTuples([]any{"id", "=", 1}).Update(ctx, Data{P("age", 6)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 affected row, got %d", n)
	}

	rows, err := qb.Where(Compare{Field: "age", Operator: ">", Value: 5}).Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "a" {
		t.Errorf("Expected only user a, got %v", rows)
	}

	n, err = qb.WhereTuples([]any{"id", 2}).Delete(ctx)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 deleted row, got %d", n)
	}

	// Get WHERE uygulamaz
	all, err := qb.Where(Equals{Field: "id", Value: 1}).Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(all))
	}
}

func TestBuilder_StateClearedAfterTerminal(t *testing.T) {
	reg, cfg := setupUsers(t)
	ctx := context.Background()

	qb, _ := reg.Builder(ctx, cfg, "users")
	qb.Insert(ctx, Data{P("name", "a"), P("age", 1)})
	qb.Insert(ctx, Data{P("name", "b"), P("age", 2)})

	if _, err := qb.WhereTuples([]any{"id", 1}).Delete(ctx); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if qb.WhereSQL() != "" || len(qb.Params()) != 0 {
		t.Error("Expected builder state to be cleared after a terminal operation")
	}

	n, err := qb.Update(ctx, Data{P("age", 9)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected the remaining row to be updated, got %d", n)
	}
}

func TestBuilder_DriverErrorsPropagate(t *testing.T) {
	reg, cfg := setupUsers(t)
	ctx := context.Background()

	qb, _ := reg.Builder(ctx, cfg, "missing_table")
	if _, err := qb.Get(ctx); err == nil {
		t.Error("Expected driver error for unknown table")
	}

	qb.Table("users")
	if _, err := qb.Insert(ctx, Data{P("unknown_column", 1)}); err == nil {
		t.Error("Expected driver error for unknown column")
	}
}

func TestBuilder_SameFieldParamsShareOneBinding(t *testing.T) {
	reg, cfg := setupUsers(t)
	ctx := context.Background()

	qb, _ := reg.Builder(ctx, cfg, "users")
	for _, age := range []int{5, 30, 70} {
		qb.Insert(ctx, Data{P("name", "u"), P("age", age)})
	}

	// İki koşul da :age kullanır; son değer (65) ikisine de bağlanır.
	qb.Where(
		Compare{Field: "age", Operator: ">", Value: 18},
		Compare{Field: "age", Operator: "<", Value: 65},
	)
	if qb.Params()["age"] != 65 {
		t.Errorf("Expected the later value to win, got %v", qb.Params()["age"])
	}
	rows, err := qb.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected age > 65 AND age < 65 to match nothing, got %d rows", len(rows))
	}

	// UPDATE kolonu WHERE parametresini ezer: WHERE age = 6 olur.
	n, err := qb.Where(Equals{Field: "age", Value: 5}).Update(ctx, Data{P("age", 6)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 affected rows, got %d", n)
	}
}
