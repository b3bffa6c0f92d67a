// -----------------------------------------------------------------------------
// User Model
// -----------------------------------------------------------------------------
// users tablosunun Go karşılığı. QueryBuilder satırları map olarak döndürür;
// UserFromRow bu map'i driver'dan bağımsız şekilde User'a çevirir.
// -----------------------------------------------------------------------------

package models

import (
	"fmt"
	"strconv"
)

// User, users tablosunu temsil eden modeldir.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"` // json:"-" = API'ye göndermez
	Avatar   string `json:"avatar,omitempty" db:"avatar"`
}

// UserFromRow, QueryBuilder'dan dönen satırı User'a çevirir.
func UserFromRow(row map[string]any) (*User, error) {
	id, err := toInt64(row["id"])
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	return &User{
		ID:       id,
		Name:     toString(row["name"]),
		Email:    toString(row["email"]),
		Password: toString(row["password"]),
		Avatar:   toString(row["avatar"]),
	}, nil
}

// toInt64, driver'a göre farklı tiplerde gelen tamsayıyı çevirir
// (sqlite/pgx int64, mysql string).
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}
