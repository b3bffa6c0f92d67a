package database

import (
	"github.com/jmoiron/sqlx"
)

// -----------------------------------------------------------------------------
// RESULT HELPERS
// -----------------------------------------------------------------------------
// SQL'den dönen satırları []map[string]any biçimine dönüştürür. MySQL metin
// kolonlarını []byte olarak döndürdüğü için bunlar string'e çevrilir.
// -----------------------------------------------------------------------------

// rowsToMaps: sqlx.Rows'u []map[string]any biçimine dönüştürür.
func rowsToMaps(rows *sqlx.Rows) ([]map[string]any, error) {
	res := make([]map[string]any, 0)

	for rows.Next() {
		m := make(map[string]any)
		if err := rows.MapScan(m); err != nil {
			return nil, err
		}
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				m[k] = string(b)
			}
		}
		res = append(res, m)
	}

	return res, rows.Err()
}
