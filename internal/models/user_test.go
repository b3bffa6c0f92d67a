package models

import "testing"

func TestUserFromRow(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]any
		id   int64
	}{
		{"sqlite int64", map[string]any{"id": int64(3), "name": "Ali", "email": "a@x.io"}, 3},
		{"mysql string", map[string]any{"id": "7", "name": "Ali", "email": "a@x.io"}, 7},
		{"bytes", map[string]any{"id": []byte("9"), "name": []byte("Ali"), "email": "a@x.io"}, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := UserFromRow(tc.row)
			if err != nil {
				t.Fatalf("UserFromRow failed: %v", err)
			}
			if u.ID != tc.id || u.Name != "Ali" || u.Avatar != "" {
				t.Errorf("Unexpected user: %+v", u)
			}
		})
	}

	if _, err := UserFromRow(map[string]any{"id": true}); err == nil {
		t.Error("Expected error for invalid id")
	}
}
