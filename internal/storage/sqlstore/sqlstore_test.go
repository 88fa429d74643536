package sqlstore

import "testing"

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{Question, "SELECT * FROM splits WHERE id = ?", "SELECT * FROM splits WHERE id = ?"},
		{Dollar, "SELECT * FROM splits WHERE id = ?", "SELECT * FROM splits WHERE id = $1"},
		{Dollar, "INSERT INTO t (a, b, c) VALUES (?, ?, ?)", "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)"},
		{Dollar, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := &Store{dialect: tt.dialect}
			if got := s.rebind(tt.in); got != tt.want {
				t.Errorf("rebind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
