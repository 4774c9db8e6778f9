package storage

import "testing"

// TestValuesClause verifies the batch-insert placeholder builder numbers
// parameters consecutively across rows.
func TestValuesClause(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols int
		want string
	}{
		{"single row", 1, 3, "($1,$2,$3)"},
		{"two rows", 2, 2, "($1,$2),($3,$4)"},
		{"single column", 3, 1, "($1),($2),($3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := valuesClause(tt.rows, tt.cols); got != tt.want {
				t.Errorf("valuesClause(%d, %d) = %q, want %q", tt.rows, tt.cols, got, tt.want)
			}
		})
	}
}
