package repository

import (
	"os"
	"strings"
	"testing"
)

// tableColumns extracts the column names declared in the CREATE TABLE
// block for the given table.
func tableColumns(t *testing.T, ddl, table string) map[string]bool {
	t.Helper()

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(ddl, marker)
	if start < 0 {
		t.Fatalf("table %s not found in migration", table)
	}

	block := ddl[start+len(marker):]
	end := strings.Index(block, ");")
	if end < 0 {
		t.Fatalf("table %s block not terminated", table)
	}
	block = block[:end]

	columns := make(map[string]bool)
	for _, line := range strings.Split(block, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] == "CONSTRAINT" {
			continue
		}
		columns[fields[0]] = true
	}

	return columns
}

// TestMigrationCoversRepositoryColumns verifies that every column the
// repository queries reference is declared in the initial migration.
func TestMigrationCoversRepositoryColumns(t *testing.T) {
	ddl, err := os.ReadFile("../../../migrations/001_init.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}

	tests := []struct {
		table   string
		columns []string
	}{
		{
			table: "users",
			columns: []string{
				"id", "firstname", "lastname", "email", "password", "role",
				"created_by", "updated_by", "created_at", "updated_at",
			},
		},
		{
			table: "categories",
			columns: []string{
				"id", "name", "slug",
				"created_by", "updated_by", "created_at", "updated_at",
			},
		},
		{
			table: "products",
			columns: []string{
				"id", "name", "slug", "price", "description", "on_sale", "sale",
				"category_id", "created_by", "updated_by", "created_at", "updated_at",
			},
		},
		{
			table: "reviews",
			columns: []string{
				"id", "product_id", "rating", "message",
				"created_by", "updated_by", "created_at", "updated_at",
			},
		},
		{
			table: "audit_logs",
			columns: []string{
				"id", "action", "user_id", "target_id", "target_kind",
				"details", "timestamp",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			declared := tableColumns(t, string(ddl), tt.table)
			for _, column := range tt.columns {
				if !declared[column] {
					t.Errorf("table %s is missing column %s", tt.table, column)
				}
			}
		})
	}
}
