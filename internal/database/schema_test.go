package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_perfumes_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}

		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}

		if !strings.Contains(contentStr, "-- +goose StatementBegin") {
			t.Errorf("Migration file %s missing '-- +goose StatementBegin' directive", file.Name())
		}

		if !strings.Contains(contentStr, "-- +goose StatementEnd") {
			t.Errorf("Migration file %s missing '-- +goose StatementEnd' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestPerfumesMigrationCreatesExpectedSchema(t *testing.T) {
	path := filepath.Join("../../migrations", "00001_create_perfumes_table.sql")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read migration file: %v", err)
	}

	contentStr := string(content)

	if !strings.Contains(contentStr, "CREATE TABLE IF NOT EXISTS perfumes") {
		t.Error("Migration does not create the perfumes table")
	}

	if !strings.Contains(contentStr, "DROP TABLE IF EXISTS perfumes") {
		t.Error("Migration does not drop the perfumes table in the down section")
	}

	// Columns the queries depend on
	expectedColumns := []string{
		"name", "brand", "description", "price", "volume",
		"category", "notes_top", "notes_middle", "notes_base",
		"gender", "image_url", "stock_quantity", "is_available",
		"created_at", "updated_at",
	}
	for _, column := range expectedColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Migration does not define column %s", column)
		}
	}

	// Listing filters on availability and orders by recency
	if !strings.Contains(contentStr, "idx_perfumes_active_created_at") {
		t.Error("Migration does not create the active listing index")
	}
}
