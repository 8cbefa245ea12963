package database

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestSettingsRepoGetMissing(t *testing.T) {
	repo := NewSettingsRepository(setupTestDB(t))

	value, ok, err := repo.Get("nope")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Error("Expected missing key to report not found")
	}
	if value != "" {
		t.Errorf("Expected empty value, got %q", value)
	}
}

func TestSettingsRepoSetAndGet(t *testing.T) {
	repo := NewSettingsRepository(setupTestDB(t))

	if err := repo.Set("api_key", "secret"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	value, ok, err := repo.Get("api_key")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !ok {
		t.Fatal("Expected key to exist")
	}
	if value != "secret" {
		t.Errorf("Expected 'secret', got %q", value)
	}
}

func TestSettingsRepoUpsert(t *testing.T) {
	repo := NewSettingsRepository(setupTestDB(t))

	if err := repo.Set("timezone", "UTC"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := repo.Set("timezone", "Asia/Bangkok"); err != nil {
		t.Fatalf("Expected no error on overwrite, got %v", err)
	}

	value, _, err := repo.Get("timezone")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != "Asia/Bangkok" {
		t.Errorf("Expected the newer value, got %q", value)
	}
}

func TestSettingsRepoGetAll(t *testing.T) {
	repo := NewSettingsRepository(setupTestDB(t))

	if err := repo.Set("a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Set("b", "2"); err != nil {
		t.Fatal(err)
	}

	values, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(values) != 2 {
		t.Errorf("Expected 2 settings, got %d", len(values))
	}
	if values["a"] != "1" || values["b"] != "2" {
		t.Errorf("Expected stored values back, got %v", values)
	}
}

func TestSettingsRepoDelete(t *testing.T) {
	repo := NewSettingsRepository(setupTestDB(t))

	if err := repo.Set("doomed", "value"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete("doomed"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, ok, err := repo.Get("doomed")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Error("Expected key to be gone after delete")
	}
}
