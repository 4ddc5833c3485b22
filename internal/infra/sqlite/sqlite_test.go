package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func mustOpenMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	return db
}

func TestNewDB_MissingParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "unitai.db")
	if _, err := NewDB(context.Background(), path); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}

func TestNewDB_FileDatabase_WALEnabled(t *testing.T) {
	t.Parallel()

	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "unitai.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close() //nolint:errcheck

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrateUp_CreatesConversionsTable(t *testing.T) {
	t.Parallel()

	db := mustOpenMemory(t)
	ctx := context.Background()

	n, err := MigrateUp(ctx, db)
	if err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 migration applied, got %d", n)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='conversions'").Scan(&count); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Error("conversions table not created")
	}

	version, err := MigrationVersion(ctx, db)
	if err != nil || version != 1 {
		t.Errorf("MigrationVersion = %d, %v; want 1", version, err)
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	t.Parallel()

	db := mustOpenMemory(t)
	ctx := context.Background()

	if _, err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("first MigrateUp: %v", err)
	}
	n, err := MigrateUp(ctx, db)
	if err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 migrations on re-run, got %d", n)
	}
}

func TestLoadMigrationFiles_SortsNumerically(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"migrations/010_ten.up.sql": {Data: []byte("SELECT 10;")},
		"migrations/002_two.up.sql": {Data: []byte("SELECT 2;")},
		"migrations/README.md":      {Data: []byte("ignored")},
	}
	files, err := loadMigrationFiles(fsys)
	if err != nil {
		t.Fatalf("loadMigrationFiles: %v", err)
	}
	if len(files) != 2 || files[0].version != 2 || files[1].version != 10 {
		t.Errorf("unexpected order: %+v", files)
	}
}

func TestLoadMigrationFiles_RejectsBadNames(t *testing.T) {
	t.Parallel()

	cases := map[string]fstest.MapFS{
		"no prefix": {"migrations/init.up.sql": {Data: []byte("SELECT 1;")}},
		"duplicate": {
			"migrations/001_a.up.sql": {Data: []byte("SELECT 1;")},
			"migrations/01_b.up.sql":  {Data: []byte("SELECT 1;")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadMigrationFiles(fsys); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}

func TestVersionFromFilename(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"001_conversions.up.sql": 1,
		"042_index.up.sql":       42,
		"bad.up.sql":             0,
	}
	for in, want := range cases {
		if got := versionFromFilename(in); got != want {
			t.Errorf("versionFromFilename(%q) = %d, want %d", in, got, want)
		}
	}
}
