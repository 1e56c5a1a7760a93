package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan_OrdersByVersion(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"3_add_index.sql",
		"1_init.sql",
		"20240830120000_late.sql",
		"2_users.up.sql",
		"2_users.down.sql",
		"README.md",
		"notes.txt",
	)

	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 migrations, got %d: %+v", len(got), got)
	}
	wantVersions := []int64{1, 2, 3, 20240830120000}
	for i, m := range got {
		if m.Version != wantVersions[i] {
			t.Fatalf("order mismatch at %d: %+v", i, got)
		}
	}
	if got[1].Type != TypeReversible || got[1].DownPath == "" {
		t.Fatalf("version 2 should be a paired reversible migration: %+v", got[1])
	}
	if got[0].Type != TypeSimple || got[0].Name != "init" {
		t.Fatalf("version 1 parsed wrong: %+v", got[0])
	}
}

func TestScan_UpWithoutDownIsKept(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "1_init.up.sql")
	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 || got[0].Type != TypeReversible || got[0].DownPath != "" {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestScan_OrphanDownFails(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "1_init.down.sql")
	if _, err := Scan(dir); err == nil || !strings.Contains(err.Error(), "orphan down") {
		t.Fatalf("expected orphan down error, got %v", err)
	}
}

func TestScan_DuplicateVersionFails(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "1_init.sql", "1_other.sql")
	if _, err := Scan(dir); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestScanIfExists_MissingDir(t *testing.T) {
	got, err := ScanIfExists(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("ScanIfExists: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %+v", got)
	}
}
