package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/loykin/sqlrun/internal/config"
)

func fixedClock() time.Time {
	return time.Date(2024, 8, 30, 12, 0, 0, 0, time.UTC)
}

func TestCreate_SequentialSimple(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "1_init.sql", "2_users.sql")

	paths, err := Create(CreateOptions{Name: "Add Index", Dir: dir})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "3_add_index.sql" {
		t.Fatalf("unexpected paths: %v", paths)
	}
	b, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "-- Add migration script here") {
		t.Fatalf("missing template content: %q", b)
	}
}

func TestCreate_FirstMigrationIsSequential(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")
	paths, err := Create(CreateOptions{Name: "init", Dir: dir})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Base(paths[0]) != "1_init.sql" {
		t.Fatalf("unexpected path: %v", paths)
	}
}

func TestCreate_TimestampVersioning(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "1_init.sql", "5_gap.sql")

	paths, err := Create(CreateOptions{Name: "late", Dir: dir, Now: fixedClock})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Base(paths[0]) != "20240830120000_late.sql" {
		t.Fatalf("gapped history should infer timestamp versions: %v", paths)
	}
}

func TestCreate_ReversiblePair(t *testing.T) {
	dir := t.TempDir()
	paths, err := Create(CreateOptions{Name: "users", Dir: dir, Type: config.TypeReversible})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected up/down pair, got %v", paths)
	}
	if filepath.Base(paths[0]) != "1_users.down.sql" || filepath.Base(paths[1]) != "1_users.up.sql" {
		t.Fatalf("unexpected pair: %v", paths)
	}
	up, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(up), "up migration") {
		t.Fatalf("up template missing: %q", up)
	}
}

func TestCreate_InferredTypeFollowsHistory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "1_init.up.sql", "1_init.down.sql")

	paths, err := Create(CreateOptions{Name: "next", Dir: dir})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("latest migration is reversible, expected a pair: %v", paths)
	}
}

func TestCreate_ExplicitVersioningBeatsInference(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "1_init.sql", "2_users.sql")

	paths, err := Create(CreateOptions{
		Name:       "forced",
		Dir:        dir,
		Versioning: config.VersioningTimestamp,
		Now:        fixedClock,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Base(paths[0]) != "20240830120000_forced.sql" {
		t.Fatalf("explicit scheme should win: %v", paths)
	}
}

func TestCreate_ErrorOnEmptyDir(t *testing.T) {
	if _, err := Create(CreateOptions{Name: "x", Dir: " "}); err == nil {
		t.Fatalf("expected error when dir is empty")
	}
}

func TestCreate_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "20240830120000_late.sql")
	_, err := Create(CreateOptions{
		Name:       "late",
		Dir:        dir,
		Versioning: config.VersioningTimestamp,
		Now:        fixedClock,
	})
	if err == nil {
		t.Fatalf("expected collision error for an existing file")
	}
}

func TestSlugify(t *testing.T) {
	for in, want := range map[string]string{
		"Create User":   "create_user",
		"  add-index  ": "add_index",
		"###":           "migration",
	} {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
