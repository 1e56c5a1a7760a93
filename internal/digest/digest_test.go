package digest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStrip_RemovesIgnoredChars(t *testing.T) {
	n := NewNormalizer([]rune{' ', '\t', '\r', '\n', '\uFEFF'})
	got := string(n.Strip([]byte("\uFEFFCREATE TABLE foo (\r\n\tid INT\r\n);\n")))
	if got != "CREATETABLEfoo(idINT);" {
		t.Fatalf("Strip = %q", got)
	}
}

func TestStrip_EmptySetIsPassThrough(t *testing.T) {
	n := NewNormalizer(nil)
	src := []byte("SELECT 1;\r\n")
	if got := string(n.Strip(src)); got != string(src) {
		t.Fatalf("Strip = %q", got)
	}
}

func TestFingerprint_StableUnderReformatting(t *testing.T) {
	n := NewNormalizer([]rune{' ', '\t', '\r', '\n'})
	unix := []byte("CREATE TABLE foo (\n  id INT\n);\n")
	windows := []byte("CREATE TABLE foo (\r\n\tid INT\r\n);\r\n")
	if n.Fingerprint(unix) != n.Fingerprint(windows) {
		t.Fatalf("reformatted content should fingerprint identically")
	}

	// Without ignored characters the same two files differ.
	plain := NewNormalizer(nil)
	if plain.Fingerprint(unix) == plain.Fingerprint(windows) {
		t.Fatalf("expected differing fingerprints without ignored chars")
	}
}

func TestFingerprint_ContentChangesAreVisible(t *testing.T) {
	n := NewNormalizer([]rune{'\r'})
	a := n.Fingerprint([]byte("CREATE TABLE a (id INT);"))
	b := n.Fingerprint([]byte("CREATE TABLE b (id INT);"))
	if a == b {
		t.Fatalf("different content must not collide")
	}
}

func TestFingerprintFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "001_init.sql")
	if err := os.WriteFile(p, []byte("SELECT 1;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	n := NewNormalizer([]rune{'\r'})
	got, err := n.FingerprintFile(p)
	if err != nil {
		t.Fatalf("FingerprintFile: %v", err)
	}
	if want := n.Fingerprint([]byte("SELECT 1;\r\n")); got != want {
		t.Fatalf("FingerprintFile = %q, want %q", got, want)
	}
	if _, err := n.FingerprintFile(filepath.Join(dir, "missing.sql")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
