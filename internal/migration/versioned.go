package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Type is the concrete kind of an authored migration.
type Type string

const (
	TypeSimple     Type = "simple"
	TypeReversible Type = "reversible"
)

// Migration is one previously authored migration on disk. Reversible
// migrations carry both halves; Path is the forward script in either case.
type Migration struct {
	Version  int64
	Name     string
	Type     Type
	Path     string
	DownPath string
}

var (
	simpleFileRegex     = regexp.MustCompile(`^(\d+)_(.+?)\.sql$`)
	reversibleFileRegex = regexp.MustCompile(`^(\d+)_(.+?)\.(up|down)\.sql$`)
)

// Scan enumerates the migration files in dir into a version-ordered history.
// Files that do not match a migration name pattern are skipped. A .down.sql
// without its .up.sql half is an error; an .up.sql without a .down.sql is
// kept (its rollback may not be written yet).
func Scan(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	byVersion := map[int64]*Migration{}
	downs := map[int64]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if m := reversibleFileRegex.FindStringSubmatch(name); m != nil {
			version, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			path := filepath.Join(dir, name)
			if m[3] == "down" {
				downs[version] = path
				continue
			}
			if dup, exists := byVersion[version]; exists {
				return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, dup.Path, path)
			}
			byVersion[version] = &Migration{Version: version, Name: m[2], Type: TypeReversible, Path: path}
			continue
		}
		if m := simpleFileRegex.FindStringSubmatch(name); m != nil {
			version, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			path := filepath.Join(dir, name)
			if dup, exists := byVersion[version]; exists {
				return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, dup.Path, path)
			}
			byVersion[version] = &Migration{Version: version, Name: m[2], Type: TypeSimple, Path: path}
		}
	}

	for version, path := range downs {
		up, ok := byVersion[version]
		if !ok || up.Type != TypeReversible {
			return nil, fmt.Errorf("orphan down migration: %s", path)
		}
		up.DownPath = path
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// ScanIfExists behaves like Scan but treats a missing directory as an empty
// history, which is the normal state before the first migration is authored.
func ScanIfExists(dir string) ([]Migration, error) {
	migrations, err := Scan(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return migrations, err
}
