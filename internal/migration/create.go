package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/loykin/sqlrun/internal/config"
	"github.com/loykin/sqlrun/internal/constants"
	"github.com/loykin/sqlrun/internal/util"
)

const (
	simpleTemplate = "-- Add migration script here\n"
	upTemplate     = "-- Add up migration script here\n"
	downTemplate   = "-- Add down migration script here\n"
)

// CreateOptions configures authoring of a new migration.
type CreateOptions struct {
	// Name becomes the slugified description part of the filename.
	Name string
	// Dir is the migrations directory; created if missing.
	Dir string
	// Type and Versioning default to the inferred tag, which consults the
	// existing history in Dir.
	Type       config.MigrationType
	Versioning config.Versioning
	// Now is the clock for timestamp versions; defaults to time.Now.
	Now func() time.Time
}

// Create authors a new migration in opts.Dir and returns the created paths:
// one file for a simple migration, the up/down pair for a reversible one.
func Create(opts CreateOptions) ([]string, error) {
	dir, ok := util.TrimEmptyCheck(opts.Dir)
	if !ok {
		return nil, fmt.Errorf("create migration: dir is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}

	history, err := ScanIfExists(dir)
	if err != nil {
		return nil, err
	}

	typ := ResolveType(opts.Type, history)
	scheme := ResolveScheme(opts.Versioning, history)
	version := nextVersion(scheme, history, opts.Now)
	slug := slugify(util.TrimWithDefault(opts.Name, "migration"))

	var files map[string]string
	switch typ {
	case TypeReversible:
		files = map[string]string{
			fmt.Sprintf("%d_%s.up.sql", version, slug):   upTemplate,
			fmt.Sprintf("%d_%s.down.sql", version, slug): downTemplate,
		}
	default:
		files = map[string]string{
			fmt.Sprintf("%d_%s.sql", version, slug): simpleTemplate,
		}
	}

	paths := make([]string, 0, len(files))
	for name, content := range files {
		p := filepath.Join(dir, name)
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("create migration %s: %w", p, err)
		}
		if _, err := f.WriteString(content); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	orderPair(paths)
	return paths, nil
}

func nextVersion(scheme Scheme, history []Migration, now func() time.Time) int64 {
	if scheme == SchemeSequential {
		if len(history) == 0 {
			return 1
		}
		return history[len(history)-1].Version + 1
	}
	if now == nil {
		now = time.Now
	}
	v, _ := strconv.ParseInt(now().UTC().Format(constants.VersionTimestampLayout), 10, 64)
	return v
}

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	s := strings.Trim(slugRegex.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if s == "" {
		return "migration"
	}
	return s
}

// orderPair keeps the returned pair stable; .down.sql sorts before .up.sql.
func orderPair(paths []string) {
	if len(paths) == 2 && paths[0] > paths[1] {
		paths[0], paths[1] = paths[1], paths[0]
	}
}
