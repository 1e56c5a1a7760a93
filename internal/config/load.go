package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/loykin/sqlrun/internal/util"
	"github.com/loykin/sqlrun/pkg/env"
	"github.com/pelletier/go-toml/v2"
)

// migrateDoc is the strict shape of the [migrate] table. Unknown keys at
// this level are rejected. Defaults and drivers are decoded separately so
// their own guarding rules apply: defaults tolerates unknown keys, driver
// tables do not.
type migrateDoc struct {
	CreateSchemas []string                  `toml:"create-schemas"`
	TableName     string                    `toml:"table-name"`
	MigrationsDir string                    `toml:"migrations-dir"`
	IgnoredChars  []string                  `toml:"ignored-chars"`
	Defaults      map[string]any            `toml:"defaults"`
	Drivers       map[string]map[string]any `toml:"drivers"`
}

type defaultsDoc struct {
	MigrationType       string `mapstructure:"migration-type"`
	MigrationVersioning string `mapstructure:"migration-versioning"`
}

type logDoc struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the configuration document at path. A missing file is a normal
// condition and yields the default configuration; anything else that is not
// a parsable regular file is an error.
func Load(path string, e env.Env) (*Config, error) {
	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return New(e), nil
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", clean)
	}
	// #nosec G304 -- config path is provided intentionally by the user/CI; cleaned and validated above
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data, e)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", clean, err)
	}
	return c, nil
}

// Parse decodes a configuration document. Only the [migrate] table is
// guarded; top-level tables belonging to other tools are tolerated. The
// returned Config has already taken its construction-time environment
// snapshot from e.
func Parse(data []byte, e env.Env) (*Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c := &Config{
		defaults: Defaults{MigrationType: TypeInferred, MigrationVersioning: VersioningInferred},
		drivers:  newDrivers(),
		env:      e,
	}

	if migrate, ok := raw["migrate"]; ok {
		tbl, ok := migrate.(map[string]any)
		if !ok {
			return nil, errors.New("migrate: expected a table")
		}
		if err := c.decodeMigrate(tbl); err != nil {
			return nil, err
		}
	}

	if logTbl, ok := raw["log"].(map[string]any); ok {
		var doc logDoc
		if err := mapstructure.Decode(logTbl, &doc); err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		c.log = Log{Level: doc.Level, Format: doc.Format}
	}

	c.seedFromEnv()
	return c, nil
}

func (c *Config) decodeMigrate(tbl map[string]any) error {
	// Round-trip the subtree so only [migrate] is held to the strict rules.
	b, err := toml.Marshal(tbl)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	var doc migrateDoc
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("migrate: unknown keys:\n%s", strict.String())
		}
		return fmt.Errorf("migrate: %w", err)
	}

	// An explicitly empty value would be indistinguishable from an absent key
	// in the resolver, where empty means "apply the fallback chain".
	for _, key := range []string{"table-name", "migrations-dir"} {
		if v, present := tbl[key]; present {
			if s, isStr := v.(string); isStr && s == "" {
				return fmt.Errorf("migrate.%s: must not be empty", key)
			}
		}
	}

	c.createSchemas = normalizeSet(doc.CreateSchemas)
	c.tableName = doc.TableName
	c.migrationsDir = doc.MigrationsDir

	chars, err := parseIgnoredChars(doc.IgnoredChars)
	if err != nil {
		return err
	}
	c.ignoredChars = chars

	if err := c.decodeDefaults(doc.Defaults); err != nil {
		return err
	}
	return c.drivers.decode(doc.Drivers)
}

func (c *Config) decodeDefaults(tbl map[string]any) error {
	if tbl == nil {
		return nil
	}
	var doc defaultsDoc
	if err := mapstructure.Decode(tbl, &doc); err != nil {
		return fmt.Errorf("migrate.defaults: %w", err)
	}
	mt, err := ParseMigrationType(doc.MigrationType)
	if err != nil {
		return fmt.Errorf("migrate.defaults.migration-type: %w", err)
	}
	mv, err := ParseVersioning(doc.MigrationVersioning)
	if err != nil {
		return fmt.Errorf("migrate.defaults.migration-versioning: %w", err)
	}
	c.defaults = Defaults{MigrationType: mt, MigrationVersioning: mv}
	return nil
}

func parseIgnoredChars(in []string) ([]rune, error) {
	chars := make([]rune, 0, len(in))
	for _, s := range in {
		r := []rune(s)
		if len(r) != 1 {
			return nil, fmt.Errorf("migrate.ignored-chars: %q is not a single character", s)
		}
		chars = append(chars, r[0])
	}
	return normalizeRunes(chars), nil
}

// ParseMigrationType validates a migration-type value. The empty string maps
// to the inferred tag.
func ParseMigrationType(s string) (MigrationType, error) {
	switch util.TrimAndLower(s) {
	case "", string(TypeInferred):
		return TypeInferred, nil
	case string(TypeSimple):
		return TypeSimple, nil
	case string(TypeReversible):
		return TypeReversible, nil
	default:
		return "", fmt.Errorf("invalid migration type: %s (valid: inferred, simple, reversible)", s)
	}
}

// ParseVersioning validates a migration-versioning value. The empty string
// maps to the inferred tag.
func ParseVersioning(s string) (Versioning, error) {
	switch util.TrimAndLower(s) {
	case "", string(VersioningInferred):
		return VersioningInferred, nil
	case string(VersioningTimestamp):
		return VersioningTimestamp, nil
	case string(VersioningSequential):
		return VersioningSequential, nil
	default:
		return "", fmt.Errorf("invalid versioning scheme: %s (valid: inferred, timestamp, sequential)", s)
	}
}
