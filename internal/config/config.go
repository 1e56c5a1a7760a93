package config

import (
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/loykin/sqlrun/internal/constants"
	"github.com/loykin/sqlrun/internal/digest"
	"github.com/loykin/sqlrun/internal/util"
	"github.com/loykin/sqlrun/pkg/env"
)

// MigrationType selects what kind of file(s) `sqlrun create` writes:
// a single forward script or an up/down pair.
type MigrationType string

const (
	TypeInferred   MigrationType = "inferred"
	TypeSimple     MigrationType = "simple"
	TypeReversible MigrationType = "reversible"
)

// Versioning selects the numbering scheme for new migration versions.
type Versioning string

const (
	VersioningInferred   Versioning = "inferred"
	VersioningTimestamp  Versioning = "timestamp"
	VersioningSequential Versioning = "sequential"
)

// Defaults holds the authoring defaults for new migrations. The inferred tag
// means "ask the inferencer with the existing migration history"; see
// internal/migration.
type Defaults struct {
	MigrationType       MigrationType
	MigrationVersioning Versioning
}

// Log is the optional, unguarded [log] table consumed by the CLI.
type Log struct {
	Level  string
	Format string
}

// Config is the parsed, possibly partial [migrate] tree plus the injected
// environment provider. It is immutable after construction; every accessor
// re-derives its answer from the stored fields, the provider, and the
// built-in fallbacks. There is no cached resolved form.
type Config struct {
	createSchemas []string
	tableName     string
	migrationsDir string
	ignoredChars  []rune
	defaults      Defaults
	drivers       Drivers
	log           Log

	env env.Env
}

// New returns the default configuration. MIGRATIONS_TABLE and
// MIGRATIONS_SCHEMA are read from e once, here, as if the file had set
// table-name and drivers.postgres.schema. PostgresSchema and
// QualifiedTableName read e again at call time as their own fallback step;
// both read points are part of the contract.
func New(e env.Env) *Config {
	c := &Config{
		defaults: Defaults{MigrationType: TypeInferred, MigrationVersioning: VersioningInferred},
		drivers:  newDrivers(),
		env:      e,
	}
	c.seedFromEnv()
	return c
}

// seedFromEnv fills table-name and the postgres schema from the environment
// snapshot, but only where the file left them unset.
func (c *Config) seedFromEnv() {
	o, err := env.Snapshot(c.env)
	if err != nil {
		// A snapshot of two plain string variables cannot fail in practice.
		return
	}
	if c.tableName == "" {
		c.tableName = o.Table
	}
	if pg := c.drivers.postgres(); pg != nil && pg.Schema == "" {
		pg.Schema = o.Schema
	}
}

// MigrationsDir returns the configured migrations directory, falling back to
// "migrations".
func (c *Config) MigrationsDir() string {
	if c.migrationsDir != "" {
		return c.migrationsDir
	}
	return constants.DefaultMigrationsDir
}

// CreateSchemas returns the schema names to ensure exist before any other
// migration bookkeeping, sorted and without duplicates.
func (c *Config) CreateSchemas() []string {
	out := make([]string, len(c.createSchemas))
	copy(out, c.createSchemas)
	return out
}

// TableName returns the tracking table name, qualified with the resolved
// postgres schema when one resolves. A table-name that is itself already
// qualified still gets the schema prefixed verbatim, producing a
// double-qualified name; see the known-edge-case test in config_test.go.
func (c *Config) TableName() string {
	table := c.tableName
	if table == "" {
		table = constants.DefaultTableName
	}
	if schema, ok := c.PostgresSchema(); ok {
		return schema + "." + table
	}
	return table
}

// QualifiedTableName resolves the tracking table for a specific driver kind.
// The postgres kinds always get a schema qualifier, defaulting to "public";
// every other kind falls back to TableName with no qualification.
func (c *Config) QualifiedTableName(driverKind string) string {
	switch util.TrimAndLower(driverKind) {
	case DriverPostgres, "postgresql":
		schema := constants.DefaultPostgresSchema
		if s, ok := c.PostgresSchema(); ok {
			schema = s
		}
		table := c.tableName
		if table == "" {
			// An override variable set to the empty string counts as absent.
			if v, ok := c.env.Lookup(env.VarTable); ok && v != "" {
				table = v
			} else {
				table = constants.DefaultTableName
			}
		}
		return schema + "." + table
	default:
		return c.TableName()
	}
}

// SanitizedTableName returns QualifiedTableName with every segment quoted as
// a SQL identifier, safe to splice into DDL.
func (c *Config) SanitizedTableName(driverKind string) string {
	return pgx.Identifier(strings.Split(c.QualifiedTableName(driverKind), ".")).Sanitize()
}

// PostgresSchema resolves the schema qualifying the tracking table for the
// postgres driver: the explicit driver config value first, then
// MIGRATIONS_SCHEMA read at call time. There is no "public" fallback here;
// only QualifiedTableName applies that default.
func (c *Config) PostgresSchema() (string, bool) {
	if d, ok := c.drivers.Kind(DriverPostgres); ok {
		return d.ResolveSchema(c.env)
	}
	return "", false
}

// IgnoredChars returns the characters elided before hashing migration
// content, sorted and without duplicates.
func (c *Config) IgnoredChars() []rune {
	out := make([]rune, len(c.ignoredChars))
	copy(out, c.ignoredChars)
	return out
}

// Normalizer builds the content-hashing adapter configured with the resolved
// ignored-character set.
func (c *Config) Normalizer() *digest.Normalizer {
	return digest.NewNormalizer(c.ignoredChars)
}

// Defaults returns the authoring defaults for new migrations. Values the
// file did not set come back as the inferred tag.
func (c *Config) Defaults() Defaults { return c.defaults }

// LogConfig returns the optional [log] table.
func (c *Config) LogConfig() Log { return c.log }

func normalizeSet(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func normalizeRunes(in []rune) []rune {
	seen := make(map[rune]struct{}, len(in))
	out := make([]rune, 0, len(in))
	for _, r := range in {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
