package sqlrun

import (
	"io"

	"github.com/loykin/sqlrun/internal/common"
	"github.com/loykin/sqlrun/internal/config"
	"github.com/loykin/sqlrun/internal/digest"
	"github.com/loykin/sqlrun/internal/migration"
	"github.com/loykin/sqlrun/pkg/env"
)

// Re-export commonly used types for public API

// Config is the resolved-on-demand migration configuration.
type Config = config.Config

// Defaults holds the authoring defaults for new migrations.
type Defaults = config.Defaults

// MigrationType selects what kind of file(s) CreateMigration writes.
type MigrationType = config.MigrationType

const (
	TypeInferred   = config.TypeInferred
	TypeSimple     = config.TypeSimple
	TypeReversible = config.TypeReversible
)

// Versioning selects the numbering scheme for new migration versions.
type Versioning = config.Versioning

const (
	VersioningInferred   = config.VersioningInferred
	VersioningTimestamp  = config.VersioningTimestamp
	VersioningSequential = config.VersioningSequential
)

// Env supplies named environment values to the resolver.
type Env = env.Env

// EnvMap is an in-memory Env, useful for tests and embedding callers.
type EnvMap = env.Map

// OSEnv returns an Env backed by the process environment.
func OSEnv() Env { return env.FromOS() }

// LoadConfig reads and parses the configuration document at path, resolving
// against e. A missing file yields the default configuration.
func LoadConfig(path string, e Env) (*Config, error) { return config.Load(path, e) }

// ParseConfig parses a configuration document held in memory.
func ParseConfig(data []byte, e Env) (*Config, error) { return config.Parse(data, e) }

// DefaultConfig returns the default configuration resolved against e.
func DefaultConfig(e Env) *Config { return config.New(e) }

// Migration is one previously authored migration on disk.
type Migration = migration.Migration

// CreateOptions configures authoring of a new migration.
type CreateOptions = migration.CreateOptions

// CreateMigration authors a new migration file (or up/down pair) and returns
// the created paths.
func CreateMigration(opts CreateOptions) ([]string, error) { return migration.Create(opts) }

// ScanMigrations enumerates existing migrations in dir, oldest first. A
// missing directory is an empty history.
func ScanMigrations(dir string) ([]Migration, error) { return migration.ScanIfExists(dir) }

// Normalizer filters ignored characters out of migration content before
// fingerprinting; build one with Config.Normalizer.
type Normalizer = digest.Normalizer

// Logger re-exports for embedding callers

type Logger = common.Logger

type LogLevel = common.LogLevel

const (
	LogLevelError = common.LogLevelError
	LogLevelWarn  = common.LogLevelWarn
	LogLevelInfo  = common.LogLevelInfo
	LogLevelDebug = common.LogLevelDebug
)

func NewLogger(level LogLevel) *Logger                  { return common.NewLogger(level) }
func NewLoggerTo(w io.Writer, level LogLevel) *Logger   { return common.NewLoggerTo(w, level) }
func NewJSONLogger(level LogLevel) *Logger              { return common.NewJSONLogger(level) }
func NewJSONLoggerTo(w io.Writer, level LogLevel) *Logger {
	return common.NewJSONLoggerTo(w, level)
}
func SetDefaultLogger(l *Logger) { common.SetDefaultLogger(l) }
func GetLogger() *Logger         { return common.GetLogger() }
