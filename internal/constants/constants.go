package constants

// Resolution fallbacks applied when neither the config file nor the
// environment provides a value.
const (
	DefaultTableName      = "_sqlx_migrations"
	DefaultMigrationsDir  = "migrations"
	DefaultPostgresSchema = "public"
)

// Layout for timestamp-versioned migration identifiers (UTC wall clock).
const VersionTimestampLayout = "20060102150405"

// Config file defaults used by the CLI
const (
	DefaultConfigPath = "./sqlrun.toml"
)
