package config

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
	"github.com/loykin/sqlrun/pkg/env"
)

// Postgres holds PostgreSQL-specific migration configuration.
type Postgres struct {
	// Schema overrides the schema qualifying the tracking table. Empty means
	// fall back to MIGRATIONS_SCHEMA at resolution time.
	Schema string `mapstructure:"schema"`
}

func decodePostgres(raw map[string]any) (Driver, error) {
	var pg Postgres
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &pg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	// Empty would be indistinguishable from absent; see decodeMigrate.
	if _, present := raw["schema"]; present && pg.Schema == "" {
		return nil, errors.New("schema must not be empty")
	}
	return &pg, nil
}

// ResolveSchema applies the driver precedence: explicit config value first,
// then MIGRATIONS_SCHEMA read from e at call time. An override variable set
// to the empty string counts as absent.
func (p *Postgres) ResolveSchema(e env.Env) (string, bool) {
	if p.Schema != "" {
		return p.Schema, true
	}
	if v, ok := e.Lookup(env.VarSchema); ok && v != "" {
		return v, true
	}
	return "", false
}
