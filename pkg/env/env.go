package env

import (
	"os"

	envparse "github.com/caarlos0/env/v11"
)

// Names of the process-wide override variables consulted by the resolver.
const (
	VarTable  = "MIGRATIONS_TABLE"
	VarSchema = "MIGRATIONS_SCHEMA"
)

// Env supplies named environment values to the config resolver. Injecting it
// (instead of reading the process environment directly) keeps the
// construction-time and call-time reads observable in tests.
type Env interface {
	Lookup(key string) (string, bool)
}

// Map is an in-memory Env for tests and embedding callers.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type osEnv struct{}

func (osEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// FromOS returns an Env backed by the process environment.
func FromOS() Env { return osEnv{} }

// Overrides is a typed snapshot of the migration override variables.
type Overrides struct {
	Table  string `env:"MIGRATIONS_TABLE"`
	Schema string `env:"MIGRATIONS_SCHEMA"`
}

// Snapshot captures the override variables from e at the time of the call.
// Variables absent from e leave the corresponding field empty.
func Snapshot(e Env) (Overrides, error) {
	vars := map[string]string{}
	for _, key := range []string{VarTable, VarSchema} {
		if v, ok := e.Lookup(key); ok {
			vars[key] = v
		}
	}
	var o Overrides
	if err := envparse.ParseWithOptions(&o, envparse.Options{Environment: vars}); err != nil {
		return Overrides{}, err
	}
	return o, nil
}
