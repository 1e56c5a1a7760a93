package config

import (
	"fmt"

	"github.com/loykin/sqlrun/pkg/env"
)

// DriverPostgres is the built-in driver kind carrying schema configuration.
const DriverPostgres = "postgres"

// Driver is a per-database-kind capability consulted during resolution.
// Registering a new kind extends resolution without touching the precedence
// logic in Config.
type Driver interface {
	// ResolveSchema returns the schema qualifying the tracking table, if any.
	ResolveSchema(e env.Env) (string, bool)
}

// driverFactory decodes one [migrate.drivers.<kind>] table into its
// capability object, rejecting unknown keys.
type driverFactory func(raw map[string]any) (Driver, error)

var driverFactories = map[string]driverFactory{
	DriverPostgres: decodePostgres,
}

// Drivers maps a driver kind to its capability object. The postgres kind is
// always present so its environment fallback applies even without a
// [migrate.drivers.postgres] table.
type Drivers struct {
	byKind map[string]Driver
}

func newDrivers() Drivers {
	return Drivers{byKind: map[string]Driver{DriverPostgres: &Postgres{}}}
}

// Kind returns the capability object registered for the given driver kind.
func (d Drivers) Kind(kind string) (Driver, bool) {
	drv, ok := d.byKind[kind]
	return drv, ok
}

func (d Drivers) postgres() *Postgres {
	if drv, ok := d.byKind[DriverPostgres]; ok {
		if pg, ok := drv.(*Postgres); ok {
			return pg
		}
	}
	return nil
}

func (d *Drivers) decode(raw map[string]map[string]any) error {
	for kind, table := range raw {
		factory, ok := driverFactories[kind]
		if !ok {
			return fmt.Errorf("migrate.drivers: unknown driver %q", kind)
		}
		drv, err := factory(table)
		if err != nil {
			return fmt.Errorf("migrate.drivers.%s: %w", kind, err)
		}
		d.byKind[kind] = drv
	}
	return nil
}
