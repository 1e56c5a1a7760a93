package migration

import "github.com/loykin/sqlrun/internal/config"

// Scheme is a concrete versioning scheme, the result of resolving the
// configured default against the existing history.
type Scheme string

const (
	SchemeTimestamp  Scheme = "timestamp"
	SchemeSequential Scheme = "sequential"
)

// InferType returns the type of the most recently authored migration, or
// simple when no migrations exist.
func InferType(history []Migration) Type {
	if len(history) == 0 {
		return TypeSimple
	}
	return history[len(history)-1].Type
}

// InferScheme inspects the version spacing of the existing history.
// Sequential is chosen only on strong positional evidence: an empty history,
// a single migration at version 1, or the two most recent versions differing
// by exactly 1. Anything ambiguous resolves to timestamp, the scheme less
// likely to collide across authors.
func InferScheme(history []Migration) Scheme {
	switch len(history) {
	case 0:
		return SchemeSequential
	case 1:
		if history[0].Version == 1 {
			return SchemeSequential
		}
		return SchemeTimestamp
	}
	last := history[len(history)-1].Version
	prev := history[len(history)-2].Version
	if last-prev == 1 {
		return SchemeSequential
	}
	return SchemeTimestamp
}

// ResolveType maps a configured default to a concrete migration type,
// running inference over history when the default is the inferred tag.
func ResolveType(d config.MigrationType, history []Migration) Type {
	switch d {
	case config.TypeSimple:
		return TypeSimple
	case config.TypeReversible:
		return TypeReversible
	default:
		return InferType(history)
	}
}

// ResolveScheme maps a configured default to a concrete versioning scheme,
// running inference over history when the default is the inferred tag.
func ResolveScheme(d config.Versioning, history []Migration) Scheme {
	switch d {
	case config.VersioningTimestamp:
		return SchemeTimestamp
	case config.VersioningSequential:
		return SchemeSequential
	default:
		return InferScheme(history)
	}
}
