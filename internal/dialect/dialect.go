// Package dialect describes the type systems of the storage engines the
// mapping layer can target. Each dialect supplies the set of types its
// engine persists natively; SQL dialects additionally carry the driver and
// placeholder details the SQL store needs.
package dialect

import (
	"fmt"

	"github.com/tessera-db/tessera/internal/convert"
)

// Dialect is a storage engine's type system.
type Dialect interface {
	// Name returns the dialect identifier used in configuration.
	Name() string

	// NativeTypes returns the types the engine persists without any
	// user-supplied conversion.
	NativeTypes() convert.TypeSet
}

// SQLDialect is a Dialect backed by a database/sql driver.
type SQLDialect interface {
	Dialect

	// DriverName returns the registered database/sql driver name.
	DriverName() string

	// Placeholder returns the bind placeholder for the nth parameter,
	// starting at 1.
	Placeholder(n int) string
}

// ByName returns the dialect registered under the given name.
func ByName(name string) (Dialect, error) {
	switch name {
	case "postgres":
		return Postgres{}, nil
	case "sqlite":
		return SQLite{}, nil
	case "redis":
		return Redis{}, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q (supported: %v)", name, Names())
	}
}

// Names returns the supported dialect names.
func Names() []string {
	return []string{"postgres", "redis", "sqlite"}
}
