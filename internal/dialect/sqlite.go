package dialect

import "github.com/tessera-db/tessera/internal/convert"

// SQLite is the SQLite dialect, backed by the mattn/go-sqlite3 driver.
type SQLite struct{}

// Name returns "sqlite".
func (SQLite) Name() string { return "sqlite" }

// DriverName returns the go-sqlite3 database/sql driver name.
func (SQLite) DriverName() string { return "sqlite3" }

// Placeholder returns SQLite's anonymous placeholder.
func (SQLite) Placeholder(n int) string { return "?" }

// NativeTypes returns SQLite's storage classes.
func (SQLite) NativeTypes() convert.TypeSet {
	return convert.NewTypeSet(
		"text",
		"integer",
		"real",
		"numeric",
		"blob",
	)
}
