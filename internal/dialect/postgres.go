package dialect

import (
	"fmt"

	"github.com/tessera-db/tessera/internal/convert"
)

// Postgres is the PostgreSQL dialect, backed by the pgx stdlib driver.
type Postgres struct{}

// Name returns "postgres".
func (Postgres) Name() string { return "postgres" }

// DriverName returns the pgx database/sql driver name.
func (Postgres) DriverName() string { return "pgx" }

// Placeholder returns PostgreSQL positional placeholders ($1, $2, ...).
func (Postgres) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// NativeTypes returns the PostgreSQL column types that need no
// user-supplied conversion.
func (Postgres) NativeTypes() convert.TypeSet {
	return convert.NewTypeSet(
		"text",
		"varchar",
		"integer",
		"bigint",
		"double precision",
		"numeric",
		"boolean",
		"timestamptz",
		"date",
		"time",
		"uuid",
		"bytea",
		"json",
		"jsonb",
	)
}
