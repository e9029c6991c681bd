package store

import (
	"database/sql"

	// Drivers for the supported SQL dialects.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tessera-db/tessera/internal/dialect"
)

// Open opens a database handle for the given SQL dialect.
func Open(d dialect.SQLDialect, dsn string) (*sql.DB, error) {
	return sql.Open(d.DriverName(), dsn)
}
