// Package store contains the mapping-layer consumers of the converter
// registry: stores that hand values off to registered rules before writing
// them out and after reading them back, falling back to the engine's
// default mapping when no rule matches.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tessera-db/tessera/internal/convert"
	"github.com/tessera-db/tessera/internal/dialect"
	"github.com/tessera-db/tessera/internal/schema"
)

// SQLStore persists resources through database/sql, applying registered
// converters at the field level.
type SQLStore struct {
	db      *sql.DB
	dialect dialect.SQLDialect
	rules   *convert.Registry
	logger  *zap.Logger
}

// NewSQLStore creates a SQL store. A nil logger disables logging.
func NewSQLStore(db *sql.DB, d dialect.SQLDialect, rules *convert.Registry, logger *zap.Logger) *SQLStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLStore{
		db:      db,
		dialect: d,
		rules:   rules,
		logger:  logger,
	}
}

// Insert writes one record. Fields whose storage type differs from their
// domain type are handed to the matching writing converter; missing
// converters fall back to passing the value through unchanged. When the
// resource declares an id field and the data omits it, a UUID is generated.
// The returned map is the stored record with its domain values.
func (s *SQLStore) Insert(ctx context.Context, res *schema.Resource, data map[string]any) (map[string]any, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	// Copy to avoid mutating the caller's map.
	record := make(map[string]any, len(data)+1)
	for k, v := range data {
		if !res.HasField(k) {
			return nil, fmt.Errorf("resource %s: field %s is not declared", res.Name, k)
		}
		record[k] = v
	}

	if res.HasField("id") {
		if _, ok := record["id"]; !ok {
			record["id"] = uuid.New().String()
		}
	}

	var (
		columns      []string
		placeholders []string
		args         []any
	)
	for _, f := range res.Fields {
		v, ok := record[f.Name]
		if !ok {
			continue
		}
		out, err := s.writeValue(f, v)
		if err != nil {
			return nil, err
		}
		columns = append(columns, f.Name)
		placeholders = append(placeholders, s.dialect.Placeholder(len(columns)))
		args = append(args, out)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("resource %s: no fields to insert", res.Name)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		res.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	s.logger.Debug("inserting record",
		zap.String("resource", res.Name),
		zap.Strings("columns", columns),
	)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, translateDBError(err)
	}

	return record, nil
}

// Get reads one record by id, applying reading converters to fields whose
// storage type differs from their domain type.
func (s *SQLStore) Get(ctx context.Context, res *schema.Resource, id any) (map[string]any, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if !res.HasField("id") {
		return nil, fmt.Errorf("resource %s: %w", res.Name, ErrMissingID)
	}

	columns := make([]string, len(res.Fields))
	for i, f := range res.Fields {
		columns[i] = f.Name
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = %s",
		strings.Join(columns, ", "),
		res.Table,
		s.dialect.Placeholder(1),
	)

	values := make([]any, len(res.Fields))
	dest := make([]any, len(res.Fields))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := s.db.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		return nil, translateDBError(err)
	}

	record := make(map[string]any, len(res.Fields))
	for i, f := range res.Fields {
		out, err := s.readValue(f, values[i])
		if err != nil {
			return nil, err
		}
		record[f.Name] = out
	}

	return record, nil
}

// Delete removes one record by id.
func (s *SQLStore) Delete(ctx context.Context, res *schema.Resource, id any) error {
	if err := res.Validate(); err != nil {
		return err
	}
	if !res.HasField("id") {
		return fmt.Errorf("resource %s: %w", res.Name, ErrMissingID)
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", res.Table, s.dialect.Placeholder(1))

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateDBError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// writeValue converts a domain value to its storage representation.
func (s *SQLStore) writeValue(f schema.Field, v any) (any, error) {
	return convertOut(s.rules, s.logger, f, v)
}

// readValue converts a storage value back to its domain representation.
func (s *SQLStore) readValue(f schema.Field, v any) (any, error) {
	return convertIn(s.rules, s.logger, f, v)
}
