package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-db/tessera/internal/convert"
	"github.com/tessera-db/tessera/internal/dialect"
	"github.com/tessera-db/tessera/internal/schema"
)

// Address is a domain type PostgreSQL cannot persist directly; tests
// register converters that flatten it to "street|city" text.
type Address struct {
	Street string
	City   string
}

func personResource() *schema.Resource {
	return &schema.Resource{
		Name:  "Person",
		Table: "people",
		Fields: []schema.Field{
			{Name: "id", Type: "uuid"},
			{Name: "name", Type: "text"},
			{Name: "address", Type: "Address", Column: "text"},
		},
	}
}

func addressRegistry(t *testing.T) *convert.Registry {
	t.Helper()

	reg := convert.NewRegistry(dialect.Postgres{}.NativeTypes())

	err := reg.Register(convert.Rule{
		Source: "Address",
		Target: "text",
		Apply: func(v any) (any, error) {
			addr, ok := v.(Address)
			if !ok {
				return nil, fmt.Errorf("expected Address, got %T", v)
			}
			return addr.Street + "|" + addr.City, nil
		},
	})
	require.NoError(t, err)

	err = reg.Register(convert.Rule{
		Source: "text",
		Target: "Address",
		Apply: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", v)
			}
			parts := strings.SplitN(s, "|", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("malformed address %q", s)
			}
			return Address{Street: parts[0], City: parts[1]}, nil
		},
	})
	require.NoError(t, err)

	return reg
}

func newMockStore(t *testing.T, reg *convert.Registry) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSQLStore(db, dialect.Postgres{}, reg, nil), mock
}

func TestSQLStore_InsertAppliesWritingConverter(t *testing.T) {
	store, mock := newMockStore(t, addressRegistry(t))

	mock.ExpectExec("INSERT INTO people (id, name, address) VALUES ($1, $2, $3)").
		WithArgs("p-1", "Ada", "Main St|Zurich").
		WillReturnResult(sqlmock.NewResult(0, 1))

	record, err := store.Insert(context.Background(), personResource(), map[string]any{
		"id":      "p-1",
		"name":    "Ada",
		"address": Address{Street: "Main St", City: "Zurich"},
	})
	require.NoError(t, err)

	// The returned record keeps the domain value.
	assert.Equal(t, Address{Street: "Main St", City: "Zurich"}, record["address"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InsertGeneratesID(t *testing.T) {
	store, mock := newMockStore(t, addressRegistry(t))

	mock.ExpectExec("INSERT INTO people (id, name) VALUES ($1, $2)").
		WithArgs(sqlmock.AnyArg(), "Ada").
		WillReturnResult(sqlmock.NewResult(0, 1))

	record, err := store.Insert(context.Background(), personResource(), map[string]any{
		"name": "Ada",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InsertRejectsUndeclaredField(t *testing.T) {
	store, _ := newMockStore(t, addressRegistry(t))

	_, err := store.Insert(context.Background(), personResource(), map[string]any{
		"name":     "Ada",
		"nickname": "ada",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nickname")
}

func TestSQLStore_InsertWithoutConverterFallsThrough(t *testing.T) {
	// Empty registry: the address field still has a distinct column type,
	// but with no rule the value passes through as default mapping.
	reg := convert.NewRegistry(dialect.Postgres{}.NativeTypes())
	store, mock := newMockStore(t, reg)

	mock.ExpectExec("INSERT INTO people (id, address) VALUES ($1, $2)").
		WithArgs("p-1", "raw-value").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := store.Insert(context.Background(), personResource(), map[string]any{
		"id":      "p-1",
		"address": "raw-value",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_GetAppliesReadingConverter(t *testing.T) {
	store, mock := newMockStore(t, addressRegistry(t))

	rows := sqlmock.NewRows([]string{"id", "name", "address"}).
		AddRow("p-1", "Ada", "Main St|Zurich")
	mock.ExpectQuery("SELECT id, name, address FROM people WHERE id = $1").
		WithArgs("p-1").
		WillReturnRows(rows)

	record, err := store.Get(context.Background(), personResource(), "p-1")
	require.NoError(t, err)

	assert.Equal(t, "Ada", record["name"])
	assert.Equal(t, Address{Street: "Main St", City: "Zurich"}, record["address"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_GetConversionFailureAbortsRead(t *testing.T) {
	store, mock := newMockStore(t, addressRegistry(t))

	rows := sqlmock.NewRows([]string{"id", "name", "address"}).
		AddRow("p-1", "Ada", "not-an-address")
	mock.ExpectQuery("SELECT id, name, address FROM people WHERE id = $1").
		WithArgs("p-1").
		WillReturnRows(rows)

	_, err := store.Get(context.Background(), personResource(), "p-1")
	require.Error(t, err)

	var convErr *convert.ConversionError
	assert.True(t, errors.As(err, &convErr))
}

func TestSQLStore_GetNotFound(t *testing.T) {
	store, mock := newMockStore(t, addressRegistry(t))

	mock.ExpectQuery("SELECT id, name, address FROM people WHERE id = $1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), personResource(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestSQLStore_Delete(t *testing.T) {
	t.Run("existing record", func(t *testing.T) {
		store, mock := newMockStore(t, addressRegistry(t))

		mock.ExpectExec("DELETE FROM people WHERE id = $1").
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Delete(context.Background(), personResource(), "p-1")
		assert.NoError(t, err)
	})

	t.Run("missing record", func(t *testing.T) {
		store, mock := newMockStore(t, addressRegistry(t))

		mock.ExpectExec("DELETE FROM people WHERE id = $1").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Delete(context.Background(), personResource(), "missing")
		assert.True(t, IsNotFound(err))
	})
}
