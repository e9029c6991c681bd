package dialect

import "github.com/tessera-db/tessera/internal/convert"

// Redis is the Redis dialect. It is not a SQL engine: records are stored
// as hashes and every hash field holds one native scalar.
type Redis struct{}

// Name returns "redis".
func (Redis) Name() string { return "redis" }

// NativeTypes returns the scalar types the Redis store persists directly.
func (Redis) NativeTypes() convert.TypeSet {
	return convert.NewTypeSet(
		"string",
		"int64",
		"float64",
		"bool",
		"bytes",
	)
}
