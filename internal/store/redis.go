package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tessera-db/tessera/internal/convert"
	"github.com/tessera-db/tessera/internal/schema"
)

// RedisStore persists resources as Redis hashes, one hash per record keyed
// by "<prefix><table>:<id>". Every hash field holds one native scalar;
// fields with a non-native domain type go through registered converters.
type RedisStore struct {
	client *redis.Client
	rules  *convert.Registry
	prefix string
	logger *zap.Logger
}

// NewRedisStore creates a Redis store. A nil logger disables logging.
func NewRedisStore(client *redis.Client, rules *convert.Registry, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client: client,
		rules:  rules,
		prefix: prefix,
		logger: logger,
	}
}

// Insert writes one record as a hash. Resources persisted to Redis must
// declare an id field: it forms the key. When the data omits the id, a
// UUID is generated.
func (s *RedisStore) Insert(ctx context.Context, res *schema.Resource, data map[string]any) (map[string]any, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if !res.HasField("id") {
		return nil, fmt.Errorf("resource %s: %w", res.Name, ErrMissingID)
	}

	record := make(map[string]any, len(data)+1)
	for k, v := range data {
		if !res.HasField(k) {
			return nil, fmt.Errorf("resource %s: field %s is not declared", res.Name, k)
		}
		record[k] = v
	}
	if _, ok := record["id"]; !ok {
		record["id"] = uuid.New().String()
	}

	fields := make(map[string]any, len(record))
	for _, f := range res.Fields {
		v, ok := record[f.Name]
		if !ok {
			continue
		}
		out, err := convertOut(s.rules, s.logger, f, v)
		if err != nil {
			return nil, err
		}
		fields[f.Name] = out
	}

	key := s.key(res, record["id"])

	s.logger.Debug("inserting record",
		zap.String("resource", res.Name),
		zap.String("key", key),
	)

	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return nil, err
	}

	return record, nil
}

// Get reads one record by id. Hash values come back as strings; each field
// is first decoded to its storage scalar, then handed to the reading
// converter when its domain type differs.
func (s *RedisStore) Get(ctx context.Context, res *schema.Resource, id any) (map[string]any, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if !res.HasField("id") {
		return nil, fmt.Errorf("resource %s: %w", res.Name, ErrMissingID)
	}

	raw, err := s.client.HGetAll(ctx, s.key(res, id)).Result()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}

	record := make(map[string]any, len(raw))
	for _, f := range res.Fields {
		encoded, ok := raw[f.Name]
		if !ok {
			continue
		}
		scalar, err := decodeScalar(f.StorageType(), encoded)
		if err != nil {
			return nil, fmt.Errorf("resource %s: field %s: %w", res.Name, f.Name, err)
		}
		out, err := convertIn(s.rules, s.logger, f, scalar)
		if err != nil {
			return nil, err
		}
		record[f.Name] = out
	}

	return record, nil
}

// Delete removes one record by id.
func (s *RedisStore) Delete(ctx context.Context, res *schema.Resource, id any) error {
	if err := res.Validate(); err != nil {
		return err
	}

	deleted, err := s.client.Del(ctx, s.key(res, id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *RedisStore) key(res *schema.Resource, id any) string {
	return fmt.Sprintf("%s%s:%v", s.prefix, res.Table, id)
}

// decodeScalar parses a hash value back into its storage scalar.
func decodeScalar(t convert.TypeDescriptor, raw string) (any, error) {
	switch t {
	case "int64":
		return strconv.ParseInt(raw, 10, 64)
	case "float64":
		return strconv.ParseFloat(raw, 64)
	case "bool":
		return strconv.ParseBool(raw)
	case "bytes":
		return []byte(raw), nil
	default:
		return raw, nil
	}
}
