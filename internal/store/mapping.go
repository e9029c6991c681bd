package store

import (
	"go.uber.org/zap"

	"github.com/tessera-db/tessera/internal/convert"
	"github.com/tessera-db/tessera/internal/schema"
)

// convertOut applies the writing converter for a field, if one is
// registered. Fields stored as their domain type need no conversion, and a
// lookup miss falls back to default mapping: the value passes through.
func convertOut(rules *convert.Registry, logger *zap.Logger, f schema.Field, v any) (any, error) {
	storage := f.StorageType()
	if storage == f.Type {
		return v, nil
	}

	rule, ok := rules.ResolveWriter(f.Type, storage)
	if !ok {
		logger.Debug("no writing converter registered, using default mapping",
			zap.String("field", f.Name),
			zap.String("type", string(f.Type)),
			zap.String("column", string(storage)),
		)
		return v, nil
	}

	return rule.Convert(v)
}

// convertIn applies the reading converter for a field, if one is
// registered. Symmetric to convertOut.
func convertIn(rules *convert.Registry, logger *zap.Logger, f schema.Field, v any) (any, error) {
	storage := f.StorageType()
	if storage == f.Type {
		return v, nil
	}

	rule, ok := rules.ResolveReader(storage, f.Type)
	if !ok {
		logger.Debug("no reading converter registered, using default mapping",
			zap.String("field", f.Name),
			zap.String("type", string(f.Type)),
			zap.String("column", string(storage)),
		)
		return v, nil
	}

	return rule.Convert(v)
}
