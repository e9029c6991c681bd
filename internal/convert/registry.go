package convert

// Registry holds the registered converters, indexed by type pair and
// direction. All registration happens sequentially during startup; after
// that the registry is read-only and lookups are safe from any goroutine
// without locking.
type Registry struct {
	native  TypeSet
	writers map[typePair]*Rule
	readers map[typePair]*Rule
}

type typePair struct {
	source TypeDescriptor
	target TypeDescriptor
}

// NewRegistry creates a registry bound to the storage engine's native type
// set. The set is copied once and held for the registry's lifetime.
func NewRegistry(native TypeSet) *Registry {
	return &Registry{
		native:  native.Clone(),
		writers: make(map[typePair]*Rule),
		readers: make(map[typePair]*Rule),
	}
}

// NativeTypes returns a copy of the native type set the registry was built
// with.
func (r *Registry) NativeTypes() TypeSet {
	return r.native.Clone()
}

// Register classifies the rule and indexes it for lookup. Ambiguous rules
// fail registration: the configuration is invalid and startup must not
// proceed with it. Registering a second rule for the same type pair and
// direction also fails.
func (r *Registry) Register(rule Rule) error {
	if rule.Apply == nil {
		return &ConfigError{Source: rule.Source, Target: rule.Target, Err: ErrNilApply}
	}

	role, err := Classify(rule.Source, rule.Target, rule.Hint, r.native)
	if err != nil {
		return err
	}

	pair := typePair{source: rule.Source, target: rule.Target}
	stored := rule

	switch role {
	case RoleWriter:
		if _, exists := r.writers[pair]; exists {
			return &ConfigError{Source: rule.Source, Target: rule.Target, Err: ErrDuplicateConverter}
		}
		r.writers[pair] = &stored
	case RoleReader:
		if _, exists := r.readers[pair]; exists {
			return &ConfigError{Source: rule.Source, Target: rule.Target, Err: ErrDuplicateConverter}
		}
		r.readers[pair] = &stored
	case RoleBoth:
		// Unreachable through Classify today; kept so a future hint that
		// permits dual-role rules indexes both sides.
		if _, exists := r.writers[pair]; exists {
			return &ConfigError{Source: rule.Source, Target: rule.Target, Err: ErrDuplicateConverter}
		}
		if _, exists := r.readers[pair]; exists {
			return &ConfigError{Source: rule.Source, Target: rule.Target, Err: ErrDuplicateConverter}
		}
		r.writers[pair] = &stored
		r.readers[pair] = &stored
	}

	return nil
}

// ResolveWriter returns the rule registered for writing source values out
// as target values, if any. A miss is not an error: the caller falls back
// to default mapping.
func (r *Registry) ResolveWriter(source, target TypeDescriptor) (*Rule, bool) {
	rule, ok := r.writers[typePair{source: source, target: target}]
	return rule, ok
}

// ResolveReader returns the rule registered for reading source values back
// as target values, if any.
func (r *Registry) ResolveReader(source, target TypeDescriptor) (*Rule, bool) {
	rule, ok := r.readers[typePair{source: source, target: target}]
	return rule, ok
}

// Count returns the number of registered rules. Rules indexed in both
// directions count once per direction.
func (r *Registry) Count() int {
	return len(r.writers) + len(r.readers)
}
