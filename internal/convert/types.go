// Package convert classifies and registers custom type converters for the
// mapping layer. A converter translates between a domain value and a value
// the storage engine can persist directly; the registry decides, from the
// declared types alone, whether each converter applies when writing, when
// reading, or needs an explicit direction hint.
package convert

import (
	"fmt"
	"sort"
)

// TypeDescriptor identifies a concrete type by name. Two descriptors are
// equal iff they denote the same type.
type TypeDescriptor string

// TypeSet is a set of type descriptors. The storage engine's native set is
// the canonical use: the types it persists without any user conversion.
type TypeSet map[TypeDescriptor]struct{}

// NewTypeSet builds a TypeSet from the given descriptors.
func NewTypeSet(types ...TypeDescriptor) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports whether t is a member of the set.
func (s TypeSet) Contains(t TypeDescriptor) bool {
	_, ok := s[t]
	return ok
}

// Clone returns an independent copy of the set.
func (s TypeSet) Clone() TypeSet {
	c := make(TypeSet, len(s))
	for t := range s {
		c[t] = struct{}{}
	}
	return c
}

// List returns the members in sorted order.
func (s TypeSet) List() []TypeDescriptor {
	list := make([]TypeDescriptor, 0, len(s))
	for t := range s {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// Hint is an explicit direction override supplied at construction time for
// converters whose direction cannot be inferred from their declared types.
type Hint int

const (
	// HintUnspecified lets the registry infer the direction from which of
	// the declared types is storage-native.
	HintUnspecified Hint = iota

	// HintForceReading marks the converter as reading-only: it transforms a
	// persisted native value into a domain value.
	HintForceReading

	// HintForceWriting marks the converter as writing-only: it transforms a
	// domain value into a persisted native value.
	HintForceWriting
)

// String returns a human-readable name for the hint.
func (h Hint) String() string {
	switch h {
	case HintUnspecified:
		return "unspecified"
	case HintForceReading:
		return "reading"
	case HintForceWriting:
		return "writing"
	default:
		return fmt.Sprintf("Hint(%d)", int(h))
	}
}

// Role is the resolved classification of a registered converter.
type Role int

const (
	// RoleAmbiguous means the direction cannot be inferred from the declared
	// types and no hint was given. Registration rejects ambiguous rules.
	RoleAmbiguous Role = iota

	// RoleReader applies when reading persisted values back into the domain.
	RoleReader

	// RoleWriter applies when writing domain values out to storage.
	RoleWriter

	// RoleBoth applies in both directions. Not producible by classification
	// today; a pair becomes usable both ways only through two separate
	// single-direction registrations.
	RoleBoth
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RoleAmbiguous:
		return "ambiguous"
	case RoleReader:
		return "reader"
	case RoleWriter:
		return "writer"
	case RoleBoth:
		return "both"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ApplyFunc performs one conversion. It returns an error when the input
// cannot be converted; conversion is deterministic and never retried.
type ApplyFunc func(value any) (any, error)

// Rule is one registered converter: a conversion function tagged with its
// declared source and target types and an optional direction hint.
type Rule struct {
	Source TypeDescriptor
	Target TypeDescriptor
	Hint   Hint
	Apply  ApplyFunc
}

// Convert runs the rule's conversion function. Failures are wrapped in a
// *ConversionError naming the rule's declared types.
func (r *Rule) Convert(value any) (any, error) {
	out, err := r.Apply(value)
	if err != nil {
		return nil, &ConversionError{Source: r.Source, Target: r.Target, Err: err}
	}
	return out, nil
}

// Classify resolves the role of a converter declared as source→target with
// the given hint, against the storage engine's native type set. A hint
// always overrides the inferred role; without one, the rule is a writer iff
// only its target is native, a reader iff only its source is native, and
// ambiguous otherwise.
func Classify(source, target TypeDescriptor, hint Hint, native TypeSet) (Role, error) {
	switch hint {
	case HintForceReading:
		return RoleReader, nil
	case HintForceWriting:
		return RoleWriter, nil
	}

	sourceNative := native.Contains(source)
	targetNative := native.Contains(target)

	switch {
	case !sourceNative && targetNative:
		return RoleWriter, nil
	case sourceNative && !targetNative:
		return RoleReader, nil
	default:
		return RoleAmbiguous, &ConfigError{
			Source: source,
			Target: target,
			Err:    ErrAmbiguousConverter,
		}
	}
}
