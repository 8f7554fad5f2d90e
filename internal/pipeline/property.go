package pipeline

import "strconv"

// PropertyKind discriminates the two Property variants.
type PropertyKind int

const (
	// PropertyScalar holds a string-typed leaf value.
	PropertyScalar PropertyKind = iota
	// PropertyMap holds a name-to-Property mapping.
	PropertyMap
)

// Property is the recursive value type attached to task node properties: a
// tagged sum of Scalar(string) and Map(name->Property). There are no arrays
// and no numeric/boolean distinction at this layer — every scalar from the
// source document is stringified during ingestion.
type Property struct {
	kind   PropertyKind
	scalar string
	m      map[string]Property
}

// NewScalar builds a scalar Property.
func NewScalar(s string) Property {
	return Property{kind: PropertyScalar, scalar: s}
}

// NewMap builds a map Property.
func NewMap(m map[string]Property) Property {
	return Property{kind: PropertyMap, m: m}
}

// IsScalar reports whether the Property is the Scalar variant.
func (p Property) IsScalar() bool {
	return p.kind == PropertyScalar
}

// Scalar returns the scalar value, or "" if this Property is a Map.
func (p Property) Scalar() string {
	return p.scalar
}

// Map returns the map value, or nil if this Property is a Scalar.
func (p Property) Map() map[string]Property {
	return p.m
}

// FromYAML converts a generic YAML-decoded value (as produced by
// gopkg.in/yaml.v3 unmarshaling into `any`) into a Property, per the
// ingestion rule: mappings become Map (recursively ingested), scalars
// become Scalar(canonical string form), and sequences or other
// unrepresentable values become Scalar("") — a documented v1 limitation.
func FromYAML(v any) Property {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]Property, len(t))
		for k, val := range t {
			m[k] = FromYAML(val)
		}
		return NewMap(m)
	case string:
		return NewScalar(t)
	case int:
		return NewScalar(strconv.Itoa(t))
	case int64:
		return NewScalar(strconv.FormatInt(t, 10))
	case uint64:
		return NewScalar(strconv.FormatUint(t, 10))
	case float64:
		return NewScalar(strconv.FormatFloat(t, 'g', -1, 64))
	case bool:
		return NewScalar(strconv.FormatBool(t))
	case nil:
		return NewScalar("null")
	default:
		// Sequences and any other type yaml.v3 might hand back (e.g. a
		// nested []any) are not representable by this version of the
		// Property model; see spec.md §9 Open Questions.
		return NewScalar("")
	}
}
