// Package property implements the dynamic, self-describing value used
// throughout erebus: a named, semantically tagged variant that can hold a
// scalar, a binary run, a map of nested properties, or a vector of them.
package property

import (
	"fmt"
	"sort"
)

// Semantic selects how a Property's value is rendered by Format.
type Semantic int

const (
	Default Semantic = iota
	Hex
	Address
	Scientific
	Fixed
	Fixed3
	UtcDate
	LocalDate
	UtcTime
	LocalTime
	UtcDateTime
	LocalDateTime
	Microseconds
	Milliseconds
	Seconds
	Percent
)

// Kind is the closed set of storage discriminants a Property may hold.
type Kind int

const (
	Empty Kind = iota
	Bool
	Int32
	UInt32
	Int64
	UInt64
	Double
	String
	Binary
	Map
	Vector
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Bool:
		return "Bool"
	case Int32:
		return "Int32"
	case UInt32:
		return "UInt32"
	case Int64:
		return "Int64"
	case UInt64:
		return "UInt64"
	case Double:
		return "Double"
	case String:
		return "String"
	case Binary:
		return "Binary"
	case Map:
		return "Map"
	case Vector:
		return "Vector"
	default:
		return "Unknown"
	}
}

// MaxNameLength is the bound on a Property's name, in code units.
const MaxNameLength = 32

// Property is a named, tagged variant value. The zero value is Empty.
type Property struct {
	name     string
	semantic Semantic
	kind     Kind

	b      bool
	i32    int32
	u32    uint32
	i64    int64
	u64    uint64
	f64    float64
	str    string
	bin    []byte
	mp     map[string]Property
	vec    []Property
}

func truncateName(name string) string {
	if len(name) <= MaxNameLength {
		return name
	}
	return name[:MaxNameLength]
}

// Name returns the property's name, truncated to MaxNameLength.
func (p Property) Name() string { return p.name }

// Kind returns the populated storage discriminant.
func (p Property) Kind() Kind { return p.kind }

// Semantic returns the formatting tag.
func (p Property) Semantic() Semantic { return p.semantic }

// IsEmpty reports whether the property holds no value.
func (p Property) IsEmpty() bool { return p.kind == Empty }

// NewEmpty constructs an Empty property with the given name.
func NewEmpty(name string) Property {
	return Property{name: truncateName(name), kind: Empty}
}

// NewBool constructs a Bool property.
func NewBool(name string, v bool, sem ...Semantic) Property {
	p := Property{name: truncateName(name), kind: Bool, b: v}
	return withSemantic(p, sem)
}

// NewInt32 constructs an Int32 property.
func NewInt32(name string, v int32, sem ...Semantic) Property {
	p := Property{name: truncateName(name), kind: Int32, i32: v}
	return withSemantic(p, sem)
}

// NewUInt32 constructs a UInt32 property.
func NewUInt32(name string, v uint32, sem ...Semantic) Property {
	p := Property{name: truncateName(name), kind: UInt32, u32: v}
	return withSemantic(p, sem)
}

// NewInt64 constructs an Int64 property.
func NewInt64(name string, v int64, sem ...Semantic) Property {
	p := Property{name: truncateName(name), kind: Int64, i64: v}
	return withSemantic(p, sem)
}

// NewUInt64 constructs a UInt64 property.
func NewUInt64(name string, v uint64, sem ...Semantic) Property {
	p := Property{name: truncateName(name), kind: UInt64, u64: v}
	return withSemantic(p, sem)
}

// NewDouble constructs a Double property.
func NewDouble(name string, v float64, sem ...Semantic) Property {
	p := Property{name: truncateName(name), kind: Double, f64: v}
	return withSemantic(p, sem)
}

// NewString constructs a String property.
func NewString(name string, v string, sem ...Semantic) Property {
	p := Property{name: truncateName(name), kind: String, str: v}
	return withSemantic(p, sem)
}

// NewBinary constructs a Binary property. The byte slice is owned by the
// Property; callers must not mutate it afterwards.
func NewBinary(name string, v []byte, sem ...Semantic) Property {
	cp := make([]byte, len(v))
	copy(cp, v)
	p := Property{name: truncateName(name), kind: Binary, bin: cp}
	return withSemantic(p, sem)
}

// NewMap constructs a Map property from a name→Property mapping. The map is
// copied.
func NewMap(name string, v map[string]Property, sem ...Semantic) Property {
	cp := make(map[string]Property, len(v))
	for k, val := range v {
		cp[k] = val
	}
	p := Property{name: truncateName(name), kind: Map, mp: cp}
	return withSemantic(p, sem)
}

// NewVector constructs a Vector property from an ordered sequence of
// Properties. The slice is copied.
func NewVector(name string, v []Property, sem ...Semantic) Property {
	cp := make([]Property, len(v))
	copy(cp, v)
	p := Property{name: truncateName(name), kind: Vector, vec: cp}
	return withSemantic(p, sem)
}

func withSemantic(p Property, sem []Semantic) Property {
	if len(sem) > 0 {
		p.semantic = sem[0]
	}
	return p
}

// Typed accessors. Each returns (value, true) if the Property holds that
// kind, or the zero value and false otherwise. They never panic.

func (p Property) AsBool() (bool, bool)          { return p.b, p.kind == Bool }
func (p Property) AsInt32() (int32, bool)        { return p.i32, p.kind == Int32 }
func (p Property) AsUInt32() (uint32, bool)      { return p.u32, p.kind == UInt32 }
func (p Property) AsInt64() (int64, bool)        { return p.i64, p.kind == Int64 }
func (p Property) AsUInt64() (uint64, bool)      { return p.u64, p.kind == UInt64 }
func (p Property) AsDouble() (float64, bool)     { return p.f64, p.kind == Double }
func (p Property) AsString() (string, bool)      { return p.str, p.kind == String }
func (p Property) AsBinary() ([]byte, bool)      { return p.bin, p.kind == Binary }
func (p Property) AsMap() (map[string]Property, bool) { return p.mp, p.kind == Map }
func (p Property) AsVector() ([]Property, bool)  { return p.vec, p.kind == Vector }

// MustBool etc. are checked getters: the caller asserts the Kind already
// matches via Kind(); precondition violations panic rather than silently
// returning zero values.

func (p Property) MustBool() bool {
	if p.kind != Bool {
		panic(fmt.Sprintf("property %q: expected Bool, have %s", p.name, p.kind))
	}
	return p.b
}

func (p Property) MustString() string {
	if p.kind != String {
		panic(fmt.Sprintf("property %q: expected String, have %s", p.name, p.kind))
	}
	return p.str
}

func (p Property) MustMap() map[string]Property {
	if p.kind != Map {
		panic(fmt.Sprintf("property %q: expected Map, have %s", p.name, p.kind))
	}
	return p.mp
}

func (p Property) MustVector() []Property {
	if p.kind != Vector {
		panic(fmt.Sprintf("property %q: expected Vector, have %s", p.name, p.kind))
	}
	return p.vec
}

// Equal is structural, recursive equality. Map comparison ignores
// construction/iteration order; Vector comparison is order-sensitive.
// Properties of differing Kind are never equal, even with equal names.
func (p Property) Equal(o Property) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case Empty:
		return true
	case Bool:
		return p.b == o.b
	case Int32:
		return p.i32 == o.i32
	case UInt32:
		return p.u32 == o.u32
	case Int64:
		return p.i64 == o.i64
	case UInt64:
		return p.u64 == o.u64
	case Double:
		return p.f64 == o.f64
	case String:
		return p.str == o.str
	case Binary:
		if len(p.bin) != len(o.bin) {
			return false
		}
		for i := range p.bin {
			if p.bin[i] != o.bin[i] {
				return false
			}
		}
		return true
	case Map:
		if len(p.mp) != len(o.mp) {
			return false
		}
		for k, v := range p.mp {
			ov, ok := o.mp[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	case Vector:
		if len(p.vec) != len(o.vec) {
			return false
		}
		for i := range p.vec {
			if !p.vec[i].Equal(o.vec[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SortedMapKeys returns a map property's keys in sorted order, used by
// equality (conceptually) and by formatters/encoders that need a stable
// iteration order.
func SortedMapKeys(m map[string]Property) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the property via Format, i.e. through the formatter
// selected by its semantic tag.
func (p Property) String() string {
	return Format(p)
}
