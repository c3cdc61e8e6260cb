// Package reflect implements erebus's reflection adapter: it lets a plain
// Go struct be treated as a property bag through a declarative field table,
// without resorting to Go's runtime reflect package for field access. Field
// ids are a dense 0..N-1 range; validity is tracked in a fixed bitmap.
package reflect

import (
	"github.com/erebus-project/erebus/rtl/property"
)

// FieldID indexes a field in a Table. Ids are dense, 0..FieldCount-1.
type FieldID int

// MaxFields bounds FieldCount: the validity bitmap is a single uint64.
const MaxFields = 64

// FieldInfo describes one reflectable field of T: its id, display name,
// formatting semantic, and the get/set/compare/hash function objects the
// C++ source generates per-field. Get/Set marshal through property.Property
// so a Table doubles as a property-bag view of T.
type FieldInfo[T any] struct {
	ID       FieldID
	Name     string
	Semantic property.Semantic
	Get      func(*T) property.Property
	Set      func(*T, property.Property) error
	Equal    func(a, b *T) bool
	Hash     func(seed uint64, v *T) uint64
}

// Table is the static field table for T. Construct one per reflectable
// record type, typically as a package-level var.
type Table[T any] struct {
	fields []FieldInfo[T]
}

// NewTable builds a Table from fields ordered by ascending FieldID 0..N-1.
// It panics if ids are not dense, matching the spec invariant that field
// ids form a dense 0..N range (a programmer error, not a runtime
// condition).
func NewTable[T any](fields []FieldInfo[T]) *Table[T] {
	if len(fields) > MaxFields {
		panic("reflect: too many fields for a 64-bit validity bitmap")
	}
	byID := make([]FieldInfo[T], len(fields))
	seen := make([]bool, len(fields))
	for _, f := range fields {
		if int(f.ID) < 0 || int(f.ID) >= len(fields) {
			panic("reflect: field ids must be a dense 0..N-1 range")
		}
		if seen[f.ID] {
			panic("reflect: duplicate field id")
		}
		seen[f.ID] = true
		byID[f.ID] = f
	}
	return &Table[T]{fields: byID}
}

// FieldCount returns N, the number of fields in the table.
func (t *Table[T]) FieldCount() int { return len(t.fields) }

// Field returns the FieldInfo for id.
func (t *Table[T]) Field(id FieldID) FieldInfo[T] { return t.fields[id] }

// Validity is a bitmap tracking which fields of a Record have been
// assigned. One bit per field id.
type Validity uint64

func (v Validity) Has(id FieldID) bool { return v&(1<<uint(id)) != 0 }
func (v *Validity) set(id FieldID)     { *v |= 1 << uint(id) }

// Record pairs a value of T with its Table and validity bitmap, plus a
// cached hash invalidated on every Set.
type Record[T any] struct {
	Value     T
	table     *Table[T]
	valid     Validity
	hash      uint64
	hashValid bool
}

// NewRecord constructs an all-invalid Record backed by table.
func NewRecord[T any](table *Table[T]) *Record[T] {
	return &Record[T]{table: table}
}

// Set assigns field id from prop, marks it valid, and invalidates the
// cached hash.
func (r *Record[T]) Set(id FieldID, prop property.Property) error {
	f := r.table.Field(id)
	if err := f.Set(&r.Value, prop); err != nil {
		return err
	}
	r.valid.set(id)
	r.hashValid = false
	return nil
}

// Valid reports whether field id has been assigned.
func (r *Record[T]) Valid(id FieldID) bool { return r.valid.Has(id) }

// Get returns field id as a Property if it is valid.
func (r *Record[T]) Get(id FieldID) (property.Property, bool) {
	if !r.valid.Has(id) {
		return property.Property{}, false
	}
	return r.table.Field(id).Get(&r.Value), true
}

// Bag projects every valid field into an ordered property.Bag, in field-id
// order, each property named as its field's Get returns it.
func (r *Record[T]) Bag() property.Bag {
	bag := make(property.Bag, 0, r.table.FieldCount())
	for i := 0; i < r.table.FieldCount(); i++ {
		id := FieldID(i)
		if !r.valid.Has(id) {
			continue
		}
		f := r.table.Field(id)
		p := f.Get(&r.Value)
		bag = append(bag, p)
	}
	return bag
}

// fnvOffset64 seeds the cached hash, matching the conventional FNV-1a
// offset basis used as a mixing seed.
const fnvOffset64 = 14695981039346656037

// Hash returns a hash over every valid field, computed via each field's
// Hash function and cached until the next Set.
func (r *Record[T]) Hash() uint64 {
	if r.hashValid {
		return r.hash
	}
	seed := uint64(fnvOffset64)
	for i := 0; i < r.table.FieldCount(); i++ {
		id := FieldID(i)
		if !r.valid.Has(id) {
			continue
		}
		f := r.table.Field(id)
		seed = f.Hash(seed, &r.Value)
	}
	r.hash = seed
	r.hashValid = true
	return seed
}

// Equal reports whether r and o compare equal: their validity bitmaps must
// match, and every jointly-valid field must compare equal via its field
// comparator.
func (r *Record[T]) Equal(o *Record[T]) bool {
	if r.valid != o.valid {
		return false
	}
	for i := 0; i < r.table.FieldCount(); i++ {
		id := FieldID(i)
		if !r.valid.Has(id) {
			continue
		}
		f := r.table.Field(id)
		if !f.Equal(&r.Value, &o.Value) {
			return false
		}
	}
	return true
}
