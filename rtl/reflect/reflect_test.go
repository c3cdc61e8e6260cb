package reflect

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/erebus-project/erebus/rtl/property"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// processInfo mirrors the spec's process-enumeration exemplar: a plain
// struct reflected via a static field table rather than via encoding tags.
type processInfo struct {
	PID  int32
	Name string
}

const (
	fieldPID FieldID = iota
	fieldName
)

func hashString(seed uint64, s string) uint64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d:%s", seed, s)
	return h.Sum64()
}

var processTable = NewTable([]FieldInfo[processInfo]{
	{
		ID:   fieldPID,
		Name: "pid",
		Get:  func(p *processInfo) property.Property { return property.NewInt32("pid", p.PID) },
		Set: func(p *processInfo, v property.Property) error {
			i, ok := v.AsInt32()
			if !ok {
				return fmt.Errorf("pid: expected Int32")
			}
			p.PID = i
			return nil
		},
		Equal: func(a, b *processInfo) bool { return a.PID == b.PID },
		Hash:  func(seed uint64, v *processInfo) uint64 { return hashString(seed, fmt.Sprint(v.PID)) },
	},
	{
		ID:   fieldName,
		Name: "name",
		Get:  func(p *processInfo) property.Property { return property.NewString("name", p.Name) },
		Set: func(p *processInfo, v property.Property) error {
			s, ok := v.AsString()
			if !ok {
				return fmt.Errorf("name: expected String")
			}
			p.Name = s
			return nil
		},
		Equal: func(a, b *processInfo) bool { return a.Name == b.Name },
		Hash:  func(seed uint64, v *processInfo) uint64 { return hashString(seed, v.Name) },
	},
})

func TestSetMarksValidAndChangesHash(t *testing.T) {
	r := NewRecord(processTable)
	h0 := r.Hash()

	assert.Check(t, !r.Valid(fieldPID))
	err := r.Set(fieldPID, property.NewInt32("pid", 1234))
	assert.NilError(t, err)
	assert.Check(t, r.Valid(fieldPID))

	got, ok := r.Get(fieldPID)
	assert.Check(t, ok)
	v, _ := got.AsInt32()
	assert.Check(t, is.Equal(v, int32(1234)))

	h1 := r.Hash()
	assert.Check(t, h0 != h1)
}

func TestEqualRequiresMatchingValidityAndValues(t *testing.T) {
	a := NewRecord(processTable)
	b := NewRecord(processTable)
	assert.Check(t, a.Equal(b), "two all-invalid records are equal")

	assert.NilError(t, a.Set(fieldPID, property.NewInt32("pid", 1)))
	assert.Check(t, !a.Equal(b), "validity bitmaps differ")

	assert.NilError(t, b.Set(fieldPID, property.NewInt32("pid", 1)))
	assert.Check(t, a.Equal(b))

	assert.NilError(t, a.Set(fieldName, property.NewString("name", "init")))
	assert.NilError(t, b.Set(fieldName, property.NewString("name", "systemd")))
	assert.Check(t, !a.Equal(b), "jointly valid field differs")
}

func TestBagProjectsOnlyValidFields(t *testing.T) {
	r := NewRecord(processTable)
	assert.NilError(t, r.Set(fieldName, property.NewString("name", "init")))

	bag := r.Bag()
	assert.Check(t, is.Equal(len(bag), 1))
	assert.Check(t, is.Equal(bag[0].Name(), "name"))
}
