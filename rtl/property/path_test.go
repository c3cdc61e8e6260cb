package property

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestFindByPathDescendsMaps(t *testing.T) {
	root := NewMap("root", map[string]Property{
		"a": NewMap("a", map[string]Property{
			"b": NewMap("b", map[string]Property{
				"c": NewString("c", "leaf"),
			}),
		}),
	})

	got, ok := FindByPath(root, "a.b.c")
	assert.Check(t, ok)
	s, _ := got.AsString()
	assert.Check(t, is.Equal(s, "leaf"))
}

func TestFindByPathMissingSegment(t *testing.T) {
	root := NewMap("root", map[string]Property{
		"a": NewString("a", "x"),
	})
	_, ok := FindByPath(root, "a.b")
	assert.Check(t, !ok)
}

func TestFindByPathKindFilterRejectsMismatch(t *testing.T) {
	root := NewMap("root", map[string]Property{
		"n": NewInt32("n", 1),
	})
	_, ok := FindByPath(root, "n", String)
	assert.Check(t, !ok)

	got, ok := FindByPath(root, "n", Int32)
	assert.Check(t, ok)
	v, _ := got.AsInt32()
	assert.Check(t, is.Equal(v, int32(1)))
}

func TestFindByPathOverVector(t *testing.T) {
	root := NewVector("root", []Property{
		NewInt32("x", 1),
		NewInt32("y", 2),
	})
	got, ok := FindByPath(root, "y")
	assert.Check(t, ok)
	v, _ := got.AsInt32()
	assert.Check(t, is.Equal(v, int32(2)))
}
