package wire

import (
	"testing"

	"gotest.tools/v3/assert"

	proto "github.com/gogo/protobuf/proto"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/property"
)

// TestScalarSurvivesProtoMarshal exercises the actual wire encoding,
// rather than the in-memory FromProperty/ToProperty translation: it
// catches gaps in the oneof wrapper registration that a pure in-memory
// round trip would never see, since gRPC's codec always goes through
// proto.Marshal/Unmarshal.
func TestScalarSurvivesProtoMarshal(t *testing.T) {
	cases := []property.Property{
		property.NewBool("b", true),
		property.NewInt32("i32", -7),
		property.NewUInt32("u32", 7),
		property.NewInt64("i64", -70000000000),
		property.NewUInt64("u64", 70000000000),
		property.NewDouble("f", 3.5),
		property.NewString("s", "hello"),
		property.NewBinary("bin", []byte{1, 2, 3}),
	}
	for _, p := range cases {
		wp := FromProperty(p)

		data, err := proto.Marshal(wp)
		assert.NilError(t, err)

		decoded := &Property{}
		assert.NilError(t, proto.Unmarshal(data, decoded))

		back, err := ToProperty(decoded)
		assert.NilError(t, err)
		assert.Assert(t, p.Equal(back), "wire round-trip mismatch for %s", p.Name())
	}
}

func TestPropertyRoundTripScalars(t *testing.T) {
	cases := []property.Property{
		property.NewBool("b", true),
		property.NewInt32("i32", -7),
		property.NewUInt32("u32", 7),
		property.NewInt64("i64", -70000000000),
		property.NewUInt64("u64", 70000000000),
		property.NewDouble("f", 3.5),
		property.NewString("s", "hello"),
		property.NewBinary("bin", []byte{1, 2, 3}),
	}
	for _, p := range cases {
		wp := FromProperty(p)
		back, err := ToProperty(wp)
		assert.NilError(t, err)
		assert.Assert(t, p.Equal(back), "round-trip mismatch for %s", p.Name())
	}
}

func TestPropertyRoundTripContainers(t *testing.T) {
	m := property.NewMap("root", map[string]property.Property{
		"a": property.NewInt32("a", 1),
		"b": property.NewString("b", "x"),
	})
	wm := FromProperty(m)
	back, err := ToProperty(wm)
	assert.NilError(t, err)
	assert.Assert(t, m.Equal(back))

	v := property.NewVector("seq", []property.Property{
		property.NewInt32("0", 1),
		property.NewInt32("1", 2),
	})
	wv := FromProperty(v)
	backV, err := ToProperty(wv)
	assert.NilError(t, err)
	assert.Assert(t, v.Equal(backV))
}

type localCategory struct{}

func (localCategory) Name() string               { return "local" }
func (localCategory) Kind(code int32) errors.Kind { return errors.Internal }
func (localCategory) Message(code int32) string   { return "boom" }

func TestLocalCategorySuppressesCodeOnTheWire(t *testing.T) {
	e := errors.New(42, localCategory{}, "went wrong")
	x := ToException(e)
	assert.Equal(t, x.Code, int32(0))
	assert.Equal(t, x.Category, "")

	msg, ok := x.Properties[len(x.Properties)-1], true
	assert.Assert(t, ok)
	decoded, err := ToProperty(msg)
	assert.NilError(t, err)
	assert.Equal(t, decoded.Name(), errors.PropMessage)
}

func TestUnknownCategoryDegradesOnDecode(t *testing.T) {
	x := &Exception{Code: 5, Category: "SomethingExotic"}
	e := FromException(x)
	assert.Equal(t, e.Category.Name(), "Generic")
	assert.Equal(t, e.Code, int32(5))
}

func TestKnownCategoryRoundTrips(t *testing.T) {
	e := errors.New(13, errors.Generic, "brief text")
	x := ToException(e)
	assert.Equal(t, x.Code, int32(13))
	assert.Equal(t, x.Category, "Generic")

	back := FromException(x)
	assert.Equal(t, back.Code, int32(13))
	assert.Equal(t, back.Brief(), "brief text")
}
