package errors

import (
	"testing"

	"github.com/erebus-project/erebus/rtl/property"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestSuccessCodeIsZero(t *testing.T) {
	e := New(0, Generic, "")
	assert.Check(t, e.Succeeded())
	assert.Check(t, is.Equal(e.Kind(), Ok))
}

func TestBriefAndMessage(t *testing.T) {
	e := New(int32(NotFound), Generic, "plugin lookup failed")
	assert.Check(t, is.Equal(e.Brief(), "plugin lookup failed"))
	assert.Check(t, is.Equal(e.Kind(), NotFound))
	assert.Check(t, is.Equal(e.Message(), "NotFound"))
}

func TestUnknownCategoryDegradesToInternal(t *testing.T) {
	e := &Error{Code: 1, Category: nil}
	assert.Check(t, is.Equal(e.Kind(), Internal))
}

func TestExplicitMessagePropertyWinsOverCategoryDecode(t *testing.T) {
	e := New(int32(Failure), Generic, "").
		WithProperty(property.NewString(PropMessage, "decoded text"))
	assert.Check(t, is.Equal(e.Message(), "decoded text"))
}

func TestResultCodeFallsBackToKind(t *testing.T) {
	e := New(int32(BadConfiguration), Generic, "")
	assert.Check(t, is.Equal(e.ResultCode(), BadConfiguration))

	e.WithProperty(property.NewInt32(PropResultCode, int32(Internal)))
	assert.Check(t, is.Equal(e.ResultCode(), Internal))
}

func TestLookupCategory(t *testing.T) {
	assert.Check(t, LookupCategory("Generic") != nil)
	assert.Check(t, LookupCategory("nonexistent") == nil)
}
