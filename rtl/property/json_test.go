package property

import (
	"errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestFromJSONBasicShapes(t *testing.T) {
	doc := []byte(`{"name":"erebus","count":3,"ratio":1.5,"ok":true,"tags":["a","b"]}`)
	p, err := FromJSON("root", doc)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(p.Kind(), Map))

	name, ok := FindByPath(p, "name")
	assert.Check(t, ok)
	s, _ := name.AsString()
	assert.Check(t, is.Equal(s, "erebus"))

	count, ok := FindByPath(p, "count")
	assert.Check(t, ok)
	assert.Check(t, is.Equal(count.Kind(), Int64))

	tags, ok := FindByPath(p, "tags")
	assert.Check(t, ok)
	assert.Check(t, is.Equal(tags.Kind(), Vector))
}

func buildNested(depth int) string {
	var sb strings.Builder
	for i := 0; i < depth; i++ {
		sb.WriteString(`{"a":`)
	}
	sb.WriteString("0")
	for i := 0; i < depth; i++ {
		sb.WriteString("}")
	}
	return sb.String()
}

func TestFromJSONDepthLimit(t *testing.T) {
	_, err := FromJSON("root", []byte(buildNested(1000)))
	var tooDeep *ErrTooDeep
	assert.Check(t, errors.As(err, &tooDeep))
}

func TestFromJSONWithinDepthLimitSucceeds(t *testing.T) {
	_, err := FromJSON("root", []byte(buildNested(MaxJSONDepth-1)))
	assert.NilError(t, err)
}
