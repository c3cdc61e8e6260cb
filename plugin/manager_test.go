package plugin

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/erebus-project/erebus/rtl/log"
	"github.com/erebus-project/erebus/rtl/property"
)

type fakePlugin struct {
	name   string
	closed *[]string
}

func (p *fakePlugin) Info() property.Bag {
	return property.Bag{property.NewString("name", p.name)}
}

func (p *fakePlugin) Close() error {
	*p.closed = append(*p.closed, p.name)
	return nil
}

func TestUnloadAllIsLIFO(t *testing.T) {
	var order []string
	mgr := NewManager(nil, log.NewSyncLogger(log.NewTee()))

	mgr.loaded = []loaded{
		{path: "a.so", plug: &fakePlugin{name: "a", closed: &order}},
		{path: "b.so", plug: &fakePlugin{name: "b", closed: &order}},
		{path: "c.so", plug: &fakePlugin{name: "c", closed: &order}},
	}

	mgr.UnloadAll()

	assert.Check(t, is.DeepEqual(order, []string{"c", "b", "a"}))
	assert.Check(t, is.Len(mgr.loaded, 0))
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	mgr := NewManager(nil, log.NewSyncLogger(log.NewTee()))
	_, err := mgr.Load("/nonexistent/path/plugin.so", property.Bag{})
	assert.Check(t, err != nil)
}
