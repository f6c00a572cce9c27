package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickamy/ormmeta/meta"
)

type person struct{}

func widgetA() meta.Identity {
	type widget struct{}
	return meta.TypeOf[widget]()
}

func widgetB() meta.Identity {
	type widget struct{}
	return meta.TypeOf[widget]()
}

func TestStoreGetOrCreate(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	id := meta.TypeOf[person]()

	first := s.GetOrCreate(id)
	require.NotNil(t, first)
	assert.Equal(t, 0, first.Len())
	assert.Empty(t, first.Checks())
	assert.Equal(t, "person", first.Name())

	assert.Same(t, first, s.GetOrCreate(id))
	assert.Same(t, first, s.GetOrCreate(meta.TypeOf[*person]()))
	assert.Equal(t, 1, s.Count())
}

func TestStoreKeysByIdentityNotName(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	a, b := widgetA(), widgetB()
	require.Equal(t, a.Name(), b.Name())

	assert.NotSame(t, s.GetOrCreate(a), s.GetOrCreate(b))
	assert.Equal(t, 2, s.Count())

	srcA := meta.SourceType{Package: "billing", Type: "Invoice"}
	srcB := meta.SourceType{Package: "sales", Type: "Invoice"}
	assert.NotSame(t, s.GetOrCreate(srcA), s.GetOrCreate(srcB))
	assert.Same(t, s.GetOrCreate(srcA), s.GetOrCreate(meta.SourceType{Package: "billing", Type: "Invoice"}))
	assert.Equal(t, "billing.Invoice", srcA.String())
}

func TestStoreLookupEntitiesReset(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	_, ok := s.Lookup(meta.TypeOf[person]())
	assert.False(t, ok)

	p := s.GetOrCreate(meta.TypeOf[person]())
	w := s.GetOrCreate(widgetA())

	got, ok := s.Lookup(meta.TypeOf[person]())
	require.True(t, ok)
	assert.Same(t, p, got)
	assert.Equal(t, []*meta.EntityMetadata{p, w}, s.Entities())

	s.Reset()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Entities())
	_, ok = s.Lookup(meta.TypeOf[person]())
	assert.False(t, ok)
	assert.NotSame(t, p, s.GetOrCreate(meta.TypeOf[person]()))
}
