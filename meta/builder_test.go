package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickamy/ormmeta/meta"
)

type invoice struct{}

func TestDefine(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	e, err := meta.Define[invoice](s, func(b *meta.Builder) {
		b.Property("id", meta.PropertyOptions{Primary: true}).
			Property("total", meta.PropertyOptions{Type: "decimal", Precision: 10, Scale: 2}).
			Accessor("status", true, true).
			Method("label").
			Reference("customer", meta.ManyToOne, "Customer").
			Check("total", meta.Literal("total >= 0")).
			Table("billing_invoices")
	})
	require.NoError(t, err)

	assert.Same(t, s.GetOrCreate(meta.TypeOf[invoice]()), e)
	assert.Equal(t, []string{"id", "total", "status", "label", "customer"}, e.PropertyNames())
	assert.Equal(t, "billing_invoices", e.TableName(nil))

	customer, ok := e.Property("customer")
	require.True(t, ok)
	assert.Equal(t, meta.ManyToOne, customer.Kind)
	assert.Equal(t, "Customer", customer.Target)

	label, _ := e.Property("label")
	assert.True(t, label.MethodBacked)

	require.Len(t, e.Checks(), 1)
	assert.False(t, meta.IsOptionsCheck(e.Checks()[0]))
}

func TestDefineStopsAtFirstError(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	e, err := meta.Define[invoice](s, func(b *meta.Builder) {
		b.Property("customer").
			Reference("customer", meta.ManyToOne, "Customer").
			Property("after").
			Check("after", meta.Literal("after > 0")).
			Table("ignored")
		assert.Error(t, b.Err())
	})
	assert.Nil(t, e)
	assert.ErrorIs(t, err, meta.ErrDuplicateDecorator)

	got, ok := s.Lookup(meta.TypeOf[invoice]())
	require.True(t, ok)
	assert.Equal(t, []string{"customer"}, got.PropertyNames())
	assert.Empty(t, got.Checks())
	assert.Equal(t, "invoices", got.TableName(meta.UnderscoreNamingStrategy{}))
}

func TestDefineReplacesChecksByPosition(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	define := func(bound string) {
		_, err := meta.Define[invoice](s, func(b *meta.Builder) {
			b.Property("total").
				Check("total", meta.Deferred(func(alias string) string { return alias + ".total >= " + bound })).
				Check("", meta.Literal("total < 1000"))
		})
		require.NoError(t, err)
	}
	define("0")
	define("10")

	e, _ := s.Lookup(meta.TypeOf[invoice]())
	checks := e.Checks()
	require.Len(t, checks, 2)
	assert.Equal(t, "i.total >= 10", checks[0].Expression.Resolve("i"))
	assert.Equal(t, "total < 1000", checks[1].Expression.Resolve("i"))
}
