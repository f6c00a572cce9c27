package meta_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickamy/ormmeta/meta"
)

type member struct {
	ID int64 `orm:"primary"`
}

type label struct {
	ID int64 `orm:"primary"`
}

type account struct {
	ID        int64   `orm:"primary,autoincrement"`
	Email     string  `orm:"unique,length=255"`
	Age       int     `orm:"name=years,check='years > 0'"`
	Nickname  *string `orm:"comment='shown publicly'"`
	Internal  string  `orm:"-"`
	scratch   string
	password  string   `orm:"hidden"`
	token     string   `orm:"lazy"`
	Owner     *member  `rel:"m:1" orm:"nullable"`
	Labels    []label  `rel:"has_many,foreign_key:account_id"`
	CreatedAt time.Time
	Loaded    bool `orm:"persist=false"`
}

func (a *account) Password() string     { return a.password }
func (a *account) SetPassword(p string) { a.password = p }

func (a *account) DisplayName() string {
	return strings.ToUpper(a.Email)
}

func (a *account) DefineMetadata(b *meta.Builder) {
	b.Method("DisplayName", meta.PropertyOptions{Name: "display", Type: "string"}).
		Check("", meta.Literal("id > 0"))
}

func (account) TableName() string { return "accounts_tbl" }

func TestLoad(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	e, err := s.Load(&account{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ID", "Email", "Age", "Nickname", "password", "token", "Owner", "Labels", "CreatedAt", "Loaded", "display",
	}, e.PropertyNames())
	assert.Equal(t, "accounts_tbl", e.TableName(meta.UnderscoreNamingStrategy{}))

	id, _ := e.Property("ID")
	assert.True(t, id.Primary)
	assert.True(t, id.AutoIncrement)
	assert.Equal(t, "int64", id.Type)

	age, _ := e.Property("Age")
	assert.Equal(t, []string{"years"}, age.FieldNames)
	assert.Equal(t, "int", age.Type)

	nick, _ := e.Property("Nickname")
	assert.Equal(t, "*string", nick.Type)
	assert.True(t, nick.IsNullable())
	assert.Equal(t, []string{"nickname"}, nick.ColumnNames(meta.UnderscoreNamingStrategy{}))

	pw, _ := e.Property("password")
	assert.True(t, pw.Getter)
	assert.True(t, pw.Setter)
	assert.True(t, pw.Hidden)
	assert.True(t, pw.IsPersisted())

	token, _ := e.Property("token")
	assert.False(t, token.Getter)
	assert.False(t, token.Setter)
	assert.True(t, token.Lazy)

	owner, _ := e.Property("Owner")
	assert.Equal(t, meta.ManyToOne, owner.Kind)
	assert.Equal(t, "member", owner.Target)
	assert.True(t, owner.IsNullable())

	labels, _ := e.Property("Labels")
	assert.Equal(t, meta.OneToMany, labels.Kind)
	assert.Equal(t, "label", labels.Target)

	created, _ := e.Property("CreatedAt")
	assert.Equal(t, "time.Time", created.Type)
	assert.Equal(t, []string{"created_at"}, created.ColumnNames(meta.UnderscoreNamingStrategy{}))

	loaded, _ := e.Property("Loaded")
	assert.False(t, loaded.IsPersisted())

	display, _ := e.Property("display")
	assert.True(t, display.MethodBacked)
	assert.Equal(t, "DisplayName", display.GetterName)
	assert.Equal(t, "method", display.Type)

	checks := e.Checks()
	require.Len(t, checks, 2)
	assert.Equal(t, "Age", checks[0].Property)
	assert.Equal(t, "years > 0", checks[0].Expression.Resolve("a"))
	assert.Equal(t, "", checks[1].Property)
	assert.Equal(t, "id > 0", checks[1].Expression.Resolve("a"))
}

func TestLoadIsIdempotent(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	first, err := s.Load(account{})
	require.NoError(t, err)
	props, checks := first.Properties(), first.Checks()

	second, err := s.Load(&account{})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, props, second.Properties())
	assert.Equal(t, checks, second.Checks())
	assert.Equal(t, 1, s.Count())
}

type gauge struct {
	ID    int64 `orm:"primary"`
	Level int   `orm:"check='level <= 100'"`
}

func (*gauge) DefineMetadata(b *meta.Builder) {
	b.Check("Level", meta.Deferred(func(alias string) string { return alias + ".level >= 0" })).
		Check("", meta.Literal("id > 0"))
}

func TestLoadIsIdempotentWithDeferredChecks(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	first, err := s.Load(&gauge{})
	require.NoError(t, err)
	require.Len(t, first.Checks(), 3)

	second, err := s.Load(&gauge{})
	require.NoError(t, err)

	checks := second.Checks()
	require.Len(t, checks, 3)
	assert.Equal(t, "Level", checks[0].Property)
	assert.Equal(t, "level <= 100", checks[0].Expression.Resolve("g"))
	assert.Equal(t, "Level", checks[1].Property)
	assert.Equal(t, "g.level >= 0", checks[1].Expression.Resolve("g"))
	assert.Equal(t, "", checks[2].Property)
	assert.Equal(t, "id > 0", checks[2].Expression.Resolve("g"))
}

type vault struct {
	secret string `orm:"length=64"`
	pin    string `orm:"length=4"`
}

func (v *vault) Secret(prefix string) string { return prefix + v.secret }
func (v *vault) SetSecret()                  { v.secret = "" }
func (v *vault) Pin() string                 { return v.pin }
func (v *vault) SetPin(p string, _ bool)     { v.pin = p }

func TestLoadAccessorArity(t *testing.T) {
	t.Parallel()

	e, err := meta.NewStore().Load(&vault{})
	require.NoError(t, err)

	secret, ok := e.Property("secret")
	require.True(t, ok)
	assert.False(t, secret.Getter, "getter with parameters")
	assert.False(t, secret.Setter, "setter without a value")

	pin, ok := e.Property("pin")
	require.True(t, ok)
	assert.True(t, pin.Getter)
	assert.False(t, pin.Setter, "setter with two parameters")
}

type badLength struct {
	Name string `orm:"length=abc"`
}

type badRel struct {
	Parent *member `rel:"sideways"`
}

type conflicting struct {
	Owner int64
}

func (*conflicting) DefineMetadata(b *meta.Builder) {
	b.Reference("Owner", meta.ManyToOne, "member")
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	t.Run("invalid tag", func(t *testing.T) {
		t.Parallel()

		_, err := meta.NewStore().Load(badLength{})
		var tagErr *meta.TagError
		require.True(t, errors.As(err, &tagErr))
		assert.Equal(t, "Name", tagErr.Field)
		assert.Equal(t, "length=abc", tagErr.Tag)
		assert.Contains(t, err.Error(), "expected a number")
	})

	t.Run("invalid relation", func(t *testing.T) {
		t.Parallel()

		_, err := meta.NewStore().Load(badRel{})
		var tagErr *meta.TagError
		require.True(t, errors.As(err, &tagErr))
		assert.Equal(t, "Parent", tagErr.Field)
	})

	t.Run("definer conflicts with field", func(t *testing.T) {
		t.Parallel()

		_, err := meta.NewStore().Load(&conflicting{})
		assert.ErrorIs(t, err, meta.ErrDuplicateDecorator)
	})

	t.Run("not a struct", func(t *testing.T) {
		t.Parallel()

		_, err := meta.NewStore().Load(42)
		assert.Error(t, err)
		_, err = meta.NewStore().Load(nil)
		assert.Error(t, err)
	})
}

type userProfile struct{}

func TestTableName(t *testing.T) {
	t.Parallel()

	s := meta.NewStore()
	e := s.GetOrCreate(meta.TypeOf[userProfile]())
	assert.Equal(t, "user_profiles", e.TableName(meta.UnderscoreNamingStrategy{}))
	assert.Equal(t, "user_profiles", e.TableName(nil))
	assert.Equal(t, "userProfile", e.TableName(meta.IdentityNamingStrategy{}))

	src := s.GetOrCreate(meta.SourceType{Package: "model", Type: "Category"})
	assert.Equal(t, "categories", src.TableName(nil))
	src.SetTableName("cats")
	assert.Equal(t, "cats", src.TableName(nil))
}
