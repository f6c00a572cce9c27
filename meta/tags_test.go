package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickamy/ormmeta/internal/tag"
	"github.com/mickamy/ormmeta/meta"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	opts, err := meta.ParseTag(
		"name=years,fieldNames=(y1,y2),type=int,columnType='smallint',length=4,precision=3,scale=0," +
			"unsigned,autoincrement=false,default=18,nullable=false,unique,index,primary=false,version," +
			"concurrencyCheck,persist,trackChanges=false,hidden,lazy,check='years > 0',formula='years * 12'," +
			"serializedName=age,customOrder=(child,adult),comment='age in years',extra=x,ignoreSchemaChanges=(type,extra)",
	)
	require.NoError(t, err)

	assert.Equal(t, "years", opts.Name)
	assert.Equal(t, []string{"y1", "y2"}, opts.FieldNames)
	assert.Equal(t, "int", opts.Type)
	assert.Equal(t, "smallint", opts.ColumnType)
	assert.Equal(t, 4, opts.Length)
	assert.Equal(t, 3, opts.Precision)
	assert.Equal(t, 0, opts.Scale)
	assert.True(t, opts.Unsigned)
	assert.False(t, opts.AutoIncrement)
	assert.Equal(t, int64(18), opts.Default)
	require.NotNil(t, opts.Nullable)
	assert.False(t, *opts.Nullable)
	assert.True(t, opts.Unique)
	assert.True(t, opts.Index)
	assert.False(t, opts.Primary)
	assert.True(t, opts.Version)
	assert.True(t, opts.ConcurrencyCheck)
	require.NotNil(t, opts.Persist)
	assert.True(t, *opts.Persist)
	require.NotNil(t, opts.TrackChanges)
	assert.False(t, *opts.TrackChanges)
	assert.True(t, opts.Hidden)
	assert.True(t, opts.Lazy)
	assert.Equal(t, "years > 0", opts.Check.Resolve(""))
	assert.Equal(t, "years * 12", opts.Formula.Resolve(""))
	assert.Equal(t, "age", opts.SerializedName)
	assert.Equal(t, []string{"child", "adult"}, opts.CustomOrder)
	assert.Equal(t, "age in years", opts.Comment)
	assert.Equal(t, "x", opts.Extra)
	assert.Equal(t, []string{"type", "extra"}, opts.IgnoreSchemaChanges)
}

func TestParseTagDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want any
	}{
		{"default=1.5", 1.5},
		{"default=true", true},
		{"default=pending", "pending"},
		{"default='a, b'", "a, b"},
		{"default", nil},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			t.Parallel()

			opts, err := meta.ParseTag(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.Default)
		})
	}
}

func TestParseTagErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body    string
		wantMsg string
	}{
		{"colour=red", `unknown tag option "colour"`},
		{"length=abc", `tag option "length": expected a number`},
		{"length=1.5", `tag option "length": expected an integer`},
		{"nullable=maybe", `tag option "nullable": expected true or false`},
		{"name=(a,b)", `tag option "name": expected a value`},
		{"fieldNames=3", `tag option "fieldNames": expected a list`},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			t.Parallel()

			_, err := meta.ParseTag(tt.body)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	for _, body := range []string{"length=", "columnType=varchar(255)"} {
		_, err := meta.ParseTag(body)
		assert.ErrorIs(t, err, tag.ErrSyntax, body)
	}

	opts, err := meta.ParseTag("columnType='varchar(255)'")
	require.NoError(t, err)
	assert.Equal(t, "varchar(255)", opts.ColumnType)
}

func TestParseTagEmpty(t *testing.T) {
	t.Parallel()

	opts, err := meta.ParseTag("")
	require.NoError(t, err)
	assert.Equal(t, meta.PropertyOptions{}, opts)
}
