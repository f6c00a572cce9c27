// Package tag parses the option DSL used in `orm:"..."` struct tags and
// `//ormmeta:property` method directives.
//
//	orm:"name=years,nullable,columnType='varchar(255)',check='age > 0',fieldNames=(first,last)"
//
// Bare keys are boolean flags. Values are identifiers, numbers, single- or
// double-quoted strings, or parenthesised lists of those. A value containing
// parentheses, commas or spaces must be quoted: columnType=varchar(255) is a
// syntax error.
package tag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("tag: syntax error")

// ValueKind tells how a value was written.
type ValueKind int

const (
	KindFlag ValueKind = iota // bare key, no value
	KindIdent
	KindNumber
	KindString
	KindList
)

// Option is one `key[=value]` pair in declaration order.
type Option struct {
	Key  string
	Kind ValueKind
	// Value holds the unquoted scalar; empty for flags and lists.
	Value string
	List  []string
}

type tagAST struct {
	Options []*optionAST `parser:"(@@ (',' @@)*)? ','?"`
}

type optionAST struct {
	Key   string    `parser:"@Ident"`
	Value *valueAST `parser:"('=' @@)?"`
}

type valueAST struct {
	List   *listAST `parser:"  @@"`
	String *string  `parser:"| @String"`
	Number *string  `parser:"| @Number"`
	Ident  *string  `parser:"| @Ident"`
}

type listAST struct {
	Items []string `parser:"'(' (@(String | Number | Ident) (',' @(String | Number | Ident))*)? ')'"`
}

var tagLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(\\'|[^'])*'|"(\\"|[^"])*"`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
	{Name: "Punct", Pattern: `[=,()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var tagParser = participle.MustBuild[tagAST](
	participle.Lexer(tagLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse splits a tag body into its options. An empty body yields no options.
func Parse(body string) ([]Option, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	ast, err := tagParser.ParseString("", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, body, err)
	}

	opts := make([]Option, 0, len(ast.Options))
	for _, o := range ast.Options {
		opts = append(opts, o.option())
	}
	return opts, nil
}

func (o *optionAST) option() Option {
	opt := Option{Key: o.Key}
	v := o.Value
	switch {
	case v == nil:
		opt.Kind = KindFlag
	case v.List != nil:
		opt.Kind = KindList
		opt.List = make([]string, 0, len(v.List.Items))
		for _, item := range v.List.Items {
			opt.List = append(opt.List, unquote(item))
		}
	case v.String != nil:
		opt.Kind = KindString
		opt.Value = unquote(*v.String)
	case v.Number != nil:
		opt.Kind = KindNumber
		opt.Value = *v.Number
	case v.Ident != nil:
		opt.Kind = KindIdent
		opt.Value = *v.Ident
	}
	return opt
}

// unquote strips matching quotes and resolves escaped quote characters.
// Anything else inside the string is kept verbatim, so SQL fragments survive.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return s
	}
	inner := s[1 : len(s)-1]
	return strings.ReplaceAll(inner, `\`+string(q), string(q))
}
