package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

// directive marks a method as a computed property:
//
//	//ormmeta:property name=display,type=string
//	func (u *User) DisplayName() string { ... }
const directive = "//ormmeta:property"

// FieldInfo holds one struct field as written in source.
type FieldInfo struct {
	Name     string // Go field name, e.g. "CreatedAt"
	GoType   string // Go type as string, e.g. "time.Time"
	Tag      string // body of the orm tag
	Tagged   bool   // true if an orm tag is present, even empty
	Rel      string // body of the rel tag
	Exported bool
}

// MethodInfo holds a method declared on the struct.
type MethodInfo struct {
	Name      string
	Params    int
	Results   int
	Directive string // options following //ormmeta:property
	Property  bool   // true if the directive is present
}

// StructInfo holds parsed metadata for one struct.
type StructInfo struct {
	Name      string // Go struct name, e.g. "User"
	Package   string // Package name, e.g. "model"
	Fields    []FieldInfo
	Methods   []MethodInfo
	TableName string // literal returned by a TableName() method, if any
}

// Method returns the method called name.
func (s *StructInfo) Method(name string) (MethodInfo, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodInfo{}, false
}

// annotated reports whether the struct carries any orm annotation.
func (s *StructInfo) annotated() bool {
	for _, f := range s.Fields {
		if f.Tagged || f.Rel != "" {
			return true
		}
	}
	for _, m := range s.Methods {
		if m.Property {
			return true
		}
	}
	return false
}

// Parse reads the Go file at path and returns StructInfo for every struct
// that has at least one orm or rel tag or //ormmeta:property method, in
// declaration order.
func Parse(filePath string) ([]*StructInfo, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	pkg := file.Name.Name
	var infos []*StructInfo
	byName := make(map[string]*StructInfo)

	ast.Inspect(file, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}

		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			return true
		}

		info := &StructInfo{
			Name:    ts.Name.Name,
			Package: pkg,
			Fields:  parseStructFields(st),
		}
		infos = append(infos, info)
		byName[info.Name] = info
		return true
	})

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}
		info, ok := byName[receiverName(fn.Recv.List[0].Type)]
		if !ok {
			continue
		}
		m := parseMethod(fn)
		info.Methods = append(info.Methods, m)
		if m.Name == "TableName" {
			info.TableName = literalReturn(fn)
		}
	}

	annotated := infos[:0]
	for _, info := range infos {
		if info.annotated() {
			annotated = append(annotated, info)
		}
	}
	return annotated, nil
}

// parseStructFields extracts named fields from an AST struct type.
func parseStructFields(st *ast.StructType) []FieldInfo {
	fields := make([]FieldInfo, 0, len(st.Fields.List))
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded field, skip
		}

		var tag reflect.StructTag
		if field.Tag != nil {
			tag = reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
		}
		body, tagged := tag.Lookup("orm")
		rel := tag.Get("rel")
		goType := typeToString(field.Type)

		for _, name := range field.Names {
			fields = append(fields, FieldInfo{
				Name:     name.Name,
				GoType:   goType,
				Tag:      body,
				Tagged:   tagged,
				Rel:      rel,
				Exported: name.IsExported(),
			})
		}
	}
	return fields
}

func parseMethod(fn *ast.FuncDecl) MethodInfo {
	m := MethodInfo{
		Name:    fn.Name.Name,
		Params:  countFields(fn.Type.Params),
		Results: countFields(fn.Type.Results),
	}
	if fn.Doc != nil {
		for _, c := range fn.Doc.List {
			rest, ok := strings.CutPrefix(c.Text, directive)
			if !ok {
				continue
			}
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				continue
			}
			m.Property = true
			m.Directive = strings.TrimSpace(rest)
		}
	}
	return m
}

func countFields(fl *ast.FieldList) int {
	if fl == nil {
		return 0
	}
	n := 0
	for _, f := range fl.List {
		if len(f.Names) == 0 {
			n++
			continue
		}
		n += len(f.Names)
	}
	return n
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}

// literalReturn returns the string literal of a single-statement
// `return "..."` body, or "".
func literalReturn(fn *ast.FuncDecl) string {
	if fn.Body == nil || len(fn.Body.List) != 1 {
		return ""
	}
	ret, ok := fn.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return ""
	}
	lit, ok := ret.Results[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return ""
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return ""
	}
	return s
}

func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return typeToString(t.X) + "." + t.Sel.Name
	case *ast.StarExpr:
		return "*" + typeToString(t.X)
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeToString(t.Elt)
		}
		return fmt.Sprintf("[%s]%s", typeToString(t.Len), typeToString(t.Elt))
	case *ast.MapType:
		return fmt.Sprintf("map[%s]%s", typeToString(t.Key), typeToString(t.Value))
	case *ast.BasicLit:
		return t.Value
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// elemName unwraps "*", "[]" and "map[K]" prefixes and a package qualifier:
// "[]*model.Post" → "Post".
func elemName(goType string) string {
	for {
		switch {
		case strings.HasPrefix(goType, "*"):
			goType = goType[1:]
		case strings.HasPrefix(goType, "[]"):
			goType = goType[2:]
		case strings.HasPrefix(goType, "map["):
			if i := strings.Index(goType, "]"); i >= 0 {
				goType = goType[i+1:]
				continue
			}
			return goType
		default:
			if i := strings.LastIndex(goType, "."); i >= 0 {
				return goType[i+1:]
			}
			return goType
		}
	}
}
