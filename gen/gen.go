// Package gen scans model structs and writes typed column selectors for
// them, so conditions can name columns without string literals:
//
//	sqlbuilder.Select[models.User]().Where(qb.Compare(qb.Equal, models.UserColumns.Email, email))
package gen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"golang.org/x/tools/imports"

	"github.com/maxshaw/sqlbuilder/qb"
)

//go:embed template/*
var tplDir embed.FS

var tpl = template.Must(template.New("gen").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).ParseFS(tplDir, "template/*.tmpl"))

type Field struct {
	Name, Column, Type string

	Key bool
}

type Model struct {
	Name  string
	Table string
	Alias string
	Key   string

	Fields []Field
}

func (m Model) Columns() []string {
	return lo.Map(m.Fields, func(f Field, _ int) string { return f.Column })
}

type Options struct {
	// Models is the directory holding the model sources.
	Models string
	// Output is where <model>_columns.go files go.
	Output string
	// Package defaults to the models' package name when Output is the
	// models directory, otherwise to Output's base name.
	Package string
}

// Gen reads every non-test .go file in opts.Models and writes one columns
// file per model. It returns the written paths.
func Gen(opts Options) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(opts.Models, "*.go"))
	if err != nil {
		return nil, err
	}
	files = lo.Filter(files, func(f string, _ int) bool {
		return !strings.HasSuffix(f, "_test.go") && !strings.HasSuffix(f, "_columns.go")
	})
	if len(files) == 0 {
		return nil, errors.New("gen: model folder is empty")
	}

	s := newScanner()
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if err := s.scan(file, src); err != nil {
			return nil, err
		}
	}

	pkg := opts.Package
	if pkg == "" {
		if filepath.Clean(opts.Output) == filepath.Clean(opts.Models) {
			pkg = s.pkg
		} else {
			pkg = filepath.Base(opts.Output)
		}
	}

	if err := os.MkdirAll(opts.Output, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, m := range s.models() {
		src, err := Render(pkg, m)
		if err != nil {
			return written, err
		}

		path := filepath.Join(opts.Output, strings.ToLower(m.Name)+"_columns.go")
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

// Parse scans one source file and returns its models.
func Parse(filename string, src []byte) ([]Model, error) {
	s := newScanner()
	if err := s.scan(filename, src); err != nil {
		return nil, err
	}
	return s.models(), nil
}

// Render produces the formatted columns file for m.
func Render(pkg string, m Model) ([]byte, error) {
	var out bytes.Buffer
	if err := tpl.ExecuteTemplate(&out, "columns.tmpl", map[string]any{
		"Package": pkg,
		"Model":   m,
	}); err != nil {
		return nil, err
	}

	src, err := imports.Process(strings.ToLower(m.Name)+"_columns.go", out.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("gen: formatting %s: %w\n%s", m.Name, err, out.String())
	}
	return src, nil
}

type scanner struct {
	fset   *token.FileSet
	pkg    string
	order  []string
	byName map[string]*Model
	tables map[string]string
}

func newScanner() *scanner {
	return &scanner{
		fset:   token.NewFileSet(),
		byName: make(map[string]*Model),
		tables: make(map[string]string),
	}
}

func (s *scanner) scan(filename string, src []byte) error {
	f, err := parser.ParseFile(s.fset, filename, src, parser.ParseComments)
	if err != nil {
		return err
	}
	if s.pkg == "" {
		s.pkg = f.Name.Name
	}

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || !ts.Name.IsExported() {
					continue
				}
				if st, ok := ts.Type.(*ast.StructType); ok {
					s.order = append(s.order, ts.Name.Name)
					s.byName[ts.Name.Name] = s.parse(ts.Name.Name, st)
				}
			}

		case *ast.FuncDecl:
			if d.Name.Name == "TableName" && firstFieldName(d.Type.Results) == "string" {
				if table := returnedString(d.Body); table != "" {
					s.tables[recvName(d.Recv)] = table
				}
			}
		}
	}

	return nil
}

func (s *scanner) models() []Model {
	return lo.Map(s.order, func(name string, _ int) Model {
		m := *s.byName[name]
		if table, ok := s.tables[name]; ok {
			m.Table = table
		}
		return m
	})
}

func (s *scanner) parse(name string, st *ast.StructType) *Model {
	m := &Model{Name: name, Table: name, Alias: qb.ResolveAlias(name)}

	for _, sf := range st.Fields.List {
		if len(sf.Names) < 1 {
			continue
		}

		for _, ident := range sf.Names {
			if !ident.IsExported() {
				continue
			}

			f := Field{Name: ident.Name, Column: ident.Name, Type: s.typeName(sf.Type)}

			if sf.Tag != nil {
				tag, ok := reflect.StructTag(strings.Trim(sf.Tag.Value, "`")).Lookup("db")
				if ok {
					col, opts, _ := strings.Cut(tag, ",")
					if col == "-" {
						continue
					}
					if col != "" {
						f.Column = col
					}
					f.Key = lo.Contains(strings.Split(opts, ","), "pk")
				}
			}

			m.Fields = append(m.Fields, f)
		}
	}

	if key, ok := lo.Find(m.Fields, func(f Field) bool { return f.Key }); ok {
		m.Key = key.Column
	} else if key, ok := lo.Find(m.Fields, func(f Field) bool { return strings.EqualFold(f.Name, "ID") }); ok {
		m.Key = key.Column
	}

	return m
}

func (s *scanner) typeName(e ast.Expr) string {
	if e == nil {
		return ""
	}

	var sb strings.Builder
	_ = printer.Fprint(&sb, s.fset, e)
	return sb.String()
}

func firstFieldName(l *ast.FieldList) string {
	if l.NumFields() > 0 {
		if id, ok := l.List[0].Type.(*ast.Ident); ok {
			return id.Name
		}
	}
	return ""
}

func recvName(l *ast.FieldList) string {
	if l.NumFields() == 0 {
		return ""
	}
	typ := l.List[0].Type
	if star, ok := typ.(*ast.StarExpr); ok {
		typ = star.X
	}
	if id, ok := typ.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

// returnedString finds `return "literal"` in a TableName body.
func returnedString(body *ast.BlockStmt) string {
	if body == nil {
		return ""
	}
	for _, stmt := range body.List {
		ret, ok := stmt.(*ast.ReturnStmt)
		if !ok || len(ret.Results) != 1 {
			continue
		}
		if lit, ok := ret.Results[0].(*ast.BasicLit); ok && lit.Kind == token.STRING {
			if s, err := strconv.Unquote(lit.Value); err == nil {
				return s
			}
		}
	}
	return ""
}
