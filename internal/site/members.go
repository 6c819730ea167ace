package site

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"html"
	"path"
	"sort"
	"strings"
)

// goMember is a declaration listed in a member table.
type goMember struct {
	Kind      string // "type", "func" or "field"
	Name      string
	Signature string
	File      string // slash-separated source path
	Line      int
}

// goType is a type declaration plus what the package attaches to it.
type goType struct {
	goMember
	Fields  []goMember
	Methods []goMember
	Embeds  []string
}

// goPackage indexes the declarations of one directory's Go files.
type goPackage struct {
	types map[string]*goType
	funcs map[string][]goMember // by file
	order map[string][]string   // type names by file, in source order
}

// parseGoPackage parses every file in sources (path -> content). Files
// that fail to parse are left out of the index.
func parseGoPackage(sources map[string][]byte) *goPackage {
	pkg := &goPackage{
		types: make(map[string]*goType),
		funcs: make(map[string][]goMember),
		order: make(map[string][]string),
	}
	fset := token.NewFileSet()

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var methods []struct {
		recv string
		m    goMember
	}
	for _, name := range names {
		f, err := parser.ParseFile(fset, name, sources[name], parser.SkipObjectResolution)
		if err != nil {
			continue
		}
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					t := &goType{goMember: goMember{
						Kind:      "type",
						Name:      ts.Name.Name,
						Signature: typeKind(ts.Type),
						File:      name,
						Line:      fset.Position(ts.Pos()).Line,
					}}
					if st, ok := ts.Type.(*ast.StructType); ok {
						collectFields(fset, name, st, t)
					}
					pkg.types[t.Name] = t
					pkg.order[name] = append(pkg.order[name], t.Name)
				}
			case *ast.FuncDecl:
				m := goMember{
					Kind:      "func",
					Name:      d.Name.Name,
					Signature: d.Name.Name + strings.TrimPrefix(types.ExprString(d.Type), "func"),
					File:      name,
					Line:      fset.Position(d.Pos()).Line,
				}
				if d.Recv == nil || len(d.Recv.List) == 0 {
					pkg.funcs[name] = append(pkg.funcs[name], m)
					continue
				}
				recv := types.ExprString(d.Recv.List[0].Type)
				m.Signature = "(" + recv + ") " + m.Signature
				methods = append(methods, struct {
					recv string
					m    goMember
				}{receiverBase(d.Recv.List[0].Type), m})
			}
		}
	}
	for _, rm := range methods {
		if t, ok := pkg.types[rm.recv]; ok {
			t.Methods = append(t.Methods, rm.m)
		}
	}
	return pkg
}

func collectFields(fset *token.FileSet, file string, st *ast.StructType, t *goType) {
	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			t.Embeds = append(t.Embeds, receiverBase(field.Type))
			continue
		}
		for _, n := range field.Names {
			t.Fields = append(t.Fields, goMember{
				Kind:      "field",
				Name:      n.Name,
				Signature: n.Name + " " + typ,
				File:      file,
				Line:      fset.Position(n.Pos()).Line,
			})
		}
	}
}

// receiverBase strips pointers and type parameters from a type expression.
func receiverBase(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return receiverBase(e.X)
	case *ast.IndexExpr:
		return receiverBase(e.X)
	case *ast.IndexListExpr:
		return receiverBase(e.X)
	case *ast.Ident:
		return e.Name
	}
	return types.ExprString(expr)
}

func typeKind(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.StructType:
		return "struct"
	case *ast.InterfaceType:
		return "interface"
	case *ast.FuncType:
		return "func"
	}
	return types.ExprString(expr)
}

// writeMembers renders the member table of one file. Structs embedding a
// type of the same package get a collapsed group listing what they inherit.
func (pkg *goPackage) writeMembers(b *strings.Builder, file string, prefix string) bool {
	typeNames := pkg.order[file]
	funcs := pkg.funcs[file]
	if len(typeNames) == 0 && len(funcs) == 0 {
		return false
	}

	b.WriteString(`<table class="memberdecls">` + "\n")
	if len(typeNames) > 0 {
		b.WriteString(`<tr class="heading"><td colspan="2"><h2 class="groupheader">Types</h2></td></tr>` + "\n")
		for _, name := range typeNames {
			t := pkg.types[name]
			writeMemberRow(b, "memitem", "", t.goMember, file)
			for _, embed := range t.Embeds {
				base, ok := pkg.types[embed]
				if !ok || embed == name {
					continue
				}
				inherited := append(append([]goMember(nil), base.Fields...), base.Methods...)
				if len(inherited) == 0 {
					continue
				}
				group := "inh_" + name + "_" + embed
				fmt.Fprintf(b, `<tr class="inherit_header %s"><td colspan="2" data-cmd="toggle_inherit" data-target="%s"><img src="%sclosed.png" alt="-"/>&#160;Members inherited from <a href="%s">%s</a></td></tr>`+"\n",
					group, group, prefix, memberHref(base.goMember, file), html.EscapeString(embed))
				for _, m := range inherited {
					writeMemberRow(b, "inherit "+group, "display:none;", m, file)
				}
			}
		}
	}
	if len(funcs) > 0 {
		b.WriteString(`<tr class="heading"><td colspan="2"><h2 class="groupheader">Functions</h2></td></tr>` + "\n")
		for _, m := range funcs {
			writeMemberRow(b, "memitem", "", m, file)
		}
	}
	b.WriteString("</table>\n")
	return true
}

func writeMemberRow(b *strings.Builder, class, style string, m goMember, from string) {
	styleAttr := ""
	if style != "" {
		styleAttr = ` style="` + style + `"`
	}
	label := m.Signature
	if m.Kind == "type" {
		label = m.Name + " " + m.Signature
	}
	fmt.Fprintf(b, `<tr class="%s"%s><td class="memItemLeft">%s</td><td class="memItemRight"><a href="%s">%s</a></td></tr>`+"\n",
		class, styleAttr, m.Kind, memberHref(m, from), html.EscapeString(label))
}

// memberHref links to a declaration's line, relative to the listing of
// from. Both files share a directory and so a listing folder.
func memberHref(m goMember, from string) string {
	anchor := fmt.Sprintf("#l%05d", m.Line)
	if m.File == from {
		return anchor
	}
	return path.Base(m.File) + ".html" + anchor
}
