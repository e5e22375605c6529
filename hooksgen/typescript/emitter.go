package typescript

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/ir"
)

// emitter renders type declaration files from IR descriptors. Hook files
// are rendered separately by templates; the emitter covers everything where
// types are composed structurally.
type emitter struct {
	schema *ir.Schema
	cfg    Config
	ind    string
	nl     string
}

func newEmitter(schema *ir.Schema, cfg Config) *emitter {
	return &emitter{
		schema: schema,
		cfg:    cfg,
		ind:    cfg.indent(),
		nl:     cfg.newline(),
	}
}

func (e *emitter) banner(buf *bytes.Buffer) {
	buf.WriteString(e.cfg.Banner)
	buf.WriteString(e.nl)
	buf.WriteString(e.nl)
}

// typeExpr renders a type expression as TypeScript source.
func (e *emitter) typeExpr(t ir.TypeDescriptor) string {
	switch v := t.(type) {
	case *ir.PrimitiveType:
		return v.Primitive.String()
	case *ir.LiteralType:
		return v.TS()
	case *ir.ArrayType:
		elem := e.typeExpr(v.Elem)
		if _, isUnion := v.Elem.(*ir.UnionType); isUnion {
			return "(" + elem + ")[]"
		}
		return elem + "[]"
	case *ir.UnionType:
		arms := make([]string, len(v.Arms))
		for i, arm := range v.Arms {
			arms[i] = e.typeExpr(arm)
		}
		return strings.Join(arms, " | ")
	case *ir.EnumRefType:
		return enumTypeName(v.Name)
	case *ir.CompositeRefType:
		return compositeTypeName(v.Name)
	case *ir.RowRefType:
		return rowTypeName(v.Table)
	case *ir.RecordType:
		return fmt.Sprintf("Record<%s, %s>", e.typeExpr(v.Key), e.typeExpr(v.Value))
	case *ir.ObjectType:
		if len(v.Fields) == 0 {
			return "Record<PropertyKey, never>"
		}
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = e.fieldSig(f)
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	}
	return "unknown"
}

// fieldSig renders a single property signature without a trailing
// separator.
func (e *emitter) fieldSig(col ir.ColumnDescriptor) string {
	var b strings.Builder
	b.WriteString(propertyKey(col.Name))
	if col.Optional {
		b.WriteString("?")
	}
	b.WriteString(": ")
	b.WriteString(e.typeExpr(col.Type))
	if col.Nullable {
		b.WriteString(" | null")
	}
	return b.String()
}

// writeShape emits `export type Name = { … };` with one property per line.
func (e *emitter) writeShape(buf *bytes.Buffer, name string, cols []ir.ColumnDescriptor) {
	fmt.Fprintf(buf, "export type %s = {%s", name, e.nl)
	for _, col := range cols {
		buf.WriteString(e.ind)
		buf.WriteString(e.fieldSig(col))
		buf.WriteString(";")
		buf.WriteString(e.nl)
	}
	buf.WriteString("};")
	buf.WriteString(e.nl)
}

// imports tracks the shared type names a file references.
type imports struct {
	json       bool
	enums      map[string]bool
	composites map[string]bool
	rows       map[string]bool
}

func collectImports(groups ...[]ir.ColumnDescriptor) imports {
	imp := imports{
		enums:      make(map[string]bool),
		composites: make(map[string]bool),
		rows:       make(map[string]bool),
	}
	for _, cols := range groups {
		for _, col := range cols {
			imp.addType(col.Type)
		}
	}
	return imp
}

func (imp *imports) addType(t ir.TypeDescriptor) {
	ir.Walk(t, func(t ir.TypeDescriptor) {
		switch v := t.(type) {
		case *ir.PrimitiveType:
			if v.Primitive == ir.JSON {
				imp.json = true
			}
		case *ir.EnumRefType:
			imp.enums[v.Name] = true
		case *ir.CompositeRefType:
			imp.composites[v.Name] = true
		case *ir.RowRefType:
			imp.rows[v.Table] = true
		}
	})
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// writeImports emits import lines for the collected shared types. prefix is
// the path back to the output root ("./" at the root, "../" one level down).
// local suppresses the shared-types import for the file that defines them.
func (e *emitter) writeImports(buf *bytes.Buffer, imp imports, prefix string, local bool) {
	wrote := false

	var shared []string
	if imp.json {
		shared = append(shared, "Json")
	}
	for _, name := range sortedKeys(imp.composites) {
		shared = append(shared, compositeTypeName(name))
	}
	if len(shared) > 0 && !local {
		fmt.Fprintf(buf, "import type { %s } from %q;%s", strings.Join(shared, ", "), prefix+"types", e.nl)
		wrote = true
	}

	if len(imp.enums) > 0 {
		names := make([]string, 0, len(imp.enums))
		for _, name := range sortedKeys(imp.enums) {
			names = append(names, enumTypeName(name))
		}
		fmt.Fprintf(buf, "import type { %s } from %q;%s", strings.Join(names, ", "), prefix+"enums/types", e.nl)
		wrote = true
	}

	for _, table := range sortedKeys(imp.rows) {
		fmt.Fprintf(buf, "import type { %s } from %q;%s", rowTypeName(table), prefix+moduleDir(table)+"/types", e.nl)
		wrote = true
	}

	if wrote {
		buf.WriteString(e.nl)
	}
}

// sharedTypesFile renders the root types.ts holding the Json alias and all
// composite types.
func (e *emitter) sharedTypesFile() []byte {
	var buf bytes.Buffer
	e.banner(&buf)

	groups := make([][]ir.ColumnDescriptor, 0, len(e.schema.Composites))
	for _, c := range e.schema.Composites {
		groups = append(groups, c.Fields)
	}
	imp := collectImports(groups...)
	e.writeImports(&buf, imp, "./", true)

	buf.WriteString("export type Json =")
	buf.WriteString(e.nl)
	for i, arm := range []string{"string", "number", "boolean", "null", "{ [key: string]: Json | undefined }", "Json[]"} {
		buf.WriteString(e.ind)
		buf.WriteString("| ")
		buf.WriteString(arm)
		if i == 5 {
			buf.WriteString(";")
		}
		buf.WriteString(e.nl)
	}

	for _, c := range e.schema.Composites {
		buf.WriteString(e.nl)
		e.writeShape(&buf, compositeTypeName(c.Name), c.Fields)
	}
	return buf.Bytes()
}

// enumsFile renders enums/types.ts: a union type and a values const per enum.
func (e *emitter) enumsFile() []byte {
	var buf bytes.Buffer
	e.banner(&buf)
	for i, enum := range e.schema.Enums {
		if i > 0 {
			buf.WriteString(e.nl)
		}
		arms := make([]string, len(enum.Values))
		quoted := make([]string, len(enum.Values))
		for j, v := range enum.Values {
			arms[j] = strconv.Quote(v)
			quoted[j] = strconv.Quote(v)
		}
		fmt.Fprintf(&buf, "export type %s = %s;%s", enumTypeName(enum.Name), strings.Join(arms, " | "), e.nl)
		fmt.Fprintf(&buf, "export const %sValues = [%s] as const;%s", enumTypeName(enum.Name), strings.Join(quoted, ", "), e.nl)
	}
	return buf.Bytes()
}

// tableTypesFile renders <table>/types.ts with the Row, Insert and Update
// shapes and imports for any shared types they reference.
func (e *emitter) tableTypesFile(t *ir.TableDescriptor) []byte {
	var buf bytes.Buffer
	e.banner(&buf)

	imp := collectImports(t.Row, t.Insert, t.Update)
	e.writeImports(&buf, imp, "../", false)

	e.writeShape(&buf, rowTypeName(t.Name), t.Row)
	buf.WriteString(e.nl)
	e.writeShape(&buf, insertTypeName(t.Name), t.Insert)
	buf.WriteString(e.nl)
	e.writeShape(&buf, updateTypeName(t.Name), t.Update)
	return buf.Bytes()
}

// viewTypesFile renders <view>/types.ts with just the Row shape.
func (e *emitter) viewTypesFile(v *ir.ViewDescriptor) []byte {
	var buf bytes.Buffer
	e.banner(&buf)

	imp := collectImports(v.Row)
	e.writeImports(&buf, imp, "../", false)

	e.writeShape(&buf, rowTypeName(v.Name), v.Row)
	return buf.Bytes()
}

// relationshipsFile renders <table>/relationships.ts.
func (e *emitter) relationshipsFile(t *ir.TableDescriptor) []byte {
	var buf bytes.Buffer
	e.banner(&buf)

	if len(t.Relationships) == 0 {
		fmt.Fprintf(&buf, "export const %s = [] as const;%s", relationshipsConstName(t.Name), e.nl)
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "export const %s = [%s", relationshipsConstName(t.Name), e.nl)
	for _, rel := range t.Relationships {
		buf.WriteString(e.ind + "{" + e.nl)
		fmt.Fprintf(&buf, "%sforeignKeyName: %q,%s", e.ind+e.ind, rel.ForeignKeyName, e.nl)
		fmt.Fprintf(&buf, "%scolumns: [%s],%s", e.ind+e.ind, quoteJoin(rel.Columns), e.nl)
		fmt.Fprintf(&buf, "%sisOneToOne: %t,%s", e.ind+e.ind, rel.IsOneToOne, e.nl)
		fmt.Fprintf(&buf, "%sreferencedRelation: %q,%s", e.ind+e.ind, rel.ReferencedRelation, e.nl)
		fmt.Fprintf(&buf, "%sreferencedColumns: [%s],%s", e.ind+e.ind, quoteJoin(rel.ReferencedColumns), e.nl)
		buf.WriteString(e.ind + "}," + e.nl)
	}
	buf.WriteString("] as const;")
	buf.WriteString(e.nl)
	return buf.Bytes()
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}

// functionTypesFile renders functions/types.ts with an Args and Returns
// type per RPC function.
func (e *emitter) functionTypesFile() []byte {
	var buf bytes.Buffer
	e.banner(&buf)

	groups := make([][]ir.ColumnDescriptor, 0, len(e.schema.Functions)*2)
	for i := range e.schema.Functions {
		fn := &e.schema.Functions[i]
		groups = append(groups, fn.Args)
		if fn.Returns != nil {
			groups = append(groups, []ir.ColumnDescriptor{{Name: "returns", Type: fn.Returns}})
		}
	}
	imp := collectImports(groups...)
	e.writeImports(&buf, imp, "../", false)

	for i := range e.schema.Functions {
		fn := &e.schema.Functions[i]
		if i > 0 {
			buf.WriteString(e.nl)
		}
		if fn.HasArgs() {
			e.writeShape(&buf, functionArgsTypeName(fn.Name), fn.Args)
		} else {
			fmt.Fprintf(&buf, "export type %s = Record<PropertyKey, never>;%s", functionArgsTypeName(fn.Name), e.nl)
		}

		ret := e.typeExpr(fn.Returns)
		if fn.SetOf {
			if _, isUnion := fn.Returns.(*ir.UnionType); isUnion {
				ret = "(" + ret + ")"
			}
			ret += "[]"
		}
		fmt.Fprintf(&buf, "export type %s = %s;%s", functionReturnsTypeName(fn.Name), ret, e.nl)
	}
	return buf.Bytes()
}
