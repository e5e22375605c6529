package hooksgen

import (
	"fmt"

	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/ir"
	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/parser"
)

// BuildSchema lowers a parsed declaration file into the schema IR. It
// descends from the root Database type into the named database schema and
// extracts tables, views, enums, functions and composite types.
//
// Missing or malformed entries degrade to warnings wherever possible; the
// only fatal conditions are a missing Database type or a missing schema
// property.
func BuildSchema(file *parser.File, schemaName string) (*ir.Schema, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	decl := file.Find("Database")
	if decl == nil {
		return nil, fmt.Errorf("type Database not found in %s", file.Name)
	}
	root, ok := decl.Type.(*parser.Object)
	if !ok {
		return nil, fmt.Errorf("type Database is not an object type")
	}
	schemaMember := root.Find(schemaName)
	if schemaMember == nil {
		return nil, fmt.Errorf("schema %q not found in Database type", schemaName)
	}
	schemaObj, ok := schemaMember.Type.(*parser.Object)
	if !ok {
		return nil, fmt.Errorf("schema %q is not an object type", schemaName)
	}

	b := &schemaBuilder{
		schema: &ir.Schema{
			Source:     file.Name,
			SchemaName: schemaName,
		},
		schemaName: schemaName,
	}
	for _, name := range file.Skipped {
		b.schema.AddWarning("skipped_declaration", fmt.Sprintf("declaration %q was not understood and was skipped", name))
	}

	b.buildEnums(objectMember(schemaObj, "Enums"))
	b.buildComposites(objectMember(schemaObj, "CompositeTypes"))
	b.buildTables(objectMember(schemaObj, "Tables"))
	b.buildViews(objectMember(schemaObj, "Views"))
	b.buildFunctions(objectMember(schemaObj, "Functions"))

	return b.schema, nil
}

type schemaBuilder struct {
	schema     *ir.Schema
	schemaName string
}

func (b *schemaBuilder) warnf(code, format string, args ...any) {
	b.schema.AddWarning(code, fmt.Sprintf(format, args...))
}

// objectMember returns the named member of obj as an object type, or nil if
// obj is nil, the member is absent, or it has a different shape.
func objectMember(obj *parser.Object, name string) *parser.Object {
	if obj == nil {
		return nil
	}
	m := obj.Find(name)
	if m == nil {
		return nil
	}
	inner, ok := m.Type.(*parser.Object)
	if !ok {
		return nil
	}
	return inner
}

func (b *schemaBuilder) buildEnums(enums *parser.Object) {
	if enums == nil {
		return
	}
	for _, m := range enums.Members {
		values, ok := stringUnion(m.Type)
		if !ok {
			b.warnf("invalid_enum", "enum %q is not a union of string literals", m.Name)
			continue
		}
		b.schema.Enums = append(b.schema.Enums, ir.EnumDescriptor{Name: m.Name, Values: values})
	}
}

// stringUnion extracts the values of a union of string literals. A single
// string literal counts as a one-value union.
func stringUnion(n parser.Node) ([]string, bool) {
	switch v := n.(type) {
	case *parser.StringLit:
		return []string{v.Value}, true
	case *parser.Union:
		values := make([]string, 0, len(v.Arms))
		for _, arm := range v.Arms {
			lit, ok := arm.(*parser.StringLit)
			if !ok {
				return nil, false
			}
			values = append(values, lit.Value)
		}
		return values, true
	}
	return nil, false
}

func (b *schemaBuilder) buildComposites(composites *parser.Object) {
	if composites == nil {
		return
	}
	for _, m := range composites.Members {
		obj, ok := m.Type.(*parser.Object)
		if !ok {
			b.warnf("invalid_composite", "composite type %q is not an object type", m.Name)
			continue
		}
		b.schema.Composites = append(b.schema.Composites, ir.CompositeDescriptor{
			Name:   m.Name,
			Fields: b.columns(obj, m.Name),
		})
	}
}

func (b *schemaBuilder) buildTables(tables *parser.Object) {
	if tables == nil {
		return
	}
	for _, m := range tables.Members {
		obj, ok := m.Type.(*parser.Object)
		if !ok {
			b.warnf("invalid_table", "table %q is not an object type", m.Name)
			continue
		}
		table := ir.TableDescriptor{Name: m.Name}

		rowObj := objectMember(obj, "Row")
		if rowObj == nil {
			b.warnf("missing_row", "table %q has no Row shape", m.Name)
			rowObj = &parser.Object{}
		}
		table.Row = b.columns(rowObj, m.Name)

		if insertObj := objectMember(obj, "Insert"); insertObj != nil {
			table.Insert = b.columns(insertObj, m.Name)
		} else {
			b.warnf("missing_insert", "table %q has no Insert shape, derived from Row", m.Name)
			table.Insert = allOptional(table.Row)
		}
		if updateObj := objectMember(obj, "Update"); updateObj != nil {
			table.Update = b.columns(updateObj, m.Name)
		} else {
			b.warnf("missing_update", "table %q has no Update shape, derived from Row", m.Name)
			table.Update = allOptional(table.Row)
		}

		if rel := obj.Find("Relationships"); rel != nil {
			table.Relationships = b.relationships(rel.Type, m.Name)
		}

		b.schema.Tables = append(b.schema.Tables, table)
	}
}

// allOptional copies columns with every entry marked optional, used when an
// older declaration file lacks Insert/Update shapes.
func allOptional(cols []ir.ColumnDescriptor) []ir.ColumnDescriptor {
	out := make([]ir.ColumnDescriptor, len(cols))
	for i, c := range cols {
		c.Optional = true
		out[i] = c
	}
	return out
}

func (b *schemaBuilder) buildViews(views *parser.Object) {
	if views == nil {
		return
	}
	for _, m := range views.Members {
		obj, ok := m.Type.(*parser.Object)
		if !ok {
			b.warnf("invalid_view", "view %q is not an object type", m.Name)
			continue
		}
		rowObj := objectMember(obj, "Row")
		if rowObj == nil {
			b.warnf("missing_row", "view %q has no Row shape", m.Name)
			continue
		}
		b.schema.Views = append(b.schema.Views, ir.ViewDescriptor{
			Name: m.Name,
			Row:  b.columns(rowObj, m.Name),
		})
	}
}

func (b *schemaBuilder) buildFunctions(functions *parser.Object) {
	if functions == nil {
		return
	}
	for _, m := range functions.Members {
		obj, ok := m.Type.(*parser.Object)
		if !ok {
			// Overloaded functions appear as a union of Args/Returns
			// objects. Take the first variant.
			if union, isUnion := m.Type.(*parser.Union); isUnion {
				for _, arm := range union.Arms {
					if armObj, armOk := arm.(*parser.Object); armOk {
						obj = armObj
						break
					}
				}
			}
			if obj == nil {
				b.warnf("invalid_function", "function %q has no usable Args/Returns shape", m.Name)
				continue
			}
			b.warnf("overloaded_function", "function %q is overloaded, using the first variant", m.Name)
		}

		fn := ir.FunctionDescriptor{Name: m.Name}
		if argsObj := objectMember(obj, "Args"); argsObj != nil {
			fn.Args = b.columns(argsObj, m.Name)
		}
		if ret := obj.Find("Returns"); ret != nil {
			fn.Returns = b.convertType(ret.Type, m.Name)
		} else {
			fn.Returns = ir.NullType()
		}
		if arr, isArr := fn.Returns.(*ir.ArrayType); isArr {
			fn.SetOf = true
			fn.Returns = arr.Elem
		}
		if obj.Find("SetofOptions") != nil {
			fn.SetOf = true
		}

		b.schema.Functions = append(b.schema.Functions, fn)
	}
}

// relationships decodes the Relationships tuple attached to a table.
func (b *schemaBuilder) relationships(n parser.Node, table string) []ir.Relationship {
	tuple, ok := n.(*parser.Tuple)
	if !ok {
		b.warnf("invalid_relationships", "table %q Relationships is not a tuple", table)
		return nil
	}
	var rels []ir.Relationship
	for _, elem := range tuple.Elems {
		obj, ok := elem.(*parser.Object)
		if !ok {
			b.warnf("invalid_relationships", "table %q has a non-object relationship entry", table)
			continue
		}
		rel := ir.Relationship{
			ForeignKeyName:     memberString(obj, "foreignKeyName"),
			Columns:            memberStrings(obj, "columns"),
			IsOneToOne:         memberBool(obj, "isOneToOne"),
			ReferencedRelation: memberString(obj, "referencedRelation"),
			ReferencedColumns:  memberStrings(obj, "referencedColumns"),
		}
		rels = append(rels, rel)
	}
	return rels
}

func memberString(obj *parser.Object, name string) string {
	if m := obj.Find(name); m != nil {
		if lit, ok := m.Type.(*parser.StringLit); ok {
			return lit.Value
		}
	}
	return ""
}

func memberStrings(obj *parser.Object, name string) []string {
	m := obj.Find(name)
	if m == nil {
		return nil
	}
	tuple, ok := m.Type.(*parser.Tuple)
	if !ok {
		return nil
	}
	var out []string
	for _, elem := range tuple.Elems {
		if lit, ok := elem.(*parser.StringLit); ok {
			out = append(out, lit.Value)
		}
	}
	return out
}

func memberBool(obj *parser.Object, name string) bool {
	if m := obj.Find(name); m != nil {
		if lit, ok := m.Type.(*parser.BoolLit); ok {
			return lit.Value
		}
	}
	return false
}

// columns converts an object type's members into column descriptors,
// separating a top-level null arm into the Nullable flag.
func (b *schemaBuilder) columns(obj *parser.Object, owner string) []ir.ColumnDescriptor {
	cols := make([]ir.ColumnDescriptor, 0, len(obj.Members))
	for _, m := range obj.Members {
		t := b.convertType(m.Type, owner+"."+m.Name)
		t, nullable := ir.StripNull(t)
		cols = append(cols, ir.ColumnDescriptor{
			Name:     m.Name,
			Type:     t,
			Optional: m.Optional,
			Nullable: nullable,
		})
	}
	return cols
}

// convertType lowers a declaration AST type expression into the IR. It
// never fails: constructs it cannot represent degrade to unknown with a
// warning naming the owning property.
func (b *schemaBuilder) convertType(n parser.Node, owner string) ir.TypeDescriptor {
	switch v := n.(type) {
	case *parser.StringLit:
		return ir.Literal(v.Value)
	case *parser.NumberLit:
		if v.Value == float64(int64(v.Value)) {
			return ir.Literal(int64(v.Value))
		}
		return ir.Literal(v.Value)
	case *parser.BoolLit:
		return ir.Literal(v.Value)
	case *parser.NullLit:
		return ir.NullType()
	case *parser.UndefinedLit:
		// undefined only shows up in value positions the generator treats
		// like null (e.g. void function returns).
		return ir.NullType()
	case *parser.ArrayOf:
		return ir.Array(b.convertType(v.Elem, owner))
	case *parser.Union:
		arms := make([]ir.TypeDescriptor, 0, len(v.Arms))
		for _, arm := range v.Arms {
			arms = append(arms, b.convertType(arm, owner))
		}
		return ir.Union(arms...)
	case *parser.Object:
		if len(v.Members) == 0 && v.Index != nil {
			// Index-signature-only objects (the Json object arm) map to
			// Record<string, V>.
			return ir.RecordOf(ir.StringType(), b.convertType(v.Index.Value, owner))
		}
		return ir.Object(b.columns(v, owner)...)
	case *parser.Ref:
		return b.convertRef(v, owner)
	case *parser.IndexedAccess:
		return b.convertIndexedAccess(v, owner)
	case *parser.Tuple:
		b.warnf("unsupported_type", "%s: tuple types are not supported here, using unknown", owner)
		return ir.UnknownType()
	}
	b.warnf("unsupported_type", "%s: unsupported type expression, using unknown", owner)
	return ir.UnknownType()
}

func (b *schemaBuilder) convertRef(ref *parser.Ref, owner string) ir.TypeDescriptor {
	switch ref.Name {
	case "string":
		return ir.StringType()
	case "number":
		return ir.NumberType()
	case "boolean":
		return ir.BooleanType()
	case "unknown", "any":
		return ir.UnknownType()
	case "never":
		return ir.NeverType()
	case "Json":
		return ir.JSONType()
	case "Record":
		if len(ref.TypeArgs) == 2 {
			return ir.RecordOf(
				b.convertType(ref.TypeArgs[0], owner),
				b.convertType(ref.TypeArgs[1], owner),
			)
		}
	}
	b.warnf("unresolved_reference", "%s: unresolved type reference %q, using unknown", owner, ref.Name)
	return ir.UnknownType()
}

// convertIndexedAccess resolves Database["<schema>"]["Enums"]["x"]-style
// references into enum, composite or table-row references.
func (b *schemaBuilder) convertIndexedAccess(ia *parser.IndexedAccess, owner string) ir.TypeDescriptor {
	if (ia.Base.Name == "Database" || ia.Base.Name == "DatabaseWithoutInternals") &&
		len(ia.Keys) >= 3 && ia.Keys[0] == b.schemaName {
		kind, name := ia.Keys[1], ia.Keys[2]
		switch kind {
		case "Enums":
			return ir.EnumRef(name)
		case "CompositeTypes":
			return ir.CompositeRef(name)
		case "Tables", "Views":
			if len(ia.Keys) == 3 || (len(ia.Keys) == 4 && ia.Keys[3] == "Row") {
				return ir.RowRef(name)
			}
		}
	}
	b.warnf("unresolved_reference", "%s: unresolved indexed access on %q, using unknown", owner, ia.Base.Name)
	return ir.UnknownType()
}
