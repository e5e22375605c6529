// Package ir defines the intermediate representation of a Supabase database
// schema. The parser produces a declaration-file AST, the schema builder
// lowers it into these descriptors, and the TypeScript generator consumes
// them without ever touching the original source.
package ir

// Schema is the complete description of one database schema extracted from a
// declaration file.
type Schema struct {
	// Source is the path of the declaration file the schema was built from.
	Source string

	// SchemaName is the database schema the builder descended into,
	// usually "public".
	SchemaName string

	// Tables, Views, Enums, Functions and Composites preserve declaration
	// order from the source file. Generators rely on this for
	// deterministic output.
	Tables     []TableDescriptor
	Views      []ViewDescriptor
	Enums      []EnumDescriptor
	Functions  []FunctionDescriptor
	Composites []CompositeDescriptor

	// Warnings contains non-fatal issues encountered while building.
	Warnings []Warning
}

// AddWarning appends a warning to the schema.
func (s *Schema) AddWarning(code, message string) {
	s.Warnings = append(s.Warnings, Warning{Code: code, Message: message})
}

// FindTable looks up a table by its raw database name. Returns nil if not found.
func (s *Schema) FindTable(name string) *TableDescriptor {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// FindView looks up a view by its raw database name. Returns nil if not found.
func (s *Schema) FindView(name string) *ViewDescriptor {
	for i := range s.Views {
		if s.Views[i].Name == name {
			return &s.Views[i]
		}
	}
	return nil
}

// FindEnum looks up an enum by its raw database name. Returns nil if not found.
func (s *Schema) FindEnum(name string) *EnumDescriptor {
	for i := range s.Enums {
		if s.Enums[i].Name == name {
			return &s.Enums[i]
		}
	}
	return nil
}

// FindComposite looks up a composite type by name. Returns nil if not found.
func (s *Schema) FindComposite(name string) *CompositeDescriptor {
	for i := range s.Composites {
		if s.Composites[i].Name == name {
			return &s.Composites[i]
		}
	}
	return nil
}

// TableDescriptor describes one table: the three generated shapes plus
// foreign-key relationship metadata.
type TableDescriptor struct {
	// Name is the raw table name as it appears in the database.
	Name string

	Row    []ColumnDescriptor
	Insert []ColumnDescriptor
	Update []ColumnDescriptor

	Relationships []Relationship
}

// PrimaryColumn returns the column hooks should address single rows by.
// It prefers a column literally named "id" and falls back to the first Row
// column. The second return is false for a table with no columns.
func (t *TableDescriptor) PrimaryColumn() (ColumnDescriptor, bool) {
	for _, c := range t.Row {
		if c.Name == "id" {
			return c, true
		}
	}
	if len(t.Row) > 0 {
		return t.Row[0], true
	}
	return ColumnDescriptor{}, false
}

// ViewDescriptor describes a database view. Views only carry a Row shape and
// never receive mutation hooks.
type ViewDescriptor struct {
	Name string
	Row  []ColumnDescriptor
}

// ColumnDescriptor describes a single property of a table shape, a composite
// type, or a function argument list.
type ColumnDescriptor struct {
	// Name is the raw property name. It may not be a valid TypeScript
	// identifier; emitters quote it when necessary.
	Name string

	// Type is the column's type with any top-level null arm removed.
	Type TypeDescriptor

	// Optional mirrors the "?" marker on the source property.
	Optional bool

	// Nullable records that the source type was a union containing null.
	Nullable bool
}

// Relationship is the foreign-key metadata attached to a table.
type Relationship struct {
	ForeignKeyName     string
	Columns            []string
	IsOneToOne         bool
	ReferencedRelation string
	ReferencedColumns  []string
}

// EnumDescriptor describes a database enum as an ordered list of string values.
type EnumDescriptor struct {
	Name   string
	Values []string
}

// FunctionDescriptor describes an RPC function exposed by the schema as an
// Args/Returns pair.
type FunctionDescriptor struct {
	Name    string
	Args    []ColumnDescriptor
	Returns TypeDescriptor

	// SetOf is true when the function returns a set of rows; the emitted
	// return type becomes an array.
	SetOf bool
}

// HasArgs reports whether the function takes any arguments.
func (f *FunctionDescriptor) HasArgs() bool { return len(f.Args) > 0 }

// CompositeDescriptor describes a user-defined composite type.
type CompositeDescriptor struct {
	Name   string
	Fields []ColumnDescriptor
}

// Warning represents a non-fatal issue encountered during schema building or
// generation.
type Warning struct {
	// Code is a machine-readable identifier, e.g. "unresolved_reference".
	Code string

	// Message is a human-readable description.
	Message string
}
