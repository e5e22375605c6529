package parser

// File is a parsed declaration file.
type File struct {
	// Name is the source file name, used in error messages.
	Name string

	// Decls are the type declarations in source order.
	Decls []*TypeDecl

	// Skipped lists the names of top-level declarations the parser could
	// not represent (generic helpers, const declarations, conditional
	// types). Skipping is not an error: the schema builder only needs the
	// Database and Json declarations.
	Skipped []string
}

// Find returns the declaration with the given name, or nil.
func (f *File) Find(name string) *TypeDecl {
	for _, d := range f.Decls {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// TypeDecl is a top-level `export type Name = …` declaration.
type TypeDecl struct {
	Name     string
	Exported bool
	Type     Node
	Pos      Pos
}

// Node is a type expression in the declaration AST.
type Node interface {
	node()
}

// Object is an object type literal `{ a: T; "b"?: U }`.
type Object struct {
	Members []Member

	// Index holds an index signature (`[key: string]: T`) if present.
	Index *IndexSignature
}

// Member is a single property of an object type.
type Member struct {
	Name     string
	Quoted   bool // the property name was written as a string literal
	Optional bool // the property carried a "?" marker
	Type     Node
	Pos      Pos
}

// Find returns the member with the given name, or nil.
func (o *Object) Find(name string) *Member {
	for i := range o.Members {
		if o.Members[i].Name == name {
			return &o.Members[i]
		}
	}
	return nil
}

// IndexSignature is `[key: string]: T`.
type IndexSignature struct {
	Value Node
}

// Union is `A | B | …`.
type Union struct {
	Arms []Node
}

// Ref is a reference to a named type, with optional type arguments.
type Ref struct {
	Name     string
	TypeArgs []Node
	Pos      Pos
}

// IndexedAccess is `Base["k1"]["k2"]…`, as produced for enum references
// (`Database["public"]["Enums"]["mood"]`).
type IndexedAccess struct {
	Base *Ref
	Keys []string
}

// StringLit is a string literal type.
type StringLit struct {
	Value string
}

// NumberLit is a numeric literal type.
type NumberLit struct {
	Raw   string
	Value float64
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
}

// NullLit is `null`.
type NullLit struct{}

// UndefinedLit is `undefined`.
type UndefinedLit struct{}

// ArrayOf is the postfix array form `T[]`.
type ArrayOf struct {
	Elem Node
}

// Tuple is a tuple type `[A, B, …]`, possibly empty.
type Tuple struct {
	Elems []Node
}

func (*Object) node()        {}
func (*Union) node()         {}
func (*Ref) node()           {}
func (*IndexedAccess) node() {}
func (*StringLit) node()     {}
func (*NumberLit) node()     {}
func (*BoolLit) node()       {}
func (*NullLit) node()       {}
func (*UndefinedLit) node()  {}
func (*ArrayOf) node()       {}
func (*Tuple) node()         {}
