package ir

import "strconv"

// TypeKind identifies the category of a type expression.
type TypeKind int

const (
	KindPrimitive TypeKind = iota // string, number, boolean, json, unknown, never, null
	KindLiteral                   // literal type ("happy", 42, true)
	KindArray                     // T[]
	KindUnion                     // T1 | T2 | ...
	KindEnumRef                   // reference to a schema enum
	KindCompositeRef              // reference to a composite type
	KindRowRef                    // reference to a table's Row shape
	KindRecord                    // Record<K, V>
	KindObject                    // inline object type { a: T; b: U }
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindLiteral:
		return "Literal"
	case KindArray:
		return "Array"
	case KindUnion:
		return "Union"
	case KindEnumRef:
		return "EnumRef"
	case KindCompositeRef:
		return "CompositeRef"
	case KindRowRef:
		return "RowRef"
	case KindRecord:
		return "Record"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the sealed interface implemented by all type expressions.
type TypeDescriptor interface {
	Kind() TypeKind

	// Ensure only types in this package implement TypeDescriptor.
	sealed()
}

// PrimitiveKind enumerates the scalar types the generator distinguishes.
type PrimitiveKind int

const (
	String PrimitiveKind = iota
	Number
	Boolean
	JSON
	Unknown
	Never
	Null
)

// String returns the TypeScript spelling of the primitive.
func (p PrimitiveKind) String() string {
	switch p {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case JSON:
		return "Json"
	case Never:
		return "never"
	case Null:
		return "null"
	default:
		return "unknown"
	}
}

// PrimitiveType is a built-in scalar type.
type PrimitiveType struct {
	Primitive PrimitiveKind
}

func (*PrimitiveType) Kind() TypeKind { return KindPrimitive }
func (*PrimitiveType) sealed()        {}

// LiteralType is a literal type such as "happy", 42 or true.
// Value holds a string, int64, float64 or bool.
type LiteralType struct {
	Value any
}

func (*LiteralType) Kind() TypeKind { return KindLiteral }
func (*LiteralType) sealed()        {}

// TS returns the TypeScript source form of the literal.
func (l *LiteralType) TS() string {
	switch v := l.Value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return "unknown"
	}
}

// ArrayType is an ordered collection (T[]).
type ArrayType struct {
	Elem TypeDescriptor
}

func (*ArrayType) Kind() TypeKind { return KindArray }
func (*ArrayType) sealed()        {}

// UnionType is a union of two or more type expressions.
type UnionType struct {
	Arms []TypeDescriptor
}

func (*UnionType) Kind() TypeKind { return KindUnion }
func (*UnionType) sealed()        {}

// EnumRefType references a schema enum by its raw database name.
type EnumRefType struct {
	Name string
}

func (*EnumRefType) Kind() TypeKind { return KindEnumRef }
func (*EnumRefType) sealed()        {}

// CompositeRefType references a composite type by its raw database name.
type CompositeRefType struct {
	Name string
}

func (*CompositeRefType) Kind() TypeKind { return KindCompositeRef }
func (*CompositeRefType) sealed()        {}

// RowRefType references a table's Row shape, produced by functions that
// return table rows.
type RowRefType struct {
	Table string
}

func (*RowRefType) Kind() TypeKind { return KindRowRef }
func (*RowRefType) sealed()        {}

// RecordType is a Record<K, V> mapping.
type RecordType struct {
	Key   TypeDescriptor
	Value TypeDescriptor
}

func (*RecordType) Kind() TypeKind { return KindRecord }
func (*RecordType) sealed()        {}

// ObjectType is an inline object type, produced for function return shapes
// like `{ id: number; name: string }[]`.
type ObjectType struct {
	Fields []ColumnDescriptor
}

func (*ObjectType) Kind() TypeKind { return KindObject }
func (*ObjectType) sealed()        {}

// Constructors. These keep builder and test code terse.

func StringType() TypeDescriptor  { return &PrimitiveType{Primitive: String} }
func NumberType() TypeDescriptor  { return &PrimitiveType{Primitive: Number} }
func BooleanType() TypeDescriptor { return &PrimitiveType{Primitive: Boolean} }
func JSONType() TypeDescriptor    { return &PrimitiveType{Primitive: JSON} }
func UnknownType() TypeDescriptor { return &PrimitiveType{Primitive: Unknown} }
func NeverType() TypeDescriptor   { return &PrimitiveType{Primitive: Never} }
func NullType() TypeDescriptor    { return &PrimitiveType{Primitive: Null} }

// Literal creates a literal type. Value must be a string, int64, float64 or bool.
func Literal(value any) TypeDescriptor { return &LiteralType{Value: value} }

// Array creates an array of elem.
func Array(elem TypeDescriptor) TypeDescriptor { return &ArrayType{Elem: elem} }

// Union creates a union. A union of one arm collapses to the arm itself.
func Union(arms ...TypeDescriptor) TypeDescriptor {
	if len(arms) == 1 {
		return arms[0]
	}
	return &UnionType{Arms: arms}
}

// EnumRef creates a reference to a schema enum.
func EnumRef(name string) TypeDescriptor { return &EnumRefType{Name: name} }

// CompositeRef creates a reference to a composite type.
func CompositeRef(name string) TypeDescriptor { return &CompositeRefType{Name: name} }

// RowRef creates a reference to a table's Row shape.
func RowRef(table string) TypeDescriptor { return &RowRefType{Table: table} }

// RecordOf creates a Record<K, V>.
func RecordOf(key, value TypeDescriptor) TypeDescriptor {
	return &RecordType{Key: key, Value: value}
}

// Object creates an inline object type.
func Object(fields ...ColumnDescriptor) TypeDescriptor {
	return &ObjectType{Fields: fields}
}

// IsNull reports whether t is the null primitive.
func IsNull(t TypeDescriptor) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Primitive == Null
}

// StripNull removes top-level null arms from a union. The second return
// reports whether a null arm was present. Non-union types pass through
// unchanged unless they are null itself, which degrades to unknown.
func StripNull(t TypeDescriptor) (TypeDescriptor, bool) {
	u, ok := t.(*UnionType)
	if !ok {
		if IsNull(t) {
			return UnknownType(), true
		}
		return t, false
	}
	arms := make([]TypeDescriptor, 0, len(u.Arms))
	nullable := false
	for _, arm := range u.Arms {
		if IsNull(arm) {
			nullable = true
			continue
		}
		arms = append(arms, arm)
	}
	if !nullable {
		return t, false
	}
	if len(arms) == 0 {
		return UnknownType(), true
	}
	return Union(arms...), true
}

// Walk calls fn for t and every type expression nested inside it.
func Walk(t TypeDescriptor, fn func(TypeDescriptor)) {
	if t == nil {
		return
	}
	fn(t)
	switch v := t.(type) {
	case *ArrayType:
		Walk(v.Elem, fn)
	case *UnionType:
		for _, arm := range v.Arms {
			Walk(arm, fn)
		}
	case *RecordType:
		Walk(v.Key, fn)
		Walk(v.Value, fn)
	case *ObjectType:
		for _, f := range v.Fields {
			Walk(f.Type, fn)
		}
	}
}
