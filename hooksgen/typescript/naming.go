package typescript

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// Raw database names (tables, enums, functions) flow into three places with
// different rules: type and hook names must be valid PascalCase/camelCase
// identifiers, directory names must be filesystem-safe, and string positions
// (.from("…"), query keys) always keep the raw name.

// pascal converts a raw database name into a PascalCase identifier.
func pascal(name string) string {
	return sanitizeIdent(inflect.Camelize(normalize(name)))
}

// camel converts a raw database name into a camelCase identifier.
func camel(name string) string {
	return sanitizeIdent(inflect.CamelizeDownFirst(normalize(name)))
}

// pascalSingular is the singular PascalCase form, used for row-level hook
// names (useInsertMovie).
func pascalSingular(name string) string {
	return sanitizeIdent(inflect.Camelize(inflect.Singularize(normalize(name))))
}

// pascalPlural is the plural PascalCase form, used for collection hook
// names (useGetMovies).
func pascalPlural(name string) string {
	return sanitizeIdent(inflect.Camelize(inflect.Pluralize(normalize(name))))
}

// normalize folds separators other than underscore into underscores so
// inflect sees conventional snake_case.
func normalize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// rowTypeName returns the Row type name for a table ("movies" -> "MoviesRow").
func rowTypeName(table string) string { return pascal(table) + "Row" }

// insertTypeName returns the Insert type name for a table.
func insertTypeName(table string) string { return pascal(table) + "Insert" }

// updateTypeName returns the Update type name for a table.
func updateTypeName(table string) string { return pascal(table) + "Update" }

// enumTypeName returns the emitted type name for an enum ("mood" -> "Mood").
func enumTypeName(name string) string { return pascal(name) }

// compositeTypeName returns the emitted type name for a composite type.
func compositeTypeName(name string) string { return pascal(name) }

// functionArgsTypeName returns the Args type name for an RPC function.
func functionArgsTypeName(fn string) string { return pascal(fn) + "Args" }

// functionReturnsTypeName returns the Returns type name for an RPC function.
func functionReturnsTypeName(fn string) string { return pascal(fn) + "Returns" }

// relationshipsConstName returns the exported const holding a table's
// relationship metadata.
func relationshipsConstName(table string) string { return camel(table) + "Relationships" }

// dirName returns the output directory for a table or view. Raw names are
// kept when filesystem-safe; anything else is folded to underscores.
func dirName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
