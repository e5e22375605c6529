package typescript

import (
	"strconv"
	"unicode"
)

// reservedWords are the TypeScript keywords that cannot be used as bare
// identifiers in declarations.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true,
	"for": true, "function": true, "if": true, "implements": true,
	"import": true, "in": true, "instanceof": true, "interface": true,
	"let": true, "new": true, "null": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"static": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "type": true,
	"typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// isValidIdent reports whether name can appear unquoted in TypeScript
// source (property positions aside from reserved words, which are legal as
// properties but quoted here for clarity).
func isValidIdent(name string) bool {
	if name == "" || reservedWords[name] {
		return false
	}
	for i, r := range name {
		if unicode.IsLetter(r) || r == '_' || r == '$' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// propertyKey renders an object property name, quoting it when it is not a
// valid bare identifier.
func propertyKey(name string) string {
	if isValidIdent(name) {
		return name
	}
	return strconv.Quote(name)
}

// sanitizeIdent rewrites name into a valid TypeScript identifier: invalid
// runes become underscores, a leading digit gains an underscore prefix, and
// reserved words get an underscore suffix.
func sanitizeIdent(name string) string {
	if name == "" {
		return "_"
	}
	out := make([]rune, 0, len(name)+1)
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_' || r == '$':
			out = append(out, r)
		case unicode.IsDigit(r):
			if i == 0 {
				out = append(out, '_')
			}
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	s := string(out)
	if reservedWords[s] {
		s += "_"
	}
	return s
}
