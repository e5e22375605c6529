package typescript

import "strings"

// Config controls formatting and content of the emitted TypeScript tree.
type Config struct {
	// IndentStyle is "space" or "tab".
	IndentStyle string

	// IndentSize is the number of spaces per level when IndentStyle is
	// "space".
	IndentSize int

	// LineEnding is "lf" or "crlf".
	LineEnding string

	// ClientImport is the module specifier hook files import the shared
	// Supabase client from. When the client module is emitted this is
	// "../client"; otherwise it points at the caller's own client module.
	ClientImport string

	// DatabaseTypesImport is the module specifier the emitted client
	// imports the Database type from.
	DatabaseTypesImport string

	// EmitClient controls whether client.ts is generated.
	EmitClient bool

	// EmitStorage controls whether the storage module is generated.
	EmitStorage bool

	// Banner is the comment line placed at the top of every generated
	// file.
	Banner string
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.IndentStyle == "" {
		c.IndentStyle = "space"
	}
	if c.IndentSize == 0 {
		c.IndentSize = 2
	}
	if c.LineEnding == "" {
		c.LineEnding = "lf"
	}
	if c.ClientImport == "" {
		c.ClientImport = "../client"
	}
	if c.DatabaseTypesImport == "" {
		c.DatabaseTypesImport = "../database.types"
	}
	if c.Banner == "" {
		c.Banner = "// Code generated by supahooks. DO NOT EDIT."
	}
	return c
}

// indent returns one level of indentation.
func (c Config) indent() string {
	if c.IndentStyle == "tab" {
		return "\t"
	}
	return strings.Repeat(" ", c.IndentSize)
}

// newline returns the configured line terminator.
func (c Config) newline() string {
	if c.LineEnding == "crlf" {
		return "\r\n"
	}
	return "\n"
}
