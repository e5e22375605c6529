package typescript

import (
	"strings"
	"testing"

	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/ir"
)

func testEmitter(schema *ir.Schema) *emitter {
	return newEmitter(schema, Config{}.withDefaults())
}

func TestTypeExpr(t *testing.T) {
	e := testEmitter(&ir.Schema{})

	tests := []struct {
		name string
		in   ir.TypeDescriptor
		want string
	}{
		{"string", ir.StringType(), "string"},
		{"json", ir.JSONType(), "Json"},
		{"string literal", ir.Literal("happy"), `"happy"`},
		{"number literal", ir.Literal(int64(42)), "42"},
		{"array", ir.Array(ir.NumberType()), "number[]"},
		{
			"array of union parenthesizes",
			ir.Array(ir.Union(ir.StringType(), ir.NumberType())),
			"(string | number)[]",
		},
		{"union", ir.Union(ir.StringType(), ir.BooleanType()), "string | boolean"},
		{"enum ref", ir.EnumRef("mood"), "Mood"},
		{"composite ref", ir.CompositeRef("movie_summary"), "MovieSummary"},
		{"row ref", ir.RowRef("movies"), "MoviesRow"},
		{"record", ir.RecordOf(ir.StringType(), ir.JSONType()), "Record<string, Json>"},
		{
			"inline object",
			ir.Object(
				ir.ColumnDescriptor{Name: "id", Type: ir.NumberType()},
				ir.ColumnDescriptor{Name: "name", Type: ir.StringType(), Optional: true},
			),
			"{ id: number; name?: string }",
		},
		{"empty object", ir.Object(), "Record<PropertyKey, never>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.typeExpr(tt.in); got != tt.want {
				t.Errorf("typeExpr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldSig(t *testing.T) {
	e := testEmitter(&ir.Schema{})

	tests := []struct {
		name string
		col  ir.ColumnDescriptor
		want string
	}{
		{
			"required",
			ir.ColumnDescriptor{Name: "id", Type: ir.NumberType()},
			"id: number",
		},
		{
			"optional nullable",
			ir.ColumnDescriptor{Name: "mood", Type: ir.EnumRef("mood"), Optional: true, Nullable: true},
			"mood?: Mood | null",
		},
		{
			"quoted property",
			ir.ColumnDescriptor{Name: "has space", Type: ir.StringType()},
			`"has space": string`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.fieldSig(tt.col); got != tt.want {
				t.Errorf("fieldSig = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSharedTypesFile(t *testing.T) {
	schema := &ir.Schema{
		Composites: []ir.CompositeDescriptor{
			{Name: "movie_summary", Fields: []ir.ColumnDescriptor{
				{Name: "id", Type: ir.NumberType(), Nullable: true},
			}},
		},
	}
	out := string(testEmitter(schema).sharedTypesFile())

	if !strings.HasPrefix(out, "// Code generated by supahooks. DO NOT EDIT.\n") {
		t.Errorf("missing banner:\n%s", out)
	}
	if !strings.Contains(out, "export type Json =") {
		t.Error("missing Json alias")
	}
	if !strings.Contains(out, "| Json[];\n") {
		t.Error("Json union should end with a semicolon")
	}
	if !strings.Contains(out, "export type MovieSummary = {\n  id: number | null;\n};") {
		t.Errorf("missing composite shape:\n%s", out)
	}
}

func TestEnumsFile(t *testing.T) {
	schema := &ir.Schema{
		Enums: []ir.EnumDescriptor{
			{Name: "mood", Values: []string{"happy", "sad"}},
		},
	}
	out := string(testEmitter(schema).enumsFile())

	if !strings.Contains(out, `export type Mood = "happy" | "sad";`) {
		t.Errorf("missing enum type:\n%s", out)
	}
	if !strings.Contains(out, `export const MoodValues = ["happy", "sad"] as const;`) {
		t.Errorf("missing values const:\n%s", out)
	}
}

func TestTableTypesFile(t *testing.T) {
	table := &ir.TableDescriptor{
		Name: "movies",
		Row: []ir.ColumnDescriptor{
			{Name: "id", Type: ir.NumberType()},
			{Name: "mood", Type: ir.EnumRef("mood"), Nullable: true},
			{Name: "metadata", Type: ir.JSONType(), Nullable: true},
		},
		Insert: []ir.ColumnDescriptor{
			{Name: "id", Type: ir.NumberType(), Optional: true},
		},
		Update: []ir.ColumnDescriptor{
			{Name: "id", Type: ir.NumberType(), Optional: true},
		},
	}
	out := string(testEmitter(&ir.Schema{}).tableTypesFile(table))

	if !strings.Contains(out, `import type { Json } from "../types";`) {
		t.Errorf("missing shared import:\n%s", out)
	}
	if !strings.Contains(out, `import type { Mood } from "../enums/types";`) {
		t.Errorf("missing enum import:\n%s", out)
	}
	for _, want := range []string{"export type MoviesRow = {", "export type MoviesInsert = {", "export type MoviesUpdate = {"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "mood: Mood | null;") {
		t.Errorf("missing nullable enum column:\n%s", out)
	}
}

func TestRelationshipsFile(t *testing.T) {
	withRels := &ir.TableDescriptor{
		Name: "movies",
		Relationships: []ir.Relationship{
			{
				ForeignKeyName:     "movies_director_id_fkey",
				Columns:            []string{"director_id"},
				IsOneToOne:         false,
				ReferencedRelation: "directors",
				ReferencedColumns:  []string{"id"},
			},
		},
	}
	out := string(testEmitter(&ir.Schema{}).relationshipsFile(withRels))

	if !strings.Contains(out, "export const moviesRelationships = [") {
		t.Errorf("missing const:\n%s", out)
	}
	if !strings.Contains(out, `foreignKeyName: "movies_director_id_fkey",`) {
		t.Errorf("missing foreignKeyName:\n%s", out)
	}
	if !strings.Contains(out, `columns: ["director_id"],`) {
		t.Errorf("missing columns:\n%s", out)
	}
	if !strings.Contains(out, "] as const;") {
		t.Errorf("missing as const:\n%s", out)
	}

	empty := &ir.TableDescriptor{Name: "directors"}
	out = string(testEmitter(&ir.Schema{}).relationshipsFile(empty))
	if !strings.Contains(out, "export const directorsRelationships = [] as const;") {
		t.Errorf("empty relationships:\n%s", out)
	}
}

func TestFunctionTypesFile(t *testing.T) {
	schema := &ir.Schema{
		Functions: []ir.FunctionDescriptor{
			{Name: "get_movie_count", Returns: ir.NumberType()},
			{
				Name: "search_movies",
				Args: []ir.ColumnDescriptor{
					{Name: "query", Type: ir.StringType()},
					{Name: "limit_count", Type: ir.NumberType(), Optional: true},
				},
				Returns: ir.Object(
					ir.ColumnDescriptor{Name: "id", Type: ir.NumberType()},
				),
				SetOf: true,
			},
		},
	}
	out := string(testEmitter(schema).functionTypesFile())

	if !strings.Contains(out, "export type GetMovieCountArgs = Record<PropertyKey, never>;") {
		t.Errorf("zero-arg function Args:\n%s", out)
	}
	if !strings.Contains(out, "export type GetMovieCountReturns = number;") {
		t.Errorf("scalar Returns:\n%s", out)
	}
	if !strings.Contains(out, "export type SearchMoviesArgs = {") {
		t.Errorf("Args shape:\n%s", out)
	}
	if !strings.Contains(out, "limit_count?: number;") {
		t.Errorf("optional arg:\n%s", out)
	}
	if !strings.Contains(out, "export type SearchMoviesReturns = { id: number }[];") {
		t.Errorf("set-returning Returns:\n%s", out)
	}
}

func TestBarrelFile(t *testing.T) {
	out := string(testEmitter(&ir.Schema{}).barrelFile([]string{"./types", "./hooks"}))
	want := "// Code generated by supahooks. DO NOT EDIT.\n\nexport * from \"./types\";\nexport * from \"./hooks\";\n"
	if out != want {
		t.Errorf("barrel:\n%q\nwant:\n%q", out, want)
	}
}

func TestEmitter_TabIndentAndCRLF(t *testing.T) {
	schema := &ir.Schema{
		Enums: []ir.EnumDescriptor{{Name: "mood", Values: []string{"happy"}}},
	}
	e := newEmitter(schema, Config{IndentStyle: "tab", LineEnding: "crlf"}.withDefaults())
	out := string(e.enumsFile())
	if !strings.Contains(out, "\r\n") {
		t.Error("expected CRLF line endings")
	}

	table := &ir.TableDescriptor{
		Name: "movies",
		Row:  []ir.ColumnDescriptor{{Name: "id", Type: ir.NumberType()}},
	}
	out = string(e.tableTypesFile(table))
	if !strings.Contains(out, "\tid: number;") {
		t.Errorf("expected tab indent:\n%q", out)
	}
}
