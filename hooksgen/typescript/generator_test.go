package typescript

import (
	"context"
	"strings"
	"testing"

	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/ir"
	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/sink"
)

func testSchema() *ir.Schema {
	return &ir.Schema{
		SchemaName: "public",
		Tables: []ir.TableDescriptor{
			{
				Name: "movies",
				Row: []ir.ColumnDescriptor{
					{Name: "id", Type: ir.NumberType()},
					{Name: "name", Type: ir.StringType()},
					{Name: "mood", Type: ir.EnumRef("mood"), Nullable: true},
				},
				Insert: []ir.ColumnDescriptor{
					{Name: "id", Type: ir.NumberType(), Optional: true},
					{Name: "name", Type: ir.StringType()},
				},
				Update: []ir.ColumnDescriptor{
					{Name: "id", Type: ir.NumberType(), Optional: true},
					{Name: "name", Type: ir.StringType(), Optional: true},
				},
				Relationships: []ir.Relationship{
					{
						ForeignKeyName:     "movies_director_id_fkey",
						Columns:            []string{"director_id"},
						ReferencedRelation: "directors",
						ReferencedColumns:  []string{"id"},
					},
				},
			},
		},
		Views: []ir.ViewDescriptor{
			{Name: "recent_movies", Row: []ir.ColumnDescriptor{
				{Name: "id", Type: ir.NumberType(), Nullable: true},
			}},
		},
		Enums: []ir.EnumDescriptor{
			{Name: "mood", Values: []string{"happy", "sad"}},
		},
		Functions: []ir.FunctionDescriptor{
			{Name: "get_movie_count", Returns: ir.NumberType()},
			{
				Name:    "search_movies",
				Args:    []ir.ColumnDescriptor{{Name: "query", Type: ir.StringType()}},
				Returns: ir.RowRef("movies"),
				SetOf:   true,
			},
		},
	}
}

func generate(t *testing.T, schema *ir.Schema, cfg Config) (*GenerateResult, *sink.MemorySink) {
	t.Helper()
	ms := sink.NewMemorySink()
	g := &Generator{}
	result, err := g.Generate(context.Background(), schema, GenerateOptions{Sink: ms, Config: cfg})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return result, ms
}

func TestGenerate_FileTree(t *testing.T) {
	result, ms := generate(t, testSchema(), Config{EmitClient: true, EmitStorage: true})

	want := []string{
		"client.ts",
		"enums/index.ts",
		"enums/types.ts",
		"functions/hooks.ts",
		"functions/index.ts",
		"functions/types.ts",
		"index.ts",
		"movies/hooks.ts",
		"movies/index.ts",
		"movies/relationships.ts",
		"movies/types.ts",
		"recent_movies/hooks.ts",
		"recent_movies/index.ts",
		"recent_movies/types.ts",
		"storage/hooks.ts",
		"storage/index.ts",
		"types.ts",
	}
	got := ms.Paths()
	if len(got) != len(want) {
		t.Fatalf("paths:\n%v\nwant:\n%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if result.TablesGenerated != 1 {
		t.Errorf("TablesGenerated = %d, want 1", result.TablesGenerated)
	}
	if len(result.Files) != len(want) {
		t.Errorf("result.Files = %d entries, want %d", len(result.Files), len(want))
	}
}

func TestGenerate_TableHooks(t *testing.T) {
	_, ms := generate(t, testSchema(), Config{EmitClient: true, EmitStorage: true})

	hooks := string(ms.Get("movies/hooks.ts"))
	for _, want := range []string{
		`const TABLE = "movies";`,
		"export function useGetMovies()",
		"export function useGetMoviesFiltered<K extends keyof MoviesRow>",
		"export function useGetMovieById(id: MoviesRow[\"id\"])",
		"export function useInsertMovie()",
		"export function useUpdateMovie()",
		"export function useDeleteMovie()",
		`import { supabase } from "../client";`,
		`from "@tanstack/react-query"`,
	} {
		if !strings.Contains(hooks, want) {
			t.Errorf("movies/hooks.ts missing %q", want)
		}
	}
}

func TestGenerate_ViewHooks(t *testing.T) {
	_, ms := generate(t, testSchema(), Config{})

	hooks := string(ms.Get("recent_movies/hooks.ts"))
	if !strings.Contains(hooks, "export function useGetRecentMovies()") {
		t.Errorf("missing view query hook:\n%s", hooks)
	}
	for _, forbidden := range []string{"useInsert", "useUpdate", "useDelete", "useMutation"} {
		if strings.Contains(hooks, forbidden) {
			t.Errorf("view hooks should not contain %q", forbidden)
		}
	}
}

func TestGenerate_FunctionHooks(t *testing.T) {
	_, ms := generate(t, testSchema(), Config{})

	hooks := string(ms.Get("functions/hooks.ts"))
	for _, want := range []string{
		"export function useGetMovieCountQuery()",
		`await supabase.rpc("get_movie_count");`,
		"export function useSearchMoviesQuery(args: SearchMoviesArgs)",
		`await supabase.rpc("search_movies", args);`,
	} {
		if !strings.Contains(hooks, want) {
			t.Errorf("functions/hooks.ts missing %q", want)
		}
	}

	types := string(ms.Get("functions/types.ts"))
	if !strings.Contains(types, `import type { MoviesRow } from "../movies/types";`) {
		t.Errorf("functions/types.ts should import the row type:\n%s", types)
	}
	if !strings.Contains(types, "export type SearchMoviesReturns = MoviesRow[];") {
		t.Errorf("set-returning function type:\n%s", types)
	}
}

func TestGenerate_RootIndex(t *testing.T) {
	_, ms := generate(t, testSchema(), Config{EmitClient: true, EmitStorage: true})

	index := string(ms.Get("index.ts"))
	for _, want := range []string{
		`export * from "./types";`,
		`export * from "./enums";`,
		`export * from "./movies";`,
		`export * from "./recent_movies";`,
		`export * from "./functions";`,
		`export * from "./storage";`,
		`export * from "./client";`,
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index.ts missing %q", want)
		}
	}
}

func TestGenerate_Toggles(t *testing.T) {
	_, ms := generate(t, testSchema(), Config{EmitClient: false, EmitStorage: false})

	if ms.Get("client.ts") != nil {
		t.Error("client.ts should not be emitted")
	}
	if ms.Get("storage/hooks.ts") != nil {
		t.Error("storage module should not be emitted")
	}
	index := string(ms.Get("index.ts"))
	if strings.Contains(index, "./client") || strings.Contains(index, "./storage") {
		t.Errorf("index.ts should not export disabled modules:\n%s", index)
	}
}

func TestGenerate_CustomClientImport(t *testing.T) {
	_, ms := generate(t, testSchema(), Config{ClientImport: "@/lib/supabase"})

	hooks := string(ms.Get("movies/hooks.ts"))
	if !strings.Contains(hooks, `import { supabase } from "@/lib/supabase";`) {
		t.Errorf("custom client import not applied:\n%s", hooks)
	}
}

func TestGenerate_EmptySchemaStillEmitsBaseFiles(t *testing.T) {
	result, ms := generate(t, &ir.Schema{SchemaName: "public"}, Config{EmitClient: true, EmitStorage: true})

	for _, want := range []string{"types.ts", "storage/hooks.ts", "client.ts", "index.ts"} {
		if ms.Get(want) == nil {
			t.Errorf("missing %s", want)
		}
	}
	if result.TablesGenerated != 0 {
		t.Errorf("TablesGenerated = %d, want 0", result.TablesGenerated)
	}
}

func TestGenerate_ReservedDirRename(t *testing.T) {
	schema := &ir.Schema{
		SchemaName: "public",
		Tables: []ir.TableDescriptor{
			{Name: "storage", Row: []ir.ColumnDescriptor{{Name: "id", Type: ir.NumberType()}}},
		},
	}
	result, ms := generate(t, schema, Config{EmitStorage: true})

	if ms.Get("storage_table/types.ts") == nil {
		t.Errorf("expected storage_table/ directory, got %v", ms.Paths())
	}
	if ms.Get("storage/hooks.ts") == nil {
		t.Error("storage module should still be emitted")
	}

	var renamed bool
	for _, w := range result.Warnings {
		if w.Code == "renamed_directory" {
			renamed = true
		}
	}
	if !renamed {
		t.Error("expected renamed_directory warning")
	}
}

func TestGenerate_RowRefImportFollowsRenamedDir(t *testing.T) {
	schema := &ir.Schema{
		SchemaName: "public",
		Tables: []ir.TableDescriptor{
			{
				Name:   "storage",
				Row:    []ir.ColumnDescriptor{{Name: "id", Type: ir.NumberType()}},
				Insert: []ir.ColumnDescriptor{{Name: "id", Type: ir.NumberType(), Optional: true}},
				Update: []ir.ColumnDescriptor{{Name: "id", Type: ir.NumberType(), Optional: true}},
			},
		},
		Functions: []ir.FunctionDescriptor{
			{Name: "latest_entries", Returns: ir.RowRef("storage"), SetOf: true},
		},
	}
	_, ms := generate(t, schema, Config{EmitStorage: true})

	types := string(ms.Get("functions/types.ts"))
	if !strings.Contains(types, `import type { StorageRow } from "../storage_table/types";`) {
		t.Errorf("row import should point at the renamed directory:\n%s", types)
	}
	if strings.Contains(types, `"../storage/types"`) {
		t.Errorf("row import must not point at the storage module:\n%s", types)
	}
	if ms.Get("storage_table/types.ts") == nil {
		t.Errorf("table files should live under storage_table/, got %v", ms.Paths())
	}
}

func TestGenerate_NilSink(t *testing.T) {
	g := &Generator{}
	if _, err := g.Generate(context.Background(), &ir.Schema{}, GenerateOptions{}); err == nil {
		t.Error("expected error for nil sink")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	_, first := generate(t, testSchema(), Config{EmitClient: true, EmitStorage: true})
	_, second := generate(t, testSchema(), Config{EmitClient: true, EmitStorage: true})

	for _, path := range first.Paths() {
		if string(first.Get(path)) != string(second.Get(path)) {
			t.Errorf("output for %s differs between runs", path)
		}
	}
}
