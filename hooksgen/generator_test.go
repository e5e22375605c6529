package hooksgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/sink"
)

func TestGenerateToSink_EndToEnd(t *testing.T) {
	ms := sink.NewMemorySink()
	cfg := &Config{InputFile: "testdata/database.types.ts"}

	result, err := GenerateToSink(context.Background(), cfg, ms)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TablesGenerated)

	for _, path := range []string{
		"types.ts",
		"enums/types.ts",
		"movies/types.ts",
		"movies/hooks.ts",
		"movies/relationships.ts",
		"movies/index.ts",
		"directors/types.ts",
		"recent_movies/types.ts",
		"functions/hooks.ts",
		"storage/hooks.ts",
		"client.ts",
		"index.ts",
	} {
		assert.NotNil(t, ms.Get(path), "missing %s", path)
	}

	hooks := string(ms.Get("movies/hooks.ts"))
	assert.Contains(t, hooks, `const TABLE = "movies";`)
	assert.Contains(t, hooks, "export function useGetMovieById")

	types := string(ms.Get("movies/types.ts"))
	assert.Contains(t, types, "mood?: Mood | null;")
	assert.Contains(t, types, `import type { Mood } from "../enums/types";`)
}

func TestGenerate_WritesToDisk(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		InputFile: "testdata/database.types.ts",
		OutDir:    dir,
	}

	result, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, result.Files)

	content, err := os.ReadFile(filepath.Join(dir, "index.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `export * from "./movies";`)
}

func TestGenerate_RequiresOutDir(t *testing.T) {
	cfg := &Config{InputFile: "testdata/database.types.ts"}
	_, err := Generate(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OutDir")
}

func TestGenerateToSink_MissingInput(t *testing.T) {
	cfg := &Config{InputFile: "testdata/does-not-exist.ts"}
	_, err := GenerateToSink(context.Background(), cfg, sink.NewMemorySink())
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{InputFile: "db.ts"},
		},
		{
			name:    "missing input",
			cfg:     Config{},
			wantErr: "InputFile is required",
		},
		{
			name:    "bad indent style",
			cfg:     Config{InputFile: "db.ts", IndentStyle: "elastic"},
			wantErr: "IndentStyle must be one of",
		},
		{
			name:    "indent size out of range",
			cfg:     Config{InputFile: "db.ts", IndentSize: 20},
			wantErr: "IndentSize is out of range",
		},
		{
			name:    "bad line ending",
			cfg:     Config{InputFile: "db.ts", LineEnding: "cr"},
			wantErr: "LineEnding must be one of",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "supahooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(`
input: database.types.ts
out: src/supabase
schema: public
clientImport: "@/lib/supabase"
emitStorage: false
indentStyle: tab
`)), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "database.types.ts", cfg.InputFile)
	assert.Equal(t, "src/supabase", cfg.OutDir)
	assert.Equal(t, "@/lib/supabase", cfg.ClientImport)
	require.NotNil(t, cfg.EmitStorage)
	assert.False(t, *cfg.EmitStorage)
	assert.True(t, cfg.emitClient())
	assert.Equal(t, "tab", cfg.IndentStyle)
}

func TestLoadConfig_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "supahooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: db.ts\noutt: typo\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfig_Merge(t *testing.T) {
	off := false
	base := &Config{
		InputFile:  "from-config.ts",
		OutDir:     "config-out",
		Schema:     "public",
		EmitClient: &off,
	}
	base.Merge(&Config{
		InputFile:  "from-flag.ts",
		LineEnding: "crlf",
	})

	assert.Equal(t, "from-flag.ts", base.InputFile)
	assert.Equal(t, "config-out", base.OutDir)
	assert.Equal(t, "crlf", base.LineEnding)
	require.NotNil(t, base.EmitClient)
	assert.False(t, *base.EmitClient)
}

func TestBuilder(t *testing.T) {
	ms := sink.NewMemorySink()
	result, err := FromFile("testdata/database.types.ts").
		Schema("public").
		ClientImport("@/lib/supabase").
		WithoutClient().
		WithoutStorage().
		ToSink(context.Background(), ms)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TablesGenerated)

	assert.Nil(t, ms.Get("client.ts"))
	assert.Nil(t, ms.Get("storage/hooks.ts"))
	assert.Contains(t, string(ms.Get("movies/hooks.ts")), `import { supabase } from "@/lib/supabase";`)
}
