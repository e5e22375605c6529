package hooksgen

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/ir"
	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/parser"
	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/sink"
	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/typescript"
)

// Result is the outcome of a generation run.
type Result struct {
	// Files lists every written file with its size.
	Files []typescript.OutputFile

	// TablesGenerated is the number of table modules emitted.
	TablesGenerated int

	// Warnings aggregates schema-building and emission warnings.
	Warnings []ir.Warning
}

// Generate runs the full pipeline against the filesystem: parse the
// declaration file, build the schema, and write the generated tree under
// cfg.OutDir.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.OutDir == "" {
		return nil, fmt.Errorf("OutDir is required")
	}
	return GenerateToSink(ctx, cfg, sink.NewFilesystemSink(cfg.OutDir))
}

// GenerateToSink runs the pipeline writing through an explicit sink. Tests
// use this with a MemorySink.
func GenerateToSink(ctx context.Context, cfg *Config, out sink.OutputSink) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	schema, err := LoadSchema(cfg)
	if err != nil {
		return nil, err
	}
	if errs := schema.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("schema validation failed: %w", errors.Join(errs...))
	}

	gen := &typescript.Generator{}
	res, err := gen.Generate(ctx, schema, typescript.GenerateOptions{
		Sink:   out,
		Config: typescript.Config{
			IndentStyle:         cfg.IndentStyle,
			IndentSize:          cfg.IndentSize,
			LineEnding:          cfg.LineEnding,
			ClientImport:        cfg.ClientImport,
			DatabaseTypesImport: cfg.DatabaseTypesImport,
			EmitClient:          cfg.emitClient(),
			EmitStorage:         cfg.emitStorage(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	return &Result{
		Files:           res.Files,
		TablesGenerated: res.TablesGenerated,
		Warnings:        res.Warnings,
	}, nil
}

// LoadSchema parses the declaration file named by the configuration and
// builds the schema IR without generating anything. The check command and
// tests use this directly.
func LoadSchema(cfg *Config) (*ir.Schema, error) {
	src, err := os.ReadFile(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("read declaration file: %w", err)
	}
	file, err := parser.Parse(src, cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("parse declaration file: %w", err)
	}
	schema, err := BuildSchema(file, cfg.Schema)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return schema, nil
}

// Builder provides a fluent API over Config. Create with FromFile and
// finish with ToDir or ToSink.
//
// Example:
//
//	hooksgen.FromFile("database.types.ts").
//	    Schema("public").
//	    ToDir(ctx, "./src/supabase")
type Builder struct {
	cfg Config
}

// FromFile creates a Builder reading the given declaration file.
func FromFile(path string) *Builder {
	return &Builder{cfg: Config{InputFile: path}}
}

// Schema selects the database schema to generate for.
func (b *Builder) Schema(name string) *Builder {
	b.cfg.Schema = name
	return b
}

// ClientImport sets the module specifier hooks import the client from.
func (b *Builder) ClientImport(spec string) *Builder {
	b.cfg.ClientImport = spec
	return b
}

// WithoutClient disables client.ts generation.
func (b *Builder) WithoutClient() *Builder {
	off := false
	b.cfg.EmitClient = &off
	return b
}

// WithoutStorage disables the storage module.
func (b *Builder) WithoutStorage() *Builder {
	off := false
	b.cfg.EmitStorage = &off
	return b
}

// Indent sets the indentation style ("space" or "tab") and width.
func (b *Builder) Indent(style string, size int) *Builder {
	b.cfg.IndentStyle = style
	b.cfg.IndentSize = size
	return b
}

// ToDir generates the tree under dir.
func (b *Builder) ToDir(ctx context.Context, dir string) (*Result, error) {
	b.cfg.OutDir = dir
	return Generate(ctx, &b.cfg)
}

// ToSink generates the tree into an explicit sink.
func (b *Builder) ToSink(ctx context.Context, out sink.OutputSink) (*Result, error) {
	return GenerateToSink(ctx, &b.cfg, out)
}
