// Package typescript turns a schema IR into the generated TypeScript tree:
// per-table types and hooks, relationship metadata, enum types, RPC function
// hooks, storage hooks and index barrels.
package typescript

import (
	"context"
	"fmt"

	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/ir"
	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen/sink"
)

// GenerateOptions configures a generation run.
type GenerateOptions struct {
	// Sink receives the generated files.
	Sink sink.OutputSink

	// Config controls formatting and content.
	Config Config
}

// OutputFile describes one generated file.
type OutputFile struct {
	Path string
	Size int64
}

// GenerateResult is the outcome of a generation run.
type GenerateResult struct {
	Files           []OutputFile
	TablesGenerated int
	Warnings        []ir.Warning
}

// reservedDirs are output names that table directories must not collide
// with.
var reservedDirs = map[string]bool{
	"enums":     true,
	"functions": true,
	"storage":   true,
	"types":     true,
	"index":     true,
	"client":    true,
}

// moduleDir returns the output directory for a table or view, steering
// clear of the fixed module names. File placement and import paths both go
// through here so references to a renamed module stay consistent.
func moduleDir(name string) string {
	dir := dirName(name)
	if reservedDirs[dir] {
		dir += "_table"
	}
	return dir
}

// Generator emits the TypeScript tree for a schema.
type Generator struct{}

// Name returns the generator's identifier.
func (g *Generator) Name() string { return "typescript" }

// Generate renders every output file for the schema and writes them through
// the sink. The returned result lists written files and carries both the
// schema's warnings and any added during emission.
func (g *Generator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	cfg := opts.Config.withDefaults()
	e := newEmitter(schema, cfg)

	result := &GenerateResult{
		Warnings: append([]ir.Warning(nil), schema.Warnings...),
	}
	write := func(path string, content []byte) error {
		if err := opts.Sink.WriteFile(ctx, path, content); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		result.Files = append(result.Files, OutputFile{Path: path, Size: int64(len(content))})
		return nil
	}

	outputDir := func(name string) string {
		dir := moduleDir(name)
		if dir != dirName(name) {
			result.Warnings = append(result.Warnings, ir.Warning{
				Code:    "renamed_directory",
				Message: fmt.Sprintf("table %q collides with the %s module, emitting to %s/", name, dirName(name), dir),
			})
		}
		return dir
	}

	rootExports := []string{"./types"}

	if err := write("types.ts", e.sharedTypesFile()); err != nil {
		return nil, err
	}

	if len(schema.Enums) > 0 {
		if err := write("enums/types.ts", e.enumsFile()); err != nil {
			return nil, err
		}
		if err := write("enums/index.ts", e.barrelFile([]string{"./types"})); err != nil {
			return nil, err
		}
		rootExports = append(rootExports, "./enums")
	}

	for i := range schema.Tables {
		table := &schema.Tables[i]
		dir := outputDir(table.Name)

		if err := write(dir+"/types.ts", e.tableTypesFile(table)); err != nil {
			return nil, err
		}

		idCol, hasID := table.PrimaryColumn()
		hooks, err := e.renderTemplate(tableHooksTmpl, tableHookData{
			Table:        table.Name,
			IDColumn:     idCol.Name,
			HasID:        hasID,
			ClientImport: cfg.ClientImport,
		})
		if err != nil {
			return nil, err
		}
		if err := write(dir+"/hooks.ts", hooks); err != nil {
			return nil, err
		}

		if err := write(dir+"/relationships.ts", e.relationshipsFile(table)); err != nil {
			return nil, err
		}
		if err := write(dir+"/index.ts", e.barrelFile([]string{"./types", "./hooks", "./relationships"})); err != nil {
			return nil, err
		}

		rootExports = append(rootExports, "./"+dir)
		result.TablesGenerated++
	}

	for i := range schema.Views {
		view := &schema.Views[i]
		dir := outputDir(view.Name)

		if err := write(dir+"/types.ts", e.viewTypesFile(view)); err != nil {
			return nil, err
		}
		hooks, err := e.renderTemplate(viewHooksTmpl, viewHookData{
			View:         view.Name,
			ClientImport: cfg.ClientImport,
		})
		if err != nil {
			return nil, err
		}
		if err := write(dir+"/hooks.ts", hooks); err != nil {
			return nil, err
		}
		if err := write(dir+"/index.ts", e.barrelFile([]string{"./types", "./hooks"})); err != nil {
			return nil, err
		}
		rootExports = append(rootExports, "./"+dir)
	}

	if len(schema.Functions) > 0 {
		if err := write("functions/types.ts", e.functionTypesFile()); err != nil {
			return nil, err
		}
		data := functionsHookData{ClientImport: cfg.ClientImport}
		for _, fn := range schema.Functions {
			data.Functions = append(data.Functions, functionHookData{
				Name:    fn.Name,
				HasArgs: fn.HasArgs(),
			})
		}
		hooks, err := e.renderTemplate(functionsHooksTmpl, data)
		if err != nil {
			return nil, err
		}
		if err := write("functions/hooks.ts", hooks); err != nil {
			return nil, err
		}
		if err := write("functions/index.ts", e.barrelFile([]string{"./types", "./hooks"})); err != nil {
			return nil, err
		}
		rootExports = append(rootExports, "./functions")
	}

	if cfg.EmitStorage {
		hooks, err := e.renderTemplate(storageHooksTmpl, storageHookData{ClientImport: cfg.ClientImport})
		if err != nil {
			return nil, err
		}
		if err := write("storage/hooks.ts", hooks); err != nil {
			return nil, err
		}
		if err := write("storage/index.ts", e.barrelFile([]string{"./hooks"})); err != nil {
			return nil, err
		}
		rootExports = append(rootExports, "./storage")
	}

	if cfg.EmitClient {
		client, err := e.renderTemplate(clientTmpl, clientData{DatabaseTypesImport: cfg.DatabaseTypesImport})
		if err != nil {
			return nil, err
		}
		if err := write("client.ts", client); err != nil {
			return nil, err
		}
		rootExports = append(rootExports, "./client")
	}

	if err := write("index.ts", e.barrelFile(rootExports)); err != nil {
		return nil, err
	}

	return result, nil
}
