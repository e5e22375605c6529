// Command supahooks generates typed Supabase data-access modules from a
// database.types.ts declaration file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/AudioGenius-ai/supabase-to-hooks/hooksgen"
	"github.com/AudioGenius-ai/supabase-to-hooks/internal/watch"
)

type CLI struct {
	Gen     GenCmd     `cmd:"" help:"Generate types and hooks from a declaration file."`
	Check   CheckCmd   `cmd:"" help:"Parse and validate the declaration file without writing files."`
	Version VersionCmd `cmd:"" help:"Print version information."`

	Verbose bool `help:"Enable debug logging." short:"v"`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

// defaultInput is used when neither the --input flag nor a config file
// names the declaration file.
const defaultInput = "database.types.ts"

// sharedFlags are the options common to gen and check.
type sharedFlags struct {
	Input  string `help:"Declaration file to read (default database.types.ts)." short:"i"`
	Schema string `help:"Database schema to generate for." short:"s"`
	Config string `help:"YAML config file; flags take precedence over its values." short:"c"`
}

// buildConfig loads the optional config file and overlays the flag values.
// The input default is applied last so a config file's input wins over it
// while an explicit flag wins over both.
func (f *sharedFlags) buildConfig() (*hooksgen.Config, error) {
	cfg := &hooksgen.Config{}
	if f.Config != "" {
		loaded, err := hooksgen.LoadConfig(f.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.Merge(&hooksgen.Config{
		InputFile: f.Input,
		Schema:    f.Schema,
	})
	if cfg.InputFile == "" {
		cfg.InputFile = defaultInput
	}
	return cfg, nil
}

type GenCmd struct {
	sharedFlags

	Out          string `arg:"" help:"Output directory for generated files."`
	ClientImport string `help:"Module specifier hooks import the Supabase client from." name:"client-import"`
	NoClient     bool   `help:"Do not generate client.ts."`
	NoStorage    bool   `help:"Do not generate the storage module."`
	Watch        bool   `help:"Watch the declaration file and regenerate on change." short:"w"`
}

func (c *GenCmd) Run(logger *slog.Logger) error {
	cfg, err := c.buildConfig()
	if err != nil {
		return err
	}
	cfg.Merge(&hooksgen.Config{
		OutDir:       c.Out,
		ClientImport: c.ClientImport,
	})
	if c.NoClient {
		off := false
		cfg.EmitClient = &off
	}
	if c.NoStorage {
		off := false
		cfg.EmitStorage = &off
	}

	ctx := context.Background()
	if err := generate(ctx, cfg, logger); err != nil {
		return err
	}
	if !c.Watch {
		return nil
	}

	logger.Info("watching for changes", slog.String("file", cfg.InputFile))
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	err = watch.File(ctx, cfg.InputFile, func() {
		if err := generate(ctx, cfg, logger); err != nil {
			logger.Error("regeneration failed", slog.Any("error", err))
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func generate(ctx context.Context, cfg *hooksgen.Config, logger *slog.Logger) error {
	result, err := hooksgen.Generate(ctx, cfg)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn(w.Message, slog.String("code", w.Code))
	}
	logger.Info("generation complete",
		slog.Int("tables", result.TablesGenerated),
		slog.Int("files", len(result.Files)),
		slog.String("out", cfg.OutDir),
	)
	return nil
}

type CheckCmd struct {
	sharedFlags
}

func (c *CheckCmd) Run(logger *slog.Logger) error {
	cfg, err := c.buildConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	schema, err := hooksgen.LoadSchema(cfg)
	if err != nil {
		return err
	}
	for _, w := range schema.Warnings {
		logger.Warn(w.Message, slog.String("code", w.Code))
	}
	if errs := schema.Validate(); len(errs) > 0 {
		for _, e := range errs {
			logger.Error(e.Error())
		}
		return fmt.Errorf("schema validation failed with %d error(s)", len(errs))
	}

	logger.Info("declaration file is valid",
		slog.String("file", cfg.InputFile),
		slog.Int("tables", len(schema.Tables)),
		slog.Int("views", len(schema.Views)),
		slog.Int("enums", len(schema.Enums)),
		slog.Int("functions", len(schema.Functions)),
	)
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("supahooks"),
		kong.Description("Generate typed Supabase data-access hooks from database.types.ts."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx.FatalIfErrorf(ctx.Run(logger))
}
