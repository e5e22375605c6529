// Package hooksgen generates typed Supabase data-access modules from a
// database.types.ts declaration file: per-table types and CRUD react-query
// hooks, relationship metadata, enum types, RPC function hooks and storage
// hooks.
package hooksgen

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for a generation run. The zero value plus
// InputFile and OutDir is a working configuration.
type Config struct {
	// InputFile is the path of the declaration file to read.
	InputFile string `yaml:"input" validate:"required"`

	// OutDir is the directory the generated tree is written to. Required
	// unless generation targets an explicit sink.
	OutDir string `yaml:"out"`

	// Schema is the database schema to generate for. Default: "public".
	Schema string `yaml:"schema"`

	// ClientImport overrides the module specifier hook files import the
	// Supabase client from. Defaults to the emitted "../client" module.
	ClientImport string `yaml:"clientImport"`

	// DatabaseTypesImport is the module specifier the emitted client
	// imports the Database type from. Default: "../database.types".
	DatabaseTypesImport string `yaml:"databaseTypesImport"`

	// EmitClient controls client.ts generation. Default: true.
	EmitClient *bool `yaml:"emitClient"`

	// EmitStorage controls storage module generation. Default: true.
	EmitStorage *bool `yaml:"emitStorage"`

	// Formatting options for emitted files.
	IndentStyle string `yaml:"indentStyle" validate:"omitempty,oneof=space tab"`
	IndentSize  int    `yaml:"indentSize" validate:"omitempty,min=1,max=8"`
	LineEnding  string `yaml:"lineEnding" validate:"omitempty,oneof=lf crlf"`
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration, translating validator failures into
// readable messages.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Errorf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "min", "max":
			msgs = append(msgs, fmt.Errorf("%s is out of range", fe.Field()))
		default:
			msgs = append(msgs, fmt.Errorf("%s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(msgs...))
}

// LoadConfig reads a YAML configuration file. Unknown keys are rejected so
// typos surface instead of silently applying defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays non-zero fields of other onto c. Used by the CLI to let
// flags win over config-file values.
func (c *Config) Merge(other *Config) {
	if other.InputFile != "" {
		c.InputFile = other.InputFile
	}
	if other.OutDir != "" {
		c.OutDir = other.OutDir
	}
	if other.Schema != "" {
		c.Schema = other.Schema
	}
	if other.ClientImport != "" {
		c.ClientImport = other.ClientImport
	}
	if other.DatabaseTypesImport != "" {
		c.DatabaseTypesImport = other.DatabaseTypesImport
	}
	if other.EmitClient != nil {
		c.EmitClient = other.EmitClient
	}
	if other.EmitStorage != nil {
		c.EmitStorage = other.EmitStorage
	}
	if other.IndentStyle != "" {
		c.IndentStyle = other.IndentStyle
	}
	if other.IndentSize != 0 {
		c.IndentSize = other.IndentSize
	}
	if other.LineEnding != "" {
		c.LineEnding = other.LineEnding
	}
}

func (c *Config) emitClient() bool  { return c.EmitClient == nil || *c.EmitClient }
func (c *Config) emitStorage() bool { return c.EmitStorage == nil || *c.EmitStorage }
