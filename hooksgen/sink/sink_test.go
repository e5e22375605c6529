package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePath(t *testing.T) {
	valid := []string{
		"types.ts",
		"movies/hooks.ts",
		"enums/types.ts",
	}
	for _, path := range valid {
		if err := ValidatePath(path); err != nil {
			t.Errorf("ValidatePath(%q) = %v, want nil", path, err)
		}
	}

	invalid := []string{
		"",
		"/etc/passwd",
		"../escape.ts",
		"movies/../../escape.ts",
		"c:/windows/file.ts",
		"movies//hooks.ts",
		"./types.ts",
	}
	for _, path := range invalid {
		if err := ValidatePath(path); err == nil {
			t.Errorf("ValidatePath(%q) = nil, want error", path)
		}
	}
}

func TestFilesystemSink_WriteFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "movies/types.ts", []byte("export type MoviesRow = {};\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "movies", "types.ts"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "export type MoviesRow = {};\n" {
		t.Errorf("content: %q", content)
	}

	info, err := os.Stat(filepath.Join(dir, "movies", "types.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode: %v", info.Mode().Perm())
	}
}

func TestFilesystemSink_Overwrite(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "index.ts", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "index.ts", []byte("new")); err != nil {
		t.Fatal(err)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "index.ts"))
	if string(content) != "new" {
		t.Errorf("content after overwrite: %q", content)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "index.ts" {
			t.Errorf("leftover file: %s", e.Name())
		}
	}
}

func TestFilesystemSink_RejectsTraversal(t *testing.T) {
	s := NewFilesystemSink(t.TempDir())
	if err := s.WriteFile(context.Background(), "../escape.ts", []byte("x")); err == nil {
		t.Error("expected error for traversal path")
	}
}

func TestFilesystemSink_CanceledContext(t *testing.T) {
	s := NewFilesystemSink(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.WriteFile(ctx, "types.ts", []byte("x")); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	if err := s.WriteFile(ctx, "b.ts", []byte("bb")); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "a.ts", []byte("aa")); err != nil {
		t.Fatal(err)
	}

	paths := s.Paths()
	if len(paths) != 2 || paths[0] != "a.ts" || paths[1] != "b.ts" {
		t.Errorf("Paths: %v", paths)
	}
	if string(s.Get("a.ts")) != "aa" {
		t.Errorf("Get(a.ts): %q", s.Get("a.ts"))
	}
	if s.Get("missing.ts") != nil {
		t.Error("Get of unwritten path should return nil")
	}
}

func TestMemorySink_CopiesContent(t *testing.T) {
	s := NewMemorySink()
	buf := []byte("original")
	if err := s.WriteFile(context.Background(), "f.ts", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'X'
	if string(s.Get("f.ts")) != "original" {
		t.Error("sink should store a copy of the content")
	}
}
