package typescript

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Hook files are rendered from templates rather than composed structurally:
// the react-query boilerplate is large and fixed, and only names vary.
// Templates call the naming helpers directly through the funcmap.

var hookFuncs = template.FuncMap{
	"pascal":      pascal,
	"camel":       camel,
	"singular":    pascalSingular,
	"plural":      pascalPlural,
	"rowType":     rowTypeName,
	"insertType":  insertTypeName,
	"updateType":  updateTypeName,
	"argsType":    functionArgsTypeName,
	"returnsType": functionReturnsTypeName,
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(hookFuncs).Parse(text))
}

// renderTemplate executes tmpl and applies the configured line ending.
func (e *emitter) renderTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(e.cfg.Banner)
	buf.WriteString("\n\n")
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	out := buf.String()
	if e.cfg.LineEnding == "crlf" {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return []byte(out), nil
}

type tableHookData struct {
	Table        string // raw table name
	IDColumn     string // raw name of the column row-level hooks address by
	HasID        bool
	ClientImport string
}

type viewHookData struct {
	View         string
	ClientImport string
}

type functionsHookData struct {
	Functions    []functionHookData
	ClientImport string
}

type functionHookData struct {
	Name    string
	HasArgs bool
}

type storageHookData struct {
	ClientImport string
}

type clientData struct {
	DatabaseTypesImport string
}

var tableHooksTmpl = mustTemplate("table_hooks", `import { useMutation, useQuery, useQueryClient } from "@tanstack/react-query";

import { supabase } from "{{.ClientImport}}";
import type { {{rowType .Table}}, {{insertType .Table}}, {{updateType .Table}} } from "./types";

const TABLE = "{{.Table}}";

export function useGet{{plural .Table}}() {
  return useQuery({
    queryKey: [TABLE],
    queryFn: async (): Promise<{{rowType .Table}}[]> => {
      const { data, error } = await supabase.from(TABLE).select("*");
      if (error) throw error;
      return (data ?? []) as {{rowType .Table}}[];
    },
  });
}

export function useGet{{plural .Table}}Filtered<K extends keyof {{rowType .Table}}>(column: K, value: {{rowType .Table}}[K]) {
  return useQuery({
    queryKey: [TABLE, String(column), value],
    queryFn: async (): Promise<{{rowType .Table}}[]> => {
      const { data, error } = await supabase
        .from(TABLE)
        .select("*")
        .eq(column as string, value);
      if (error) throw error;
      return (data ?? []) as {{rowType .Table}}[];
    },
  });
}
{{if .HasID}}
export function useGet{{singular .Table}}ById(id: {{rowType .Table}}["{{.IDColumn}}"]) {
  return useQuery({
    queryKey: [TABLE, id],
    queryFn: async (): Promise<{{rowType .Table}} | null> => {
      const { data, error } = await supabase
        .from(TABLE)
        .select("*")
        .eq("{{.IDColumn}}", id)
        .maybeSingle();
      if (error) throw error;
      return data as {{rowType .Table}} | null;
    },
    enabled: id !== undefined && id !== null,
  });
}
{{end}}
export function useInsert{{singular .Table}}() {
  const queryClient = useQueryClient();
  return useMutation({
    mutationFn: async (values: {{insertType .Table}}): Promise<{{rowType .Table}}> => {
      const { data, error } = await supabase.from(TABLE).insert(values).select().single();
      if (error) throw error;
      return data as {{rowType .Table}};
    },
    onSuccess: () => {
      queryClient.invalidateQueries({ queryKey: [TABLE] });
    },
  });
}
{{if .HasID}}
export function useUpdate{{singular .Table}}() {
  const queryClient = useQueryClient();
  return useMutation({
    mutationFn: async (input: { id: {{rowType .Table}}["{{.IDColumn}}"]; values: {{updateType .Table}} }): Promise<{{rowType .Table}}> => {
      const { data, error } = await supabase
        .from(TABLE)
        .update(input.values)
        .eq("{{.IDColumn}}", input.id)
        .select()
        .single();
      if (error) throw error;
      return data as {{rowType .Table}};
    },
    onSuccess: () => {
      queryClient.invalidateQueries({ queryKey: [TABLE] });
    },
  });
}

export function useDelete{{singular .Table}}() {
  const queryClient = useQueryClient();
  return useMutation({
    mutationFn: async (id: {{rowType .Table}}["{{.IDColumn}}"]): Promise<void> => {
      const { error } = await supabase.from(TABLE).delete().eq("{{.IDColumn}}", id);
      if (error) throw error;
    },
    onSuccess: () => {
      queryClient.invalidateQueries({ queryKey: [TABLE] });
    },
  });
}
{{end}}`)

var viewHooksTmpl = mustTemplate("view_hooks", `import { useQuery } from "@tanstack/react-query";

import { supabase } from "{{.ClientImport}}";
import type { {{rowType .View}} } from "./types";

const VIEW = "{{.View}}";

export function useGet{{plural .View}}() {
  return useQuery({
    queryKey: [VIEW],
    queryFn: async (): Promise<{{rowType .View}}[]> => {
      const { data, error } = await supabase.from(VIEW).select("*");
      if (error) throw error;
      return (data ?? []) as {{rowType .View}}[];
    },
  });
}

export function useGet{{plural .View}}Filtered<K extends keyof {{rowType .View}}>(column: K, value: {{rowType .View}}[K]) {
  return useQuery({
    queryKey: [VIEW, String(column), value],
    queryFn: async (): Promise<{{rowType .View}}[]> => {
      const { data, error } = await supabase
        .from(VIEW)
        .select("*")
        .eq(column as string, value);
      if (error) throw error;
      return (data ?? []) as {{rowType .View}}[];
    },
  });
}
`)

var functionsHooksTmpl = mustTemplate("functions_hooks", `import { useMutation, useQuery } from "@tanstack/react-query";

import { supabase } from "{{.ClientImport}}";
import type {
{{- range .Functions}}
  {{argsType .Name}},
  {{returnsType .Name}},
{{- end}}
} from "./types";
{{range .Functions}}
{{- if .HasArgs}}
export function use{{pascal .Name}}Query(args: {{argsType .Name}}) {
  return useQuery({
    queryKey: ["rpc", "{{.Name}}", args],
    queryFn: async (): Promise<{{returnsType .Name}}> => {
      const { data, error } = await supabase.rpc("{{.Name}}", args);
      if (error) throw error;
      return data as {{returnsType .Name}};
    },
  });
}

export function use{{pascal .Name}}() {
  return useMutation({
    mutationFn: async (args: {{argsType .Name}}): Promise<{{returnsType .Name}}> => {
      const { data, error } = await supabase.rpc("{{.Name}}", args);
      if (error) throw error;
      return data as {{returnsType .Name}};
    },
  });
}
{{- else}}
export function use{{pascal .Name}}Query() {
  return useQuery({
    queryKey: ["rpc", "{{.Name}}"],
    queryFn: async (): Promise<{{returnsType .Name}}> => {
      const { data, error } = await supabase.rpc("{{.Name}}");
      if (error) throw error;
      return data as {{returnsType .Name}};
    },
  });
}

export function use{{pascal .Name}}() {
  return useMutation({
    mutationFn: async (): Promise<{{returnsType .Name}}> => {
      const { data, error } = await supabase.rpc("{{.Name}}");
      if (error) throw error;
      return data as {{returnsType .Name}};
    },
  });
}
{{- end}}
{{end}}`)

var storageHooksTmpl = mustTemplate("storage_hooks", `import { useMutation, useQuery, useQueryClient } from "@tanstack/react-query";

import { supabase } from "{{.ClientImport}}";

export function useUploadFile(bucket: string) {
  return useMutation({
    mutationFn: async (input: { path: string; file: Blob; upsert?: boolean }) => {
      const { data, error } = await supabase.storage
        .from(bucket)
        .upload(input.path, input.file, { upsert: input.upsert ?? false });
      if (error) throw error;
      return data;
    },
  });
}

export function useDownloadFile(bucket: string, path: string) {
  return useQuery({
    queryKey: ["storage", bucket, path],
    queryFn: async (): Promise<Blob> => {
      const { data, error } = await supabase.storage.from(bucket).download(path);
      if (error) throw error;
      return data;
    },
    enabled: path.length > 0,
  });
}

export function useListFiles(bucket: string, prefix = "") {
  return useQuery({
    queryKey: ["storage", bucket, "list", prefix],
    queryFn: async () => {
      const { data, error } = await supabase.storage.from(bucket).list(prefix);
      if (error) throw error;
      return data ?? [];
    },
  });
}

export function useRemoveFiles(bucket: string) {
  const queryClient = useQueryClient();
  return useMutation({
    mutationFn: async (paths: string[]) => {
      const { data, error } = await supabase.storage.from(bucket).remove(paths);
      if (error) throw error;
      return data;
    },
    onSuccess: () => {
      queryClient.invalidateQueries({ queryKey: ["storage", bucket] });
    },
  });
}

export function useGetPublicUrl(bucket: string, path: string): string {
  return supabase.storage.from(bucket).getPublicUrl(path).data.publicUrl;
}
`)

var clientTmpl = mustTemplate("client", `import { createClient } from "@supabase/supabase-js";

import type { Database } from "{{.DatabaseTypesImport}}";

const supabaseUrl = process.env.NEXT_PUBLIC_SUPABASE_URL ?? "";
const supabaseAnonKey = process.env.NEXT_PUBLIC_SUPABASE_ANON_KEY ?? "";

export const supabase = createClient<Database>(supabaseUrl, supabaseAnonKey);
`)

// barrelFile renders an index.ts re-exporting the given module specifiers.
func (e *emitter) barrelFile(specs []string) []byte {
	var buf bytes.Buffer
	e.banner(&buf)
	for _, spec := range specs {
		fmt.Fprintf(&buf, "export * from %q;%s", spec, e.nl)
	}
	return buf.Bytes()
}
