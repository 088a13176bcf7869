package main

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed stubs/*.stub
var defaultStubs embed.FS

// stubOverrideDir is the per-project stub override location. A project can
// copy any embedded stub here and edit it; the override wins.
const stubOverrideDir = ".volt/stubs"

// stubData holds the variables available to .stub templates.
type stubData struct {
	Name    string // PascalCase type name, e.g. BlogPost
	Lower   string // snake_case name, e.g. blog_post
	Plural  string // snake_case plural, e.g. blog_posts
	Table   string // database table name
	Struct  string // migration struct name, e.g. M_20260831120000_create_posts_table
	Module  string // project Go module path (project stubs only)
	Project string // project directory name (project stubs only)
}

// renderStub loads a stub (project override first, embedded fallback) and
// executes it as a text/template.
func renderStub(name string, data stubData) (string, error) {
	content, err := os.ReadFile(filepath.Join(stubOverrideDir, name+".stub"))
	if err != nil {
		content, err = defaultStubs.ReadFile("stubs/" + name + ".stub")
		if err != nil {
			return "", fmt.Errorf("stub %q not found: %w", name, err)
		}
	}

	t, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("stub %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("stub %q: %w", name, err)
	}
	return buf.String(), nil
}

// writeStub writes rendered stub content to path, creating parent
// directories. An existing file is an error; generators never overwrite.
func writeStub(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	fmt.Printf("created  %s\n", path)
	return nil
}
