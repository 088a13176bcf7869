package main

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var genStamp = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestGenerateFilesProduceParseableGo(t *testing.T) {
	chdirTemp(t)

	for _, kind := range []string{"model", "controller", "migration", "seeder", "channel", "scaffold"} {
		files, err := generateFiles(kind, "BlogPost", genStamp)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if len(files) == 0 {
			t.Fatalf("%s: no files", kind)
		}
		for _, f := range files {
			if !strings.HasSuffix(f.path, ".go") {
				continue
			}
			fset := token.NewFileSet()
			if _, err := parser.ParseFile(fset, f.path, f.content, 0); err != nil {
				t.Errorf("%s: %s does not parse: %v\n%s", kind, f.path, err, f.content)
			}
		}
	}
}

func TestGenerateScaffoldPaths(t *testing.T) {
	chdirTemp(t)

	files, err := generateFiles("scaffold", "Post", genStamp)
	if err != nil {
		t.Fatal(err)
	}

	wantPaths := []string{
		"app/models/post.go",
		"app/controllers/post_controller.go",
		"database/migrations/20260831120000_create_posts_table.go",
		"database/seeders/post_seeder.go",
	}
	if len(files) != len(wantPaths) {
		t.Fatalf("got %d files, want %d", len(files), len(wantPaths))
	}
	for i, f := range files {
		if f.path != wantPaths[i] {
			t.Errorf("file %d = %s, want %s", i, f.path, wantPaths[i])
		}
	}
}

func TestWriteStubRefusesOverwrite(t *testing.T) {
	chdirTemp(t)

	if err := writeStub("app/models/post.go", "package models\n"); err != nil {
		t.Fatal(err)
	}
	if err := writeStub("app/models/post.go", "package models // again\n"); err == nil {
		t.Fatal("second write should fail")
	}

	data, _ := os.ReadFile("app/models/post.go")
	if strings.Contains(string(data), "again") {
		t.Error("original content was clobbered")
	}
}

func TestDestroyRemovesWhatGenerateCreated(t *testing.T) {
	chdirTemp(t)

	files, err := generateFiles("scaffold", "Post", genStamp)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if err := writeStub(f.path, f.content); err != nil {
			t.Fatal(err)
		}
	}

	if err := destroy("scaffold", "Post"); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); !os.IsNotExist(err) {
			t.Errorf("%s should be gone", f.path)
		}
	}
}

func TestDestroyMigrationMatchesTimestampedFile(t *testing.T) {
	chdirTemp(t)

	files, err := generateFiles("migration", "add email to users", genStamp)
	if err != nil {
		t.Fatal(err)
	}
	if err := writeStub(files[0].path, files[0].content); err != nil {
		t.Fatal(err)
	}

	if err := destroy("migration", "add email to users"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(files[0].path); !os.IsNotExist(err) {
		t.Error("migration file should be gone")
	}
}

func TestStubOverrideWins(t *testing.T) {
	chdirTemp(t)

	override := filepath.Join(stubOverrideDir, "model.stub")
	if err := os.MkdirAll(filepath.Dir(override), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte("package custom // {{.Name}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := renderStub("model", stubData{Name: "Post"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "package custom // Post") {
		t.Errorf("override not used: %q", out)
	}
}

func TestNewProjectLayout(t *testing.T) {
	chdirTemp(t)

	if err := newProject("blog", "example.com/blog"); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{
		"blog/go.mod",
		"blog/main.go",
		"blog/.env",
		"blog/.gitignore",
		"blog/config/app.json",
		"blog/app/routes/routes.go",
		"blog/app/controllers/controllers.go",
		"blog/app/models/models.go",
		"blog/database/migrations/migrations.go",
		"blog/database/seeders/seeders.go",
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s", p)
		}
	}

	gomod, _ := os.ReadFile("blog/go.mod")
	if !strings.Contains(string(gomod), "module example.com/blog") {
		t.Errorf("go.mod module path wrong:\n%s", gomod)
	}

	mainGo, _ := os.ReadFile("blog/main.go")
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "main.go", mainGo, 0); err != nil {
		t.Errorf("generated main.go does not parse: %v", err)
	}

	// A second run must not clobber anything.
	if err := newProject("blog", ""); err == nil {
		t.Error("scaffolding over an existing directory should fail")
	}
}

func TestNewProjectEnvKeysAreResolvable(t *testing.T) {
	chdirTemp(t)

	if err := newProject("blog", "example.com/blog"); err != nil {
		t.Fatal(err)
	}

	// Keys the config package resolves through its typed getters. A stub
	// key outside this set would be written but never read.
	known := map[string]bool{
		"APP_ENV":      true,
		"APP_PORT":     true,
		"APP_KEY":      true,
		"JWT_SECRET":   true,
		"DB_DRIVER":    true,
		"DATABASE_DSN": true,
		"REDIS_ADDR":   true,
		"CORS_ORIGINS": true,
	}

	raw, err := os.ReadFile("blog/.env")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, ok := strings.Cut(line, "=")
		if !ok {
			t.Errorf("malformed .env line %q", line)
			continue
		}
		if !known[key] {
			t.Errorf(".env writes %s, which config never reads", key)
		}
	}
}

// chdirTemp mirrors t.Chdir(t.TempDir()) for toolchains before Go 1.24.
func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
