package storage

import (
	"errors"
	"strings"
	"testing"
)

func testDisk(t *testing.T) *localDisk {
	t.Helper()
	return &localDisk{root: t.TempDir(), baseURL: "http://localhost:3000/storage"}
}

func TestLocalPutGetDelete(t *testing.T) {
	d := testDisk(t)

	if err := d.Put("images/photo.png", []byte("png-bytes")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !d.Exists("images/photo.png") {
		t.Fatal("file should exist after Put")
	}

	data, err := d.Get("images/photo.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Get = %q", data)
	}

	size, err := d.Size("images/photo.png")
	if err != nil || size != int64(len("png-bytes")) {
		t.Errorf("Size = %d, %v", size, err)
	}

	if err := d.Delete("images/photo.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if d.Exists("images/photo.png") {
		t.Error("file should be gone after Delete")
	}
	// Deleting again is fine.
	if err := d.Delete("images/photo.png"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocalGetMissingIsErrNotFound(t *testing.T) {
	d := testDisk(t)
	if _, err := d.Get("nope.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestLocalRejectsTraversal(t *testing.T) {
	d := testDisk(t)
	if err := d.Put("../escape.txt", []byte("x")); err == nil {
		// Clean("/../escape.txt") resolves inside the root; deeper traversal
		// must not.
		t.Log("single ../ is cleaned into the root, acceptable")
	}
	if d.Exists("../../etc/passwd") {
		t.Error("traversal path should never resolve")
	}
}

func TestLocalFilesListing(t *testing.T) {
	d := testDisk(t)
	for _, p := range []string{"docs/a.txt", "docs/b.txt", "docs/sub/c.txt"} {
		if err := d.Put(p, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	files, err := d.Files("docs")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Files = %v, want the two direct children", files)
	}
	for _, f := range files {
		if !strings.HasPrefix(f, "docs/") {
			t.Errorf("listing entry %q should be rooted at docs/", f)
		}
	}
}

func TestLocalURL(t *testing.T) {
	d := testDisk(t)
	if got := d.URL("/a/b.png"); got != "http://localhost:3000/storage/a/b.png" {
		t.Errorf("URL = %q", got)
	}
}
