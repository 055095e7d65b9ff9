package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPG", true},
		{"a.jpeg", true},
		{"a.png", true},
		{"a.bmp", true},
		{"a.tiff", true},
		{"a.WebP", true},
		{"a.gif", false},
		{"a.txt", false},
		{"a", false},
	}

	for _, tt := range tests {
		if got := IsImage(tt.path); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b_2022.09.21.jpg"))
	touch(t, filepath.Join(dir, "a_20250904.PNG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	if err := os.Mkdir(filepath.Join(dir, "output"), 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "output", "nested.jpg"))

	files, err := Images(dir)
	if err != nil {
		t.Fatalf("Images() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a_20250904.PNG"),
		filepath.Join(dir, "b_2022.09.21.jpg"),
	}
	if len(files) != len(want) {
		t.Fatalf("Images() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Images()[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestEnsureOutputDir(t *testing.T) {
	dir := t.TempDir()

	out, err := EnsureOutputDir(dir, "")
	if err != nil {
		t.Fatalf("EnsureOutputDir() error = %v", err)
	}
	if out != filepath.Join(dir, "output") {
		t.Errorf("EnsureOutputDir() = %q, want default output subfolder", out)
	}
	if info, err := os.Stat(out); err != nil || !info.IsDir() {
		t.Errorf("output dir was not created: %v", err)
	}

	custom := filepath.Join(dir, "elsewhere")
	out, err = EnsureOutputDir(dir, custom)
	if err != nil {
		t.Fatalf("EnsureOutputDir(override) error = %v", err)
	}
	if out != custom {
		t.Errorf("EnsureOutputDir(override) = %q, want %q", out, custom)
	}
}
