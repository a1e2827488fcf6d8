package filedemo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReleasedRunWritesAllFiles(t *testing.T) {
	root := filepath.Join(t.TempDir(), "goodfile")
	var out strings.Builder

	if err := Run(&out, Released, root, 25); err != nil {
		t.Fatalf("Run(Released) error = %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read demo dir: %v", err)
	}
	if len(entries) != 25 {
		t.Fatalf("got %d files, want 25", len(entries))
	}

	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("%dexample.txt", i)
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != "I'm a good file writer!\n" {
			t.Errorf("%s content = %q", name, data)
		}
	}

	if !strings.Contains(out.String(), "Finished good file demo") {
		t.Errorf("missing completion banner in %q", out.String())
	}
}

func TestLeakyRunWritesAllFilesWithHyphenNames(t *testing.T) {
	root := filepath.Join(t.TempDir(), "badfile")
	var out strings.Builder

	if err := Run(&out, Leaky, root, 10); err != nil {
		t.Fatalf("Run(Leaky) error = %v", err)
	}

	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("%d-example.txt", i)
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != "I'm a bad file writer\n" {
			t.Errorf("%s content = %q", name, data)
		}
	}

	if !strings.Contains(out.String(), "handles left open") {
		t.Errorf("missing leak report in %q", out.String())
	}
}

func TestLeakyRunContinuesPastErrors(t *testing.T) {
	root := filepath.Join(t.TempDir(), "badfile")
	if err := EnsureDir(root); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}

	// A directory squatting on index 3's path makes that open fail.
	if err := os.Mkdir(filepath.Join(root, "3-example.txt"), 0o755); err != nil {
		t.Fatalf("plant blocking dir: %v", err)
	}

	var out strings.Builder
	if err := Run(&out, Leaky, root, 6); err != nil {
		t.Fatalf("Run(Leaky) should swallow per-file errors, got %v", err)
	}

	if !strings.Contains(out.String(), "file 3 failed") {
		t.Errorf("missing per-index error message in %q", out.String())
	}

	// Later indexes were still written.
	if _, err := os.Stat(filepath.Join(root, "5-example.txt")); err != nil {
		t.Errorf("file after the failed index is missing: %v", err)
	}
}

func TestReleasedRunAbortsOnFirstError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "goodfile")
	if err := EnsureDir(root); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, "3example.txt"), 0o755); err != nil {
		t.Fatalf("plant blocking dir: %v", err)
	}

	var out strings.Builder
	err := Run(&out, Released, root, 6)
	if err == nil {
		t.Fatal("Run(Released) should abort on the first per-file error")
	}

	if _, statErr := os.Stat(filepath.Join(root, "4example.txt")); !os.IsNotExist(statErr) {
		t.Error("files past the failed index should not exist after abort")
	}
}

func TestEnsureDirIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "goodfile")

	if err := EnsureDir(root); err != nil {
		t.Fatalf("first EnsureDir: %v", err)
	}
	if err := EnsureDir(root); err != nil {
		t.Fatalf("second EnsureDir: %v", err)
	}

	// A plain file in the way is an error, not a silent overwrite.
	blocked := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	if err := EnsureDir(blocked); err == nil {
		t.Error("EnsureDir over a plain file should fail")
	}
}

func TestRemoveDirsIsIdempotent(t *testing.T) {
	base := t.TempDir()
	good := filepath.Join(base, "goodfile")
	bad := filepath.Join(base, "badfile")

	var out strings.Builder
	if err := Run(&out, Released, good, 5); err != nil {
		t.Fatalf("seed good dir: %v", err)
	}

	if err := RemoveDirs(good, bad); err != nil {
		t.Fatalf("first RemoveDirs: %v", err)
	}
	if _, err := os.Stat(good); !os.IsNotExist(err) {
		t.Error("good root still exists after RemoveDirs")
	}

	// Second pass over already-absent roots is a no-op.
	if err := RemoveDirs(good, bad); err != nil {
		t.Fatalf("second RemoveDirs: %v", err)
	}
}

func TestReleasedRunTwiceSucceeds(t *testing.T) {
	root := filepath.Join(t.TempDir(), "goodfile")
	var out strings.Builder

	if err := Run(&out, Released, root, 8); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(&out, Released, root, 8); err != nil {
		t.Fatalf("second run over existing files: %v", err)
	}
}
