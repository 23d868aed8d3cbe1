package fsops

import (
	"testing"

	"github.com/spf13/afero"
)

func TestWriteFile(t *testing.T) {
	t.Run("creates parents and writes", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		w := NewWithFs(fs, false)

		err := w.WriteFile("/etc/nginx/conf.d/proxy/a.conf", []byte("server {}\n"), 0644)
		if err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		data, err := afero.ReadFile(fs, "/etc/nginx/conf.d/proxy/a.conf")
		if err != nil {
			t.Fatalf("reading back failed: %v", err)
		}
		if string(data) != "server {}\n" {
			t.Errorf("unexpected contents: %q", string(data))
		}
	})

	t.Run("dry-run writes nothing", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		w := NewWithFs(fs, true)

		err := w.WriteFile("/etc/nginx/conf.d/proxy/a.conf", []byte("server {}\n"), 0644)
		if err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		exists, _ := afero.Exists(fs, "/etc/nginx/conf.d/proxy/a.conf")
		if exists {
			t.Error("dry-run must not write files")
		}
	})
}

func TestCopy(t *testing.T) {
	t.Run("copies contents", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "/src/fullchain.cer", []byte("CERT"), 0644); err != nil {
			t.Fatal(err)
		}
		w := NewWithFs(fs, false)

		if err := w.Copy("/src/fullchain.cer", "/dst/example.com.cer"); err != nil {
			t.Fatalf("Copy failed: %v", err)
		}

		data, err := afero.ReadFile(fs, "/dst/example.com.cer")
		if err != nil {
			t.Fatalf("reading back failed: %v", err)
		}
		if string(data) != "CERT" {
			t.Errorf("unexpected contents: %q", string(data))
		}
	})

	t.Run("preserves source mode", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "/src/example.com.key", []byte("KEY"), 0600); err != nil {
			t.Fatal(err)
		}
		w := NewWithFs(fs, false)

		if err := w.Copy("/src/example.com.key", "/dst/example.com.key"); err != nil {
			t.Fatalf("Copy failed: %v", err)
		}

		info, err := fs.Stat("/dst/example.com.key")
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if got := info.Mode().Perm(); got != 0600 {
			t.Errorf("key copied with mode %v, want 0600 preserved", got)
		}
	})

	t.Run("missing source errors", func(t *testing.T) {
		w := NewWithFs(afero.NewMemMapFs(), false)
		if err := w.Copy("/nope", "/dst"); err == nil {
			t.Error("expected error for missing source")
		}
	})

	t.Run("dry-run copies nothing", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "/src/key", []byte("KEY"), 0600); err != nil {
			t.Fatal(err)
		}
		w := NewWithFs(fs, true)

		if err := w.Copy("/src/key", "/dst/key"); err != nil {
			t.Fatalf("Copy failed: %v", err)
		}
		exists, _ := afero.Exists(fs, "/dst/key")
		if exists {
			t.Error("dry-run must not copy files")
		}
	})
}

func TestRemoveAll(t *testing.T) {
	t.Run("removes existing dir", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "/root/.acme.sh/example.com_ecc/fullchain.cer", []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		w := NewWithFs(fs, false)

		if err := w.RemoveAll("/root/.acme.sh/example.com_ecc"); err != nil {
			t.Fatalf("RemoveAll failed: %v", err)
		}
		exists, _ := afero.DirExists(fs, "/root/.acme.sh/example.com_ecc")
		if exists {
			t.Error("directory should be gone")
		}
	})

	t.Run("missing dir is not an error", func(t *testing.T) {
		w := NewWithFs(afero.NewMemMapFs(), false)
		if err := w.RemoveAll("/no/such/dir"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("dry-run removes nothing", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "/cache/f", []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		w := NewWithFs(fs, true)

		if err := w.RemoveAll("/cache"); err != nil {
			t.Fatalf("RemoveAll failed: %v", err)
		}
		exists, _ := afero.Exists(fs, "/cache/f")
		if !exists {
			t.Error("dry-run must not remove files")
		}
	})
}

func TestMkdirAll_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWithFs(fs, true)
	if err := w.MkdirAll("/etc/ca-certificates/custom", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	exists, _ := afero.DirExists(fs, "/etc/ca-certificates/custom")
	if exists {
		t.Error("dry-run must not create directories")
	}
}
