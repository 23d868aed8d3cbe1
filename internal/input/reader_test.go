package input

import (
	"io"
	"testing"
	"time"
)

func TestStringReader(t *testing.T) {
	t.Run("returns inputs in order", func(t *testing.T) {
		r := NewStringReader("first\n", "second\n")

		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line != "first\n" {
			t.Errorf("expected 'first\\n', got %q", line)
		}

		line, err = r.ReadString('\n')
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line != "second\n" {
			t.Errorf("expected 'second\\n', got %q", line)
		}
	})

	t.Run("EOF when exhausted", func(t *testing.T) {
		r := NewStringReader("only\n")
		_, _ = r.ReadString('\n')

		_, err := r.ReadString('\n')
		if err != io.EOF {
			t.Errorf("expected io.EOF, got %v", err)
		}
	})
}

func TestReadLineTimeout(t *testing.T) {
	t.Run("line arrives in time", func(t *testing.T) {
		r := NewStringReader("2\n")
		line, ok, err := ReadLineTimeout(r, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected ok=true")
		}
		if line != "2\n" {
			t.Errorf("expected '2\\n', got %q", line)
		}
	})

	t.Run("timeout fires", func(t *testing.T) {
		_, ok, err := ReadLineTimeout(&BlockingReader{}, 20*time.Millisecond)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected ok=false on timeout")
		}
	})

	t.Run("EOF treated as empty line", func(t *testing.T) {
		r := NewStringReader() // immediately EOF
		line, ok, err := ReadLineTimeout(r, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("EOF should count as a delivered (empty) line")
		}
		if line != "" {
			t.Errorf("expected empty line, got %q", line)
		}
	})
}
