package input

import (
	"bufio"
	"io"
	"os"
	"time"
)

// Reader is an interface for reading user input
type Reader interface {
	ReadString(delim byte) (string, error)
}

// StdinReader wraps bufio.Reader for os.Stdin
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a new StdinReader
func NewStdinReader() *StdinReader {
	return &StdinReader{
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadString reads until delimiter
func (r *StdinReader) ReadString(delim byte) (string, error) {
	return r.reader.ReadString(delim)
}

// ReadLineTimeout reads one line from r, giving up after the timeout.
// It returns ok=false when the timeout fired before a line arrived.
// The pending read is abandoned, not cancelled; the goroutine exits
// once stdin eventually delivers a line or closes.
func ReadLineTimeout(r Reader, timeout time.Duration) (line string, ok bool, err error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		l, e := r.ReadString('\n')
		ch <- result{line: l, err: e}
	}()

	select {
	case res := <-ch:
		if res.err != nil && res.err != io.EOF {
			return "", false, res.err
		}
		return res.line, true, nil
	case <-time.After(timeout):
		return "", false, nil
	}
}

// StringReader is a simple reader for testing.
// Each input string should already include the delimiter that will be used
// in ReadString calls (e.g., "yes\n" for newline delimiter).
type StringReader struct {
	inputs []string
	index  int
}

// NewStringReader creates a reader from strings.
// Each input string should include the expected delimiter.
func NewStringReader(inputs ...string) *StringReader {
	return &StringReader{inputs: inputs}
}

// ReadString returns the next pre-configured string.
// Returns io.EOF when all inputs have been consumed.
// Note: The delim parameter is ignored; inputs should already include delimiters.
func (r *StringReader) ReadString(delim byte) (string, error) {
	if r.index >= len(r.inputs) {
		return "", io.EOF
	}
	result := r.inputs[r.index]
	r.index++
	return result, nil
}

// BlockingReader never returns; it simulates a user who walks away
// from the prompt. For timeout tests.
type BlockingReader struct{}

// ReadString blocks forever.
func (r *BlockingReader) ReadString(delim byte) (string, error) {
	select {}
}
