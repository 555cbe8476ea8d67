package core

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestInvalidArgumentf_WrapsSentinel(t *testing.T) {
	err := InvalidArgumentf("unknown store type %q", "bogus")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected message to name the value, got %q", err.Error())
	}
}

func TestIOError_Unwrap(t *testing.T) {
	err := error(&IOError{Op: "append", Path: "tmp/history.jsonl", Err: os.ErrNotExist})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "append" {
		t.Fatalf("errors.As failed: %v", err)
	}
	if !strings.Contains(err.Error(), "tmp/history.jsonl") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}
