package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	err := New(CodeCatalogFormatInvalid, "header unreadable")
	if got := CodeOf(err); got != CodeCatalogFormatInvalid {
		t.Fatalf("expected format code, got %s", got)
	}

	wrapped := fmt.Errorf("load catalog: %w", err)
	if got := CodeOf(wrapped); got != CodeCatalogFormatInvalid {
		t.Fatalf("expected code through wrapping, got %s", got)
	}

	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected unknown code, got %s", got)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("bad quoting")
	err := Wrap(CodeCatalogFormatInvalid, "parse csv", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to satisfy errors.Is")
	}
	if err.Error() != "parse csv: bad quoting" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
