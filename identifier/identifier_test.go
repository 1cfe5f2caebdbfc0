package identifier_test

import (
	"errors"
	"testing"

	"github.com/blockkv/blockkv/berr"
	"github.com/blockkv/blockkv/identifier"
)

func TestNormalize(t *testing.T) {
	got, err := identifier.Normalize("/Users/Johnny/123_hello", '\\')
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := `\users\johnny\123_hello`
	if got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeDisallowedCharacter(t *testing.T) {
	if _, err := identifier.Normalize("C:/Users/Johnny", '/'); !errors.Is(err, berr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNormalizeDoubleSlash(t *testing.T) {
	if _, err := identifier.Normalize("a//b", '/'); !errors.Is(err, berr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once, err := identifier.Normalize("Some/Path_1", '/')
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	twice, err := identifier.Normalize(once, '/')
	if err != nil {
		t.Fatalf("Normalize (second pass): %v", err)
	}
	if once != twice {
		t.Fatalf("Normalize not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if _, err := identifier.Normalize("", '/'); !errors.Is(err, berr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty identifier, got %v", err)
	}
}
