package xerr

import (
	"errors"
	"testing"
)

func TestErrorIsComparesKindOnly(t *testing.T) {
	e1 := New(EmptyRoute, "route %d is empty", 3)
	e2 := New(EmptyRoute, "a different message entirely")
	if !errors.Is(e1, e2) {
		t.Fatalf("expected errors of the same kind to match via errors.Is")
	}
	if !errors.Is(e1, ErrEmptyRoute) {
		t.Fatalf("expected error to match its sentinel")
	}
}

func TestErrorIsRejectsDifferentKind(t *testing.T) {
	e := New(EmptyRoute, "x")
	if errors.Is(e, ErrMalformedRoute) {
		t.Fatalf("errors of different kinds must not match")
	}
}

func TestErrorString(t *testing.T) {
	e := New(Overflow, "salt overflow")
	if e.Error() != "Overflow: salt overflow" {
		t.Fatalf("unexpected error string: %q", e.Error())
	}

	bare := &Error{Kind: PlayerDead}
	if bare.Error() != "PlayerDead" {
		t.Fatalf("unexpected bare error string: %q", bare.Error())
	}
}

func TestKindString(t *testing.T) {
	if Unreachable.String() != "Unreachable" {
		t.Fatalf("unexpected kind string: %q", Unreachable.String())
	}
	if Kind(999).String() != "Unknown" {
		t.Fatalf("expected unrecognized kind to stringify as Unknown")
	}
}
