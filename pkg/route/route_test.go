package route

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/xixizk/pkg/xerr"
)

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse(nil)
	if !errors.Is(err, xerr.ErrEmptyRoute) {
		t.Fatalf("expected EmptyRoute, got %v", err)
	}
}

func TestParseRejectsNonMultipleOfFour(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3})
	if !errors.Is(err, xerr.ErrMalformedRoute) {
		t.Fatalf("expected MalformedRoute, got %v", err)
	}
}

func TestParseRejectsMissingTerminator(t *testing.T) {
	buf := Encode([]uint32{5, 6})
	buf = buf[:len(buf)-4] // drop the terminator word
	_, err := Parse(buf)
	if !errors.Is(err, xerr.ErrMissingTerminator) {
		t.Fatalf("expected MissingTerminator, got %v", err)
	}
}

func TestParseKeepsTerminatorAsFinalStep(t *testing.T) {
	ids, err := Parse(Encode([]uint32{7, 2, 9}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint32{7, 2, 9, 1}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

func TestRouteRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xs := rapid.SliceOf(rapid.Uint32()).Draw(t, "xs")
		want := append(append([]uint32{}, xs...), 1)
		got, err := Parse(Encode(xs))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("mismatch at %d: got %d want %d", i, got[i], want[i])
			}
		}
	})
}

func TestParseRejectsEveryNonMultipleOfFourLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 64).Filter(func(n int) bool { return n%4 != 0 }).Draw(t, "n")
		buf := make([]byte, n)
		_, err := Parse(buf)
		if !errors.Is(err, xerr.ErrMalformedRoute) {
			t.Fatalf("expected MalformedRoute for length %d, got %v", n, err)
		}
	})
}
