package dlerr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(KindNetwork, "timed out")
	if k, ok := KindOf(err); !ok || k != KindNetwork {
		t.Errorf("KindOf = (%v, %v), want (KindNetwork, true)", k, ok)
	}

	// Kind survives fmt.Errorf wrapping.
	wrapped := fmt.Errorf("fetch metadata: %w", err)
	if !IsKind(wrapped, KindNetwork) {
		t.Errorf("IsKind through wrap = false, want true")
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Errorf("KindOf(plain error) ok = true, want false")
	}
}

func TestFrom_PassesTaxonomyUnchanged(t *testing.T) {
	orig := New(KindAuth, "login required").WithHint("supply cookies")
	got := From(orig)
	if got != orig {
		t.Errorf("From should return the same taxonomy error, got %v", got)
	}
}

func TestFrom_PassesCancellation(t *testing.T) {
	for _, err := range []error{context.Canceled, context.DeadlineExceeded} {
		if got := From(err); !errors.Is(got, err) {
			t.Errorf("From(%v) = %v, want pass-through", err, got)
		}
		if _, ok := KindOf(From(err)); ok {
			t.Errorf("cancellation must not carry a taxonomy kind")
		}
	}
}

func TestFrom_WrapsUnknown(t *testing.T) {
	backend := errors.New("HTTP 500 from extractor")
	got := From(backend)
	if !IsKind(got, KindUnknown) {
		t.Fatalf("From(backend) kind = %v, want KindUnknown", got)
	}
	var e *Error
	if !errors.As(got, &e) || e.Message != backend.Error() {
		t.Errorf("original message not preserved: %v", got)
	}
	if !errors.Is(got, backend) {
		t.Errorf("cause chain lost")
	}
}

func TestFrom_Nil(t *testing.T) {
	if From(nil) != nil {
		t.Error("From(nil) should be nil")
	}
}

func TestErrorString(t *testing.T) {
	err := New(KindUnavailable, "video removed by uploader")
	want := "video unavailable: video removed by uploader"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
