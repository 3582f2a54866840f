package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "snapshot.load",
		Kind: KindCorruptSnapshot,
		Path: "/tmp/registry.json",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindCorruptSnapshot {
		t.Fatalf("expected kind %s", KindCorruptSnapshot)
	}
	if !strings.Contains(err.Error(), "path=/tmp/registry.json") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestIsKindForOpError(t *testing.T) {
	err := &OpError{
		Op:   "config.load",
		Kind: KindInvalidConfig,
	}

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match op error")
	}
	if IsKind(errors.New("plain"), KindInvalidConfig) {
		t.Fatalf("expected plain error not to match")
	}
}

func TestNewFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewFetchError("registry.refresh", cause)

	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch in chain")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if !IsKind(err, KindFetch) {
		t.Fatalf("expected KindFetch")
	}
}

func TestOpErrorNilReceiver(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("expected <nil>, got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
