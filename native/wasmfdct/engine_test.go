package wasmfdct

import (
	"context"
	"testing"
)

func TestOpenRejectsInvalidModule(t *testing.T) {
	if _, err := Open(context.Background(), []byte("not wasm")); err == nil {
		t.Fatal("expected error for invalid module bytes")
	}
}

func TestOpenRejectsEmptyModule(t *testing.T) {
	if _, err := Open(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty module bytes")
	}
}

// Minimal valid module with no exports: resolution must fail on the missing
// memory export, not panic.
func TestOpenRejectsModuleWithoutExports(t *testing.T) {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	_, err := Open(context.Background(), header)
	if err == nil {
		t.Fatal("expected error for module without exports")
	}
}
