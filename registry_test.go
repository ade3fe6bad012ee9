package sdif

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/sdif/internal/testutil/testlog"
)

func TestBuiltinRegistryLookup(t *testing.T) {
	testlog.Start(t)
	reg := BuiltinRegistry()
	ft, ok := reg.FrameType(SigTRC)
	if !ok || ft.Description != "sinusoidal tracks" {
		t.Fatalf("1TRC frame lookup: %+v ok=%v", ft, ok)
	}
	mt, ok := reg.MatrixType(SigTRC)
	if !ok || len(mt.Columns) != 4 || mt.Columns[1] != "Frequency" {
		t.Fatalf("1TRC matrix lookup: %+v ok=%v", mt, ok)
	}
	if _, ok := reg.FrameType(MustSignature("XFAB")); ok {
		t.Fatalf("fabricated tag should be unknown")
	}
}

func TestWithTypesDoesNotMutateReceiver(t *testing.T) {
	testlog.Start(t)
	base := BuiltinRegistry()
	ext := base.WithTypes(
		[]FrameType{{MustSignature("XFAB"), "fabricated"}},
		[]MatrixType{{MustSignature("XFAB"), "fabricated", []string{"A", "B"}}},
	)
	if _, ok := ext.FrameType(MustSignature("XFAB")); !ok {
		t.Fatalf("extension missing from derived registry")
	}
	if _, ok := base.FrameType(MustSignature("XFAB")); ok {
		t.Fatalf("base registry mutated by extension")
	}
}

func TestWithTOML(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "types.toml")
	content := `
[[frame]]
signature = "XPRT"
description = "partial export"

[[matrix]]
signature = "XPRT"
description = "partial export"
columns = ["Index", "Frequency"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	reg, err := BuiltinRegistry().WithTOML(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mt, ok := reg.MatrixType(MustSignature("XPRT"))
	if !ok || len(mt.Columns) != 2 {
		t.Fatalf("XPRT lookup: %+v ok=%v", mt, ok)
	}
	// Builtins still present.
	if _, ok := reg.FrameType(SigFQ0); !ok {
		t.Fatalf("builtin lost after extension")
	}
}

func TestWithTOMLBadSignature(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "types.toml")
	if err := os.WriteFile(path, []byte("[[frame]]\nsignature = \"TOOLONG\"\n"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if _, err := BuiltinRegistry().WithTOML(path); err == nil {
		t.Fatalf("expected error for 7-character signature")
	}
}
