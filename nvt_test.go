package sdif

import (
	"testing"

	"github.com/danmuck/sdif/internal/testutil/testlog"
)

func TestNameValueTableRoundTrip(t *testing.T) {
	testlog.Start(t)
	in := NewNameValueTable()
	for _, kv := range [][2]string{
		{"Creator", "sdif-go"},
		{"Date", "2026-08-29"},
		{"SampleRate", "44100"},
	} {
		if err := in.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("set %q: %v", kv[0], err)
		}
	}

	m := in.Matrix()
	if m.Signature != SigNVT || m.Type != Text || m.Cols != 1 {
		t.Fatalf("unexpected matrix header %+v", m)
	}

	out, err := ParseNameValueTable(m)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.Len() != 3 {
		t.Fatalf("entries=%d", out.Len())
	}
	if v, ok := out.Get("SampleRate"); !ok || v != "44100" {
		t.Fatalf("SampleRate=%q ok=%v", v, ok)
	}
	names := out.Names()
	if names[0] != "Creator" || names[2] != "SampleRate" {
		t.Fatalf("order lost: %v", names)
	}
}

func TestNameValueTableSetRejectsDelimiters(t *testing.T) {
	testlog.Start(t)
	tbl := NewNameValueTable()
	if err := tbl.Set("bad\tname", "v"); err == nil {
		t.Fatalf("tab in name accepted")
	}
	if err := tbl.Set("name", "bad;value"); err == nil {
		t.Fatalf("semicolon in value accepted")
	}
	if err := tbl.Set("", "v"); err == nil {
		t.Fatalf("empty name accepted")
	}
}

func TestParseNameValueTableMalformedRow(t *testing.T) {
	testlog.Start(t)
	m := NewTextMatrix(SigNVT, "NoTabHere;\n")
	if _, err := ParseNameValueTable(m); err == nil {
		t.Fatalf("expected error for row without tab")
	}
}

func TestNameValueTableFrameThroughCodec(t *testing.T) {
	testlog.Start(t)
	tbl := NewNameValueTable()
	if err := tbl.Set("Creator", "test"); err != nil {
		t.Fatalf("set: %v", err)
	}
	buf, err := encodeFrame(tbl.Frame(), DefaultLimits())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f, err := parseFrameBody(SigNVT, buf[8:], DefaultLimits())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := ParseNameValueTable(f.Matrices[0])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v, _ := out.Get("Creator"); v != "test" {
		t.Fatalf("Creator=%q", v)
	}
}
