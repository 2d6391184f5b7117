package prefs

import (
	"path/filepath"
	"testing"
)

func TestDefaultsWhenMissing(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))
	if got := p.Float("zoomLevel", 1.0); got != 1.0 {
		t.Fatalf("missing float = %v, want fallback", got)
	}
	if got := p.String("lastProject"); got != "" {
		t.Fatalf("missing string = %q", got)
	}
	if got := p.Bool("showBeams", true); got != true {
		t.Fatalf("missing bool = %v, want fallback", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "preferences.json")

	p := LoadFrom(path)
	p.SetFloat("zoomLevel", 1.5625)
	p.SetString("lastProject", "/scores/etude.score")
	p.SetBool("showBeams", true)
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	q := LoadFrom(path)
	if got := q.Float("zoomLevel", 1.0); got != 1.5625 {
		t.Fatalf("zoom = %v", got)
	}
	if got := q.String("lastProject"); got != "/scores/etude.score" {
		t.Fatalf("last project = %q", got)
	}
	if !q.Bool("showBeams", false) {
		t.Fatal("showBeams lost")
	}
}

func TestWrongTypeFallsBack(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))
	p.SetString("zoomLevel", "not a number")
	if got := p.Float("zoomLevel", 2.0); got != 2.0 {
		t.Fatalf("mistyped float = %v, want fallback", got)
	}
}
