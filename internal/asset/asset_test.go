package asset_test

import (
	"testing"

	"github.com/nordskill/medialib/internal/asset"
)

func sample() []asset.Asset {
	return []asset.Asset{
		{ID: "a1", Kind: asset.KindImage, Status: asset.StatusOptimized, Name: "sunset", Extension: "jpg"},
		{ID: "a2", Kind: asset.KindVideo, Status: asset.StatusProcessing, Name: "intro", Extension: "mp4"},
		{ID: "a3", Kind: asset.KindImage, Status: asset.StatusOptimized, Name: "logo", Extension: "png"},
	}
}

func TestByID_Found(t *testing.T) {
	a := asset.ByID(sample(), "a2")
	if a == nil {
		t.Fatal("ByID returned nil for existing asset")
	}
	if a.Name != "intro" {
		t.Errorf("Name = %q, want %q", a.Name, "intro")
	}
}

func TestByID_NotFound(t *testing.T) {
	if a := asset.ByID(sample(), "missing"); a != nil {
		t.Errorf("ByID returned non-nil for missing asset: %v", a)
	}
}

func TestRemove(t *testing.T) {
	out := asset.Remove(sample(), []string{"a2"})
	if len(out) != 2 {
		t.Fatalf("expected 2 assets after remove, got %d", len(out))
	}
	if out[0].ID != "a1" || out[1].ID != "a3" {
		t.Errorf("order not preserved: %v", asset.IDs(out))
	}
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	out := asset.Remove(sample(), []string{"nope"})
	if len(out) != 3 {
		t.Errorf("expected 3 assets, got %d", len(out))
	}
}

func TestKindForMIME(t *testing.T) {
	cases := []struct {
		mime string
		kind asset.Kind
		ok   bool
	}{
		{"image/jpeg", asset.KindImage, true},
		{"image/png", asset.KindImage, true},
		{"video/mp4", asset.KindVideo, true},
		{"application/pdf", "", false},
		{"text/plain", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		kind, ok := asset.KindForMIME(c.mime)
		if kind != c.kind || ok != c.ok {
			t.Errorf("KindForMIME(%q) = (%q, %v), want (%q, %v)", c.mime, kind, ok, c.kind, c.ok)
		}
	}
}

func TestKindForExtension(t *testing.T) {
	cases := []struct {
		ext  string
		kind asset.Kind
		ok   bool
	}{
		{"jpg", asset.KindImage, true},
		{"JPEG", asset.KindImage, true},
		{"mp4", asset.KindVideo, true},
		{"webm", asset.KindVideo, true},
		{"pdf", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		kind, ok := asset.KindForExtension(c.ext)
		if kind != c.kind || ok != c.ok {
			t.Errorf("KindForExtension(%q) = (%q, %v), want (%q, %v)", c.ext, kind, ok, c.kind, c.ok)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if asset.StatusProcessing.Terminal() {
		t.Error("processing should not be terminal")
	}
	if !asset.StatusOptimized.Terminal() {
		t.Error("optimized should be terminal")
	}
}

func TestDisplayName(t *testing.T) {
	a := asset.Asset{Name: "sunset", Extension: "jpg"}
	if got := a.DisplayName(); got != "sunset.jpg" {
		t.Errorf("DisplayName = %q, want %q", got, "sunset.jpg")
	}
	b := asset.Asset{Name: "raw"}
	if got := b.DisplayName(); got != "raw" {
		t.Errorf("DisplayName without extension = %q, want %q", got, "raw")
	}
}
