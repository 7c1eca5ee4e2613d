package tui

import (
	"testing"

	"github.com/nordskill/medialib/internal/asset"
)

func TestNextFilterCycles(t *testing.T) {
	cases := []struct{ in, want asset.Kind }{
		{"", asset.KindImage},
		{asset.KindImage, asset.KindVideo},
		{asset.KindVideo, ""},
	}
	for _, c := range cases {
		if got := nextFilter(c.in); got != c.want {
			t.Errorf("nextFilter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.4, "0:00"},
		{9.6, "0:10"},
		{61, "1:01"},
		{3600, "60:00"},
	}
	for _, c := range cases {
		if got := formatDuration(c.in); got != c.want {
			t.Errorf("formatDuration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFilterLabel(t *testing.T) {
	if got := filterLabel(""); got != "all" {
		t.Errorf("filterLabel(\"\") = %q, want all", got)
	}
	if got := filterLabel(asset.KindVideo); got != "video" {
		t.Errorf("filterLabel(video) = %q", got)
	}
}
