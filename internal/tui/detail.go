package tui

import (
	"fmt"
	"strings"

	"github.com/nordskill/medialib/internal/asset"
)

// renderDetail renders the single-asset inspection overlay.
func renderDetail(a asset.Asset) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(a.DisplayName()))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleHelp.Render(fmt.Sprintf("%-10s", label)), value))
	}

	row("id", a.ID)
	row("kind", string(a.Kind))
	if a.Status == asset.StatusProcessing {
		row("status", StyleProcessing.Render(string(a.Status)))
	} else {
		row("status", StyleOptimized.Render(string(a.Status)))
	}
	row("extension", a.Extension)
	row("alt", a.Alt)
	row("hash", a.Hash)
	if a.Kind == asset.KindVideo && a.Duration > 0 {
		row("duration", formatDuration(a.Duration))
	}
	if len(a.Sizes) > 0 {
		sizes := make([]string, len(a.Sizes))
		for i, s := range a.Sizes {
			sizes[i] = fmt.Sprintf("%d", s)
		}
		row("sizes", strings.Join(sizes, ", "))
	}

	b.WriteString("\n")
	b.WriteString(StyleHelp.Render("press any key to close"))
	return b.String()
}
