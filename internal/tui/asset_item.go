package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/nordskill/medialib/internal/asset"
)

// AssetItem represents one catalog asset in the list.
type AssetItem struct {
	Asset    asset.Asset
	Selected bool
}

// FilterValue returns the string used for in-list filtering.
func (a AssetItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", a.Asset.ID, a.Asset.DisplayName(), a.Asset.Kind)
}

// assetDelegate renders one asset per row: checkbox, status mark, name,
// kind tag and dimensions or duration when known.
type assetDelegate struct{}

func (d assetDelegate) Height() int  { return 1 }
func (d assetDelegate) Spacing() int { return 0 }

func (d assetDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d assetDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(AssetItem)
	if !ok {
		return
	}

	var s strings.Builder

	box := "[ ] "
	if ai.Selected {
		box = "[✓] "
	}

	mark := StyleOptimized.Render("●")
	if ai.Asset.Status == asset.StatusProcessing {
		mark = StyleProcessing.Render("◌")
	}

	name := fmt.Sprintf("%-36s", ansi.Truncate(ai.Asset.DisplayName(), 36, "…"))
	kind := StyleKind.Render("[" + string(ai.Asset.Kind) + "]")

	extra := ""
	if ai.Asset.Kind == asset.KindVideo && ai.Asset.Duration > 0 {
		extra = " " + StyleHelp.Render(formatDuration(ai.Asset.Duration))
	}

	line := box + mark + " " + name + " " + kind + extra
	if index == m.Index() {
		s.WriteString(StyleHighlight.Render("› " + line))
	} else {
		s.WriteString("  " + StyleNormal.Render(line))
	}

	_, _ = fmt.Fprint(w, s.String())
}

// formatDuration renders seconds as m:ss.
func formatDuration(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
