package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nordskill/medialib/internal/api"
	"github.com/nordskill/medialib/internal/asset"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Show one asset's full metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := client.Get(cmd.Context(), args[0])
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("asset %q not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("fetching asset: %w", err)
			}

			header("%s", a.DisplayName())
			row := func(label, value string) {
				if value != "" {
					fmt.Printf("  %-10s %s\n", label, value)
				}
			}
			row("id", a.ID)
			row("kind", string(a.Kind))
			row("status", string(a.Status))
			row("extension", a.Extension)
			row("alt", a.Alt)
			row("hash", a.Hash)
			if a.Kind == asset.KindVideo && a.Duration > 0 {
				row("duration", fmt.Sprintf("%.1fs", a.Duration))
			}
			if len(a.Sizes) > 0 {
				sizes := make([]string, len(a.Sizes))
				for i, s := range a.Sizes {
					sizes[i] = fmt.Sprintf("%d", s)
				}
				row("sizes", strings.Join(sizes, ", "))
			}
			return nil
		},
	}
}
