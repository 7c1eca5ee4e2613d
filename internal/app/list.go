package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nordskill/medialib/internal/api"
	"github.com/nordskill/medialib/internal/asset"
)

func newListCmd() *cobra.Command {
	var (
		flagType string
		flagPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog assets non-interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(flagType)
			if err != nil {
				return err
			}

			res, err := client.List(cmd.Context(), kind, flagPage)
			if err != nil {
				return fmt.Errorf("listing assets: %w", err)
			}

			pages := (res.TotalCount + api.PageSize - 1) / api.PageSize
			header("Assets — page %d/%d (%d total)", flagPage, pages, res.TotalCount)
			for _, a := range res.Files {
				printAssetRow(a)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flagType, "type", "t", "", "Filter by kind: image or video")
	cmd.Flags().IntVarP(&flagPage, "page", "p", 1, "Page to fetch")
	return cmd
}

func printAssetRow(a asset.Asset) {
	mark := color.GreenString("●")
	if a.Status == asset.StatusProcessing {
		mark = color.YellowString("◌")
	}
	extra := ""
	if a.Kind == asset.KindVideo && a.Duration > 0 {
		extra = fmt.Sprintf("  %.1fs", a.Duration)
	}
	fmt.Printf("%s %-26s %-40s %s%s\n", mark, a.ID, a.DisplayName(), color.CyanString("[%s]", a.Kind), extra)
}
