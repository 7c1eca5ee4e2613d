package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordskill/medialib/internal/util"
)

func newDeleteCmd() *cobra.Command {
	var flagYes bool

	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete assets from the library",
		Long: `Delete removes the given assets in one batched request. The server
reports which ids it actually deleted; anything it kept is listed so
nothing disappears from view without being gone remotely.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flagYes {
				if !util.IsTTY() {
					return fmt.Errorf("refusing to delete without --yes in non-interactive mode")
				}
				fmt.Printf("Delete %d asset(s)? (y/N): ", len(args))
				var response string
				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" && response != "yes" {
					warn("cancelled")
					return nil
				}
			}

			deleted, err := client.Delete(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("deleting assets: %w", err)
			}

			confirmed := make(map[string]bool, len(deleted))
			for _, id := range deleted {
				confirmed[id] = true
				ok("deleted %s", id)
			}
			for _, id := range args {
				if !confirmed[id] {
					warn("server kept %s", id)
				}
			}
			if len(deleted) < len(args) {
				return fmt.Errorf("%d of %d asset(s) not deleted", len(args)-len(deleted), len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
