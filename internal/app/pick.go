package app

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nordskill/medialib/internal/tui"
)

func newPickCmd() *cobra.Command {
	var flagCopy bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick assets interactively and print their ids",
		Long: `Pick opens the catalog as a modal picker. Selected ids are printed
one per line, ready for piping into other commands. The picker runs its
own library session and leaves the main browser untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := newController()
			defer ctrl.Close()

			ids, err := tui.RunPicker(cmd.Context(), ctrl)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				warn("nothing picked")
				return nil
			}

			for _, id := range ids {
				fmt.Println(id)
			}
			if flagCopy {
				if err := clipboard.WriteAll(strings.Join(ids, "\n")); err != nil {
					warn("clipboard: %v", err)
				} else {
					ok("%d id(s) copied to clipboard", len(ids))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flagCopy, "copy", "c", false, "Also copy the ids to the clipboard")
	return cmd
}
