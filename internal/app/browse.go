package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordskill/medialib/internal/asset"
	"github.com/nordskill/medialib/internal/library"
	"github.com/nordskill/medialib/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the asset catalog interactively",
		Args:  cobra.NoArgs,
		RunE:  runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctrl := newController()
	defer ctrl.Close()
	return tui.RunBrowser(cmd.Context(), ctrl)
}

// newController assembles a library controller from the loaded config.
// Every interactive session gets its own instance.
func newController() *library.Controller {
	return library.New(client,
		library.WithLogger(logger),
		library.WithPollInterval(cfg.Upload.EffectivePollInterval(library.DefaultPollInterval)),
		library.WithUploadWorkers(cfg.Upload.EffectiveConcurrency(library.DefaultUploadWorkers)),
	)
}

// parseKind validates a --type flag value.
func parseKind(s string) (asset.Kind, error) {
	switch s {
	case "", "all":
		return "", nil
	case "image":
		return asset.KindImage, nil
	case "video":
		return asset.KindVideo, nil
	default:
		return "", fmt.Errorf("unknown type %q (want image or video)", s)
	}
}
