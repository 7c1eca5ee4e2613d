package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nordskill/medialib/internal/api"
	"github.com/nordskill/medialib/internal/config"
	"github.com/nordskill/medialib/internal/util"
)

var (
	cfg    *config.Config
	client *api.Client
	logger *zap.Logger

	flagNoColor       bool
	flagNoInteractive bool
	flagVerbose       bool
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "medialib",
	Short: "Browse, upload and manage a remote media asset library",
	Long: `medialib is a terminal client for a media asset server.

It lists the asset catalog page by page, uploads images and videos with
locally extracted metadata, and tracks server-side optimization until
each asset is ready.

Run 'medialib' with no arguments to launch the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagNoInteractive && util.IsTTY() {
			return runBrowse(cmd, nil)
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/medialib/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		if flagConfig != "" {
			os.Setenv("MEDIALIB_CONFIG", flagConfig)
		}

		var err error
		logger, err = buildLogger(flagVerbose)
		if err != nil {
			return err
		}

		// init runs without an existing config.
		if cmd.Name() == "init" {
			cfg, _ = config.Load()
			return nil
		}

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client = api.New(cfg.API.BaseURL, cfg.API.Token)
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newInitCmd(),
		newBrowseCmd(),
		newListCmd(),
		newInfoCmd(),
		newUploadCmd(),
		newDeleteCmd(),
		newPickCmd(),
		newVersionCmd(),
	)
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l, nil
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
