package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eliseohh/demobot/internal/config"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "demobot",
		Short: "Demo Telegram bot: commands, keyboards, media and polls",
		Long: `demobot answers a fixed set of commands (/start, /help, /keyboard,
/photo, /document, /poll), inline button presses, and text, photo and
document messages.

Running without a subcommand is the same as "demobot run".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to the TOML config file")

	root.AddCommand(
		newRunCmd(opts),
		newTokenCmd(),
		newJournalCmd(opts),
		newOutboxCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "demobot %s\n", version)
		},
	}
}
