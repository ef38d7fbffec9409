package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for robotsmeta.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "robotsmeta",
		Short: "Render crawler head tags for web pages",
		Long: `robotsmeta renders the <link> and <meta> tags that tell web crawlers how
to treat a page: canonical URL, robots advices, alternate links,
description, keywords and disabled Google features.

Pages are described in a .robotsmeta file (see "robotsmeta init") and can
be stored in a local catalog, rendered in bulk, or served by a preview
server that also sets the X-Robots-Tag header.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")

	// Add subcommands
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
