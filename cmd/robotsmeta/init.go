package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/robotsmeta/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/robotsmeta.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new robotsmeta page file",
		Long: `Initialize creates a new .robotsmeta page file in the current directory.

The generated file includes:
- The default void element style
- A defaults section merged under every page
- Commented examples of pages with advices, alternates and Google settings

Examples:
  # Create .robotsmeta in current directory
  robotsmeta init

  # Create the file at a specific path
  robotsmeta init -o site/pages.yaml

  # Force overwrite existing file
  robotsmeta init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the page file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing page file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("page file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/robotsmeta.yaml")
	if err != nil {
		return fmt.Errorf("failed to read page file template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write page file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created page file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to describe your pages:")
	fmt.Fprintln(out, "  - Canonical URLs and alternate languages")
	fmt.Fprintln(out, "  - Robots advices such as noindex or nofollow")
	fmt.Fprintln(out, "  - Descriptions, keywords and Google features to disable")

	return nil
}
