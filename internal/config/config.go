package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/nao1215/robotsmeta/internal/render"
	"github.com/nao1215/robotsmeta/internal/report"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "robotsmeta"

	// DefaultConcurrency is the number of pages rendered in parallel.
	DefaultConcurrency = 10

	// DefaultAddr is the listen address of the preview server.
	DefaultAddr = ":8080"

	// FormatHTML writes bare tags.
	FormatHTML = report.FormatHTML

	// FormatJSON writes an array of {path, info, tags} objects.
	FormatJSON = report.FormatJSON

	// FormatMarkdown writes a Markdown summary followed by the tags.
	FormatMarkdown = report.FormatMarkdown
)

// Config holds all options for a robotsmeta run. It is populated from CLI
// flags and passed down explicitly.
type Config struct {
	// Style is the void element style name (html, xml, xml-compact).
	// Empty means the style from the configuration file, or html.
	Style string

	// ImplicitAdvices appends index and follow to the robots advices unless
	// they are cancelled.
	ImplicitAdvices bool

	// Concurrency is the number of pages rendered at the same time.
	Concurrency int

	// Format is the output format: html, json or markdown.
	Format string

	// JSONReport is a shortcut for Format = json.
	JSONReport bool

	// MarkdownReport is a shortcut for Format = markdown.
	MarkdownReport bool

	// OutputFile is the file the output is written to. Empty means stdout.
	OutputFile string

	// ConfigFilePath is the path to the page file. Empty means FindConfigFile
	// searches the default locations.
	ConfigFilePath string

	// DBDir is the directory holding the catalog database.
	DBDir string

	// FromCatalog reads pages from the catalog instead of the page file.
	FromCatalog bool

	// Addr is the listen address of the preview server.
	Addr string

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
		Format:      FormatHTML,
		DBDir:       XDGDataDir(),
		Addr:        DefaultAddr,
	}
}

// XDGDataDir returns the XDG data directory for robotsmeta.
// On Linux: ~/.local/share/robotsmeta
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for robotsmeta.
// On Linux: ~/.config/robotsmeta
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingFormats
	}

	if c.Format != "" && !slices.Contains(report.Formats(), c.Format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}

	if (c.JSONReport && c.Format != "" && c.Format != FormatHTML && c.Format != FormatJSON) ||
		(c.MarkdownReport && c.Format != "" && c.Format != FormatHTML && c.Format != FormatMarkdown) {
		return ErrConflictingFormats
	}

	if c.Style != "" {
		if _, err := render.ParseVoidElementStyle(c.Style); err != nil {
			return err
		}
	}

	return nil
}

// OutputFormat resolves the format flags to html, json or markdown.
func (c *Config) OutputFormat() string {
	switch {
	case c.JSONReport:
		return FormatJSON
	case c.MarkdownReport:
		return FormatMarkdown
	case c.Format == "":
		return FormatHTML
	default:
		return c.Format
	}
}

// RenderStyle returns the style to render with. The --style flag wins over
// the style in file; file may be nil.
func (c *Config) RenderStyle(file *File) (render.Style, error) {
	name := c.Style
	if name == "" && file != nil {
		name = file.Style
	}
	if name == "" {
		return render.NewStyle(), nil
	}

	v, err := render.ParseVoidElementStyle(name)
	if err != nil {
		return render.Style{}, err
	}
	return render.NewStyle().WithVoidElementStyle(v), nil
}

// UseImplicitAdvices reports whether implicit advices are applied, either by
// flag or by the configuration file.
func (c *Config) UseImplicitAdvices(file *File) bool {
	return c.ImplicitAdvices || (file != nil && file.ImplicitAdvices)
}
