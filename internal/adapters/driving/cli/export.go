package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

var (
	exportPDFCmd = newExportCmd(domain.ExportFormatPDF, "export-to-pdf", []string{"export-rules-pdf"},
		"Export rules to PDF", domain.NoticeExportedPDF)
	exportMarkdownCmd = newExportCmd(domain.ExportFormatMarkdown, "export-to-markdown", nil,
		"Export rules to Markdown", domain.NoticeExportedMarkdown)
	exportTextCmd = newExportCmd(domain.ExportFormatPlainText, "export-to-text", nil,
		"Export rules to plain text without code blocks", domain.NoticeExportedPlainText)

	// exportDefaultCmd uses the export.format setting.
	exportDefaultCmd = newExportCmd("", "export", nil,
		"Export rules in the default export format", "")
)

func init() {
	rootCmd.AddCommand(exportDefaultCmd)
	rootCmd.AddCommand(exportPDFCmd)
	rootCmd.AddCommand(exportMarkdownCmd)
	rootCmd.AddCommand(exportTextCmd)
}

// newExportCmd builds an export command for one format.
func newExportCmd(format domain.ExportFormat, use string, aliases []string, short string, done domain.Notice) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use + " [document]",
		Aliases: aliases,
		Short:   short,
		Long: fmt.Sprintf(`%s.

Without a document the whole rule taxonomy is exported. With a document its
content is exported. The file is written to the vault root, named after the
document (or "%s" for the taxonomy), and is never overwritten.
Use --out to write somewhere else.`, short, domain.TaxonomyExportTitle+format.Extension()),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, format, done)
		},
	}
	cmd.Flags().String("doc", "", "vault path of the active document")
	cmd.Flags().String("title", "", "output file name without extension")
	cmd.Flags().StringP("out", "o", "", "write to this file instead of the vault")
	cmd.Flags().Bool("open", false, "open the exported file")
	return cmd
}

func runExport(cmd *cobra.Command, args []string, format domain.ExportFormat, done domain.Notice) error {
	if exportService == nil {
		return errNotConfigured("export service")
	}
	if format == "" {
		format = defaultExportFormat()
		done = exportedNotice(format)
	}
	title, _ := cmd.Flags().GetString("title")
	out, _ := cmd.Flags().GetString("out")
	open, _ := cmd.Flags().GetBool("open")

	var job domain.ExportJob
	if doc := activeDocument(cmd, args); doc != "" {
		if documentStore == nil {
			return errNotConfigured("vault")
		}
		d, err := documentStore.ReadDocument(cmd.Context(), doc)
		if err != nil {
			return shown(cmd, domain.NoticeNoActiveView, fmt.Errorf("%w: %w", domain.ErrNoActiveDocument, err))
		}
		if title == "" {
			title = d.Title()
		}
		job = exportService.NewDocumentJob(format, title, d.Content)
	} else {
		job = exportService.NewTaxonomyJob(format, title)
	}

	if format == domain.ExportFormatPDF {
		notice(cmd, domain.NoticeExportingPDF)
	}

	var written string
	if out != "" {
		data, err := exportService.Export(cmd.Context(), job)
		if err != nil {
			return shown(cmd, domain.NoticeExportFailed, err)
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return shown(cmd, domain.NoticeExportFailed, fmt.Errorf("%w: write %s: %w", domain.ErrExportFailure, out, err))
		}
		written = out
	} else {
		name, err := exportService.ExportToVault(cmd.Context(), job)
		if err != nil {
			return shown(cmd, domain.NoticeExportFailed, err)
		}
		written = name
		if documentStore != nil {
			written = filepath.Join(documentStore.Root(), filepath.FromSlash(name))
		}
	}

	notice(cmd, done)
	cmd.Printf("  %s\n", written)

	if open {
		if actionService == nil {
			return errNotConfigured("file opener")
		}
		if err := actionService.OpenPath(written); err != nil {
			return fmt.Errorf("opening %s: %w", written, err)
		}
	}
	return nil
}

// defaultExportFormat returns the export.format setting, or the built-in
// default when settings are unavailable.
func defaultExportFormat() domain.ExportFormat {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.ExportFormat.IsValid() {
			return s.ExportFormat
		}
	}
	return domain.DefaultSettings().ExportFormat
}

func exportedNotice(format domain.ExportFormat) domain.Notice {
	switch format {
	case domain.ExportFormatMarkdown:
		return domain.NoticeExportedMarkdown
	case domain.ExportFormatPlainText:
		return domain.NoticeExportedPlainText
	default:
		return domain.NoticeExportedPDF
	}
}
