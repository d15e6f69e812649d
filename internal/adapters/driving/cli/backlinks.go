package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

var viewBacklinksCmd = &cobra.Command{
	Use:   "view-backlinks [document]",
	Short: "List documents that link to a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runViewBacklinks,
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the vault link index",
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the link index current while the vault changes",
	Long: `Rebuild the link index, then watch the vault and update the index as
markdown files are created, changed and removed. Scheduled tasks run in
the background. Stop with Ctrl+C.`,
	Args:        cobra.NoArgs,
	Annotations: background,
	RunE:        runWatch,
}

func init() {
	viewBacklinksCmd.Flags().String("doc", "", "vault path of the active document")
	viewBacklinksCmd.Flags().Bool("reindex", false, "rebuild the link index first")
	rootCmd.AddCommand(viewBacklinksCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(watchCmd)
}

func runViewBacklinks(cmd *cobra.Command, args []string) error {
	if backlinkService == nil {
		return errNotConfigured("backlink service")
	}
	doc := activeDocument(cmd, args)
	if doc == "" {
		return shown(cmd, domain.NoticeNoActiveView, domain.ErrNoActiveDocument)
	}

	reindex, _ := cmd.Flags().GetBool("reindex")
	if reindex {
		if linkIndexService == nil {
			return errNotConfigured("link index")
		}
		if _, err := linkIndexService.Rebuild(cmd.Context()); err != nil {
			return err
		}
	}

	listing, err := backlinkService.Backlinks(cmd.Context(), doc)
	if err != nil {
		return err
	}
	if listing.Empty() {
		notice(cmd, domain.NoticeNoBacklinks)
		return nil
	}

	cmd.Println("Backlinks:")
	for _, link := range listing.Links {
		cmd.Printf("  %s (%s)\n", link.Title, link.Path)
	}
	return nil
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if linkIndexService == nil {
		return errNotConfigured("link index")
	}
	stats, err := linkIndexService.Rebuild(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Indexed %d documents, %d links", stats.Documents, stats.Links)
	if stats.Skipped > 0 {
		cmd.Printf(", %d skipped", stats.Skipped)
	}
	cmd.Printf(" in %s.\n", stats.Duration.Round(time.Millisecond))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := runIndex(cmd, args); err != nil {
		return err
	}
	cmd.Println("Watching for changes. Press Ctrl+C to stop.")
	return linkIndexService.Watch(cmd.Context())
}
