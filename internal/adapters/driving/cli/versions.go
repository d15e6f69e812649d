package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

var trackVersionCmd = &cobra.Command{
	Use:     "track-version [document]",
	Aliases: []string{"save-current-version"},
	Short:   "Save a snapshot of a document",
	Long: `Save the current content of a vault document as a new snapshot in the
version folder. Snapshots are never overwritten; each one is named
"{document}_v{epoch-millis}.md".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrackVersion,
}

var viewVersionsCmd = &cobra.Command{
	Use:   "view-versions [document]",
	Short: "List saved snapshots, oldest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runViewVersions,
}

func init() {
	trackVersionCmd.Flags().String("doc", "", "vault path of the active document")
	viewVersionsCmd.Flags().String("folder", "", "version folder (default from settings)")
	viewVersionsCmd.Flags().Bool("content", false, "print the content of the latest snapshot")
	rootCmd.AddCommand(trackVersionCmd)
	rootCmd.AddCommand(viewVersionsCmd)
}

func runTrackVersion(cmd *cobra.Command, args []string) error {
	if versionService == nil {
		return errNotConfigured("version service")
	}
	doc := activeDocument(cmd, args)
	if doc == "" {
		return shown(cmd, domain.NoticeNoActiveFile, domain.ErrNoActiveDocument)
	}

	notice(cmd, domain.NoticeSavingVersion)
	snap, err := versionService.SaveDocument(cmd.Context(), doc, time.Now().UnixMilli())
	if err != nil {
		return shown(cmd, domain.NoticeFor(err), err)
	}
	notice(cmd, domain.NoticeVersionSaved)
	cmd.Printf("  %s\n", snap.Path)
	return nil
}

func runViewVersions(cmd *cobra.Command, args []string) error {
	if versionService == nil {
		return errNotConfigured("version service")
	}
	folder, _ := cmd.Flags().GetString("folder")
	if folder == "" && settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			folder = s.VersionFolder
		}
	}
	if folder == "" {
		folder = domain.DefaultVersionFolder
	}

	var (
		listing domain.VersionListing
		err     error
	)
	if len(args) == 1 {
		listing, err = versionService.ListVersionsFor(cmd.Context(), folder, domain.DocumentTitle(args[0]))
	} else {
		listing, err = versionService.ListVersions(cmd.Context(), folder)
	}
	if err != nil {
		return err
	}
	if listing.Empty() {
		notice(cmd, domain.NoticeNoVersionHistory)
		return nil
	}

	cmd.Println("Version History:")
	for _, v := range listing.Versions {
		cmd.Printf("  %s  %s\n", time.UnixMilli(v.CreatedAt).Format(time.DateTime), v.DerivedName)
	}

	showContent, _ := cmd.Flags().GetBool("content")
	if showContent {
		latest := listing.Versions[len(listing.Versions)-1]
		snap, err := versionService.ReadVersion(cmd.Context(), folder, domain.VersionFileName(latest.BaseName, latest.CreatedAt))
		if err != nil {
			return err
		}
		cmd.Println()
		cmd.Print(snap.Content)
	}
	return nil
}

// activeDocument returns the document named by the first argument or --doc.
func activeDocument(cmd *cobra.Command, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	doc, _ := cmd.Flags().GetString("doc")
	return doc
}
