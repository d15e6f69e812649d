package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

var categoriesCmd = &cobra.Command{
	Use:     "manage-rule-categories",
	Aliases: []string{"categories"},
	Short:   "Manage rule categories",
	Long: `List and edit the rule taxonomy: categories and their subcategories.

Subcategories are kept sorted. Category order is the order they were added.
Every change is saved before the command returns.`,
	RunE: runCategoriesList,
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and subcategories",
	Args:  cobra.NoArgs,
	RunE:  runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add [category]",
	Short: "Add an empty category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if taxonomyService == nil {
			return errNotConfigured("taxonomy service")
		}
		if err := taxonomyService.AddCategory(args[0]); err != nil {
			return err
		}
		cmd.Printf("Added category %q.\n", strings.TrimSpace(args[0]))
		return nil
	},
}

var categoriesAddSubCmd = &cobra.Command{
	Use:   "add-sub [category] [subcategory]",
	Short: "Add a subcategory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if taxonomyService == nil {
			return errNotConfigured("taxonomy service")
		}
		if err := taxonomyService.AddSubcategory(args[0], args[1]); err != nil {
			return err
		}
		cmd.Printf("Added %q to %q.\n", strings.TrimSpace(args[1]), strings.TrimSpace(args[0]))
		return nil
	},
}

var categoriesRemoveCmd = &cobra.Command{
	Use:   "remove [category]",
	Short: "Remove a category and its subcategories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if taxonomyService == nil {
			return errNotConfigured("taxonomy service")
		}
		if err := taxonomyService.RemoveCategory(args[0]); err != nil {
			return err
		}
		cmd.Printf("Removed category %q.\n", strings.TrimSpace(args[0]))
		return nil
	},
}

var categoriesRemoveSubCmd = &cobra.Command{
	Use:   "remove-sub [category] [subcategory]",
	Short: "Remove a subcategory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if taxonomyService == nil {
			return errNotConfigured("taxonomy service")
		}
		if err := taxonomyService.RemoveSubcategory(args[0], args[1]); err != nil {
			return err
		}
		cmd.Printf("Removed %q from %q.\n", strings.TrimSpace(args[1]), strings.TrimSpace(args[0]))
		return nil
	},
}

var categoriesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Show categories whose name contains the query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if taxonomyService == nil {
			return errNotConfigured("taxonomy service")
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		matched := taxonomyService.Filter(query)
		if matched.IsEmpty() {
			cmd.Println("No matching categories.")
			return nil
		}
		printTaxonomy(cmd, matched)
		return nil
	},
}

var categoriesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if taxonomyService == nil {
			return errNotConfigured("taxonomy service")
		}
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("%w: reset replaces every category; pass --yes to confirm", domain.ErrInvalidInput)
		}
		if err := taxonomyService.Reset(); err != nil {
			return err
		}
		cmd.Println("Categories reset to defaults.")
		return nil
	},
}

var categoriesImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the taxonomy with a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if taxonomyService == nil || taxonomyCodec == nil {
			return errNotConfigured("taxonomy import")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		imported, err := taxonomyCodec.Decode(data)
		if err != nil {
			return err
		}
		if err := taxonomyService.Replace(imported); err != nil {
			return err
		}
		cmd.Printf("Imported %d categories.\n", imported.Len())
		return nil
	},
}

var categoriesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the taxonomy as YAML to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if taxonomyService == nil || taxonomyCodec == nil {
			return errNotConfigured("taxonomy export")
		}
		data, err := taxonomyCodec.Encode(taxonomyService.Snapshot())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", args[0], err)
		}
		cmd.Printf("Exported taxonomy to %s.\n", args[0])
		return nil
	},
}

func init() {
	categoriesResetCmd.Flags().Bool("yes", false, "confirm the reset")

	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesAddSubCmd)
	categoriesCmd.AddCommand(categoriesRemoveCmd)
	categoriesCmd.AddCommand(categoriesRemoveSubCmd)
	categoriesCmd.AddCommand(categoriesSearchCmd)
	categoriesCmd.AddCommand(categoriesResetCmd)
	categoriesCmd.AddCommand(categoriesImportCmd)
	categoriesCmd.AddCommand(categoriesExportCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	if taxonomyService == nil {
		return errNotConfigured("taxonomy service")
	}
	snap := taxonomyService.Snapshot()
	if snap.IsEmpty() {
		cmd.Println("No categories.")
		return nil
	}
	printTaxonomy(cmd, snap)
	return nil
}

// printTaxonomy prints one line per category with its subcategories indented.
func printTaxonomy(cmd *cobra.Command, t domain.Taxonomy) {
	for _, c := range t.Categories() {
		cmd.Println(c.Name)
		for _, sub := range c.Subcategories {
			cmd.Printf("  - %s\n", sub)
		}
	}
}
