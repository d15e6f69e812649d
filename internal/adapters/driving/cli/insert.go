package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

var insertCmd = &cobra.Command{
	Use:   "insert-rule [category] [subcategory]",
	Short: "Insert a rule header and combat block",
	Long: `Build a rule for a category and subcategory and insert it into the
active document (--doc) at the selection or cursor marker, or at the end.

The rule is a "### Category: Subcategory" header followed by the Combat
Resolution block. Use --header-only to insert just the header.

The icon is taken from --icon, picked interactively with --pick, or left
out.`,
	Args: cobra.ExactArgs(2),
	RunE: runInsert,
}

func init() {
	insertCmd.Flags().String("doc", "", "vault path of the active document")
	insertCmd.Flags().String("icon", "", "icon name to embed in the combat block")
	insertCmd.Flags().Bool("pick", false, "choose the icon interactively")
	insertCmd.Flags().Bool("header-only", false, "insert only the rule header")
	insertCmd.Flags().Bool("print", false, "print the rule instead of inserting it")
	insertCmd.Flags().Bool("copy", false, "copy the rule to the clipboard")
	rootCmd.AddCommand(insertCmd)
}

func runInsert(cmd *cobra.Command, args []string) error {
	if inserterService == nil {
		return errNotConfigured("rule inserter")
	}
	category, subcategory := args[0], args[1]

	headerOnly, _ := cmd.Flags().GetBool("header-only")
	text, err := buildRule(cmd, category, subcategory, headerOnly)
	if err != nil {
		return err
	}

	printOnly, _ := cmd.Flags().GetBool("print")
	copyText, _ := cmd.Flags().GetBool("copy")
	if copyText {
		if actionService == nil {
			return errNotConfigured("clipboard")
		}
		if err := actionService.CopyToClipboard(text); err != nil {
			return fmt.Errorf("copying rule: %w", err)
		}
		cmd.Println("Rule copied to clipboard.")
	}
	if printOnly {
		cmd.Print(text)
		return nil
	}
	if copyText && !cmd.Flags().Changed("doc") {
		return nil
	}

	doc, _ := cmd.Flags().GetString("doc")
	if doc == "" || openSelection == nil {
		return shown(cmd, domain.NoticeNoActiveView, domain.ErrNoActiveDocument)
	}
	if err := inserterService.Insert(cmd.Context(), openSelection(doc), text); err != nil {
		if errors.Is(err, domain.ErrNoActiveDocument) {
			return shown(cmd, domain.NoticeNoActiveView, err)
		}
		return err
	}
	cmd.Printf("Inserted %s: %s into %s.\n", strings.TrimSpace(category), strings.TrimSpace(subcategory), doc)
	return nil
}

// buildRule returns the header alone, or the combat block that opens with it.
func buildRule(cmd *cobra.Command, category, subcategory string, headerOnly bool) (string, error) {
	if headerOnly {
		return inserterService.BuildHeader(category, subcategory)
	}
	if _, err := inserterService.BuildHeader(category, subcategory); err != nil {
		return "", err
	}
	icon, err := chooseIcon(cmd)
	if err != nil {
		return "", err
	}
	return inserterService.BuildCombatBlock(category, subcategory, icon)
}

// chooseIcon settles an icon choice request from the flags or a prompt.
func chooseIcon(cmd *cobra.Command) (domain.ChoiceResult, error) {
	result := domain.NoneChosen()
	req := inserterService.IconChoice(func(r domain.ChoiceResult) { result = r })

	name, _ := cmd.Flags().GetString("icon")
	pick, _ := cmd.Flags().GetBool("pick")

	switch {
	case name != "":
		idx := -1
		for i, opt := range req.Options {
			if opt.ID == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			req.Cancel()
			return result, fmt.Errorf("%w: unknown icon %q", domain.ErrInvalidInput, name)
		}
		req.Resolve(idx)
	case pick && len(req.Options) > 0 && term.IsTerminal(int(os.Stdin.Fd())):
		promptChoice(cmd, req)
	default:
		req.Cancel()
	}
	return result, nil
}

// promptChoice lists the options and resolves req with the user's pick.
// Empty or invalid input dismisses the request.
func promptChoice(cmd *cobra.Command, req *domain.ChoiceRequest) {
	cmd.Println(req.Prompt)
	for i, opt := range req.Options {
		cmd.Printf("  %d. %s\n", i+1, opt.Label)
	}
	cmd.Print("\nEnter choice (blank for none): ")

	reader := bufio.NewReader(cmd.InOrStdin())
	choice := parseChoice(readLine(reader), len(req.Options), 0)
	req.Resolve(choice - 1)
}

var formatCmd = &cobra.Command{
	Use:   "format [bold|italic|underline]",
	Short: "Format the selection of the active document",
	Long: `Wrap the selected text of the active document in bold (**x**),
italic (*x*) or underline (<u>x</u>) markup.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(driving.FormatBold), string(driving.FormatItalic), string(driving.FormatUnderline)},
	RunE:      runFormat,
}

func init() {
	formatCmd.Flags().String("doc", "", "vault path of the active document")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	if inserterService == nil {
		return errNotConfigured("rule inserter")
	}
	doc, _ := cmd.Flags().GetString("doc")
	if doc == "" || openSelection == nil {
		return shown(cmd, domain.NoticeNoActiveView, domain.ErrNoActiveDocument)
	}

	sel := openSelection(doc)
	text, err := sel.Selection(cmd.Context())
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("%w: nothing selected in %s", domain.ErrInvalidInput, doc)
	}

	formatted, err := inserterService.ApplyFormatting(driving.FormatStyle(args[0]), text)
	if err != nil {
		return err
	}
	if err := inserterService.Insert(cmd.Context(), sel, formatted); err != nil {
		return err
	}
	cmd.Printf("Applied %s to the selection.\n", args[0])
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
