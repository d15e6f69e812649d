package services

import (
	"regexp"
	"strings"
)

const fence = "```"

// StripCodeBlocks removes every fenced code block, fences included.
//
// A block opens on a line starting with three backticks (an info string may
// follow) and closes on a line holding only three backticks. An opening
// fence with no closing fence is left as is. Everything outside blocks is
// kept byte for byte, so applying the function twice changes nothing.
func StripCodeBlocks(content string) string {
	lines := strings.SplitAfter(content, "\n")

	var b strings.Builder
	b.Grow(len(content))

	for i := 0; i < len(lines); i++ {
		if !isOpeningFence(lines[i]) {
			b.WriteString(lines[i])
			continue
		}
		end := closingFence(lines, i+1)
		if end < 0 {
			// Unterminated: keep the rest verbatim.
			for _, l := range lines[i:] {
				b.WriteString(l)
			}
			break
		}
		i = end
	}
	return b.String()
}

func isOpeningFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), fence)
}

func isClosingFence(line string) bool {
	return strings.TrimSpace(line) == fence
}

func closingFence(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if isClosingFence(lines[j]) {
			return j
		}
	}
	return -1
}

// Inline markup handled when laying out documents for PDF.
var (
	headingPattern    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletPattern     = regexp.MustCompile(`^\s*[-*+]\s+(.*)$`)
	numberedPattern   = regexp.MustCompile(`^\s*(\d+)\.\s+(.*)$`)
	quotePattern      = regexp.MustCompile(`^>\s?(.*)$`)
	rulePattern       = regexp.MustCompile(`^\s*(?:(?:-\s*){3,}|(?:\*\s*){3,}|(?:_\s*){3,})$`)
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italicPattern     = regexp.MustCompile(`\*([^*]+)\*|\b_([^_]+)_\b`)
	underlinePattern  = regexp.MustCompile(`</?u>`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	imagePattern      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	wikiLinkPattern   = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)
	iconPattern       = regexp.MustCompile(`<i class="[^"]*"></i>`)
)

// plainInline removes inline markup, keeping the visible text.
func plainInline(s string) string {
	s = iconPattern.ReplaceAllString(s, "")
	s = imagePattern.ReplaceAllString(s, "$1")
	s = wikiLinkPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := wikiLinkPattern.FindStringSubmatch(m)
		if parts[2] != "" {
			return parts[2]
		}
		return parts[1]
	})
	s = linkPattern.ReplaceAllString(s, "$1")
	s = inlineCodePattern.ReplaceAllString(s, "$1")
	s = boldPattern.ReplaceAllString(s, "$1$2")
	s = italicPattern.ReplaceAllString(s, "$1$2")
	s = underlinePattern.ReplaceAllString(s, "")
	return strings.TrimRight(s, " \t")
}

// wholeLineEmphasis reports whether the entire line is wrapped in bold or
// italic markers.
func wholeLineEmphasis(s string) (bold, italic bool) {
	t := strings.TrimSpace(s)
	switch {
	case len(t) > 4 && strings.HasPrefix(t, "**") && strings.HasSuffix(t, "**") &&
		!strings.Contains(t[2:len(t)-2], "**"):
		return true, false
	case len(t) > 2 && strings.HasPrefix(t, "*") && strings.HasSuffix(t, "*") &&
		!strings.Contains(t[1:len(t)-1], "*"):
		return false, true
	default:
		return false, false
	}
}
