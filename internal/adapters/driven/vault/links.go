package vault

import (
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.LinkExtractor = (*Extractor)(nil)

var (
	// [[target]], [[target|alias]], [[target#heading]]; ![[embed]] included.
	wikiLinkRe = regexp.MustCompile(`\[\[([^\[\]|#]+)(?:#[^\[\]|]*)?(?:\|[^\[\]]*)?\]\]`)

	// [text](target) with an optional "title".
	mdLinkRe = regexp.MustCompile(`\[[^\[\]]*\]\(\s*<?([^)\s>]+)>?(?:\s+"[^"]*")?\s*\)`)

	schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// Extractor finds document links in markdown text.
type Extractor struct{}

// NewExtractor creates a link extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the resolved links in content, one per distinct
// target and kind, in order of first appearance. Links inside fenced
// code blocks are ignored.
func (e *Extractor) Extract(source, content string, known []string) []domain.Link {
	r := newResolver(known)
	seen := make(map[domain.Link]bool)
	var links []domain.Link

	add := func(target string, kind domain.LinkKind) {
		resolved, ok := r.resolve(source, target)
		if !ok {
			return
		}
		link := domain.Link{Source: source, Target: resolved, Kind: kind}
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	}

	for _, line := range proseLines(content) {
		for _, m := range wikiLinkRe.FindAllStringSubmatch(line, -1) {
			add(strings.TrimSpace(m[1]), domain.LinkKindWiki)
		}
		for _, m := range mdLinkRe.FindAllStringSubmatch(line, -1) {
			target := m[1]
			if schemeRe.MatchString(target) || strings.HasPrefix(target, "#") {
				continue
			}
			if i := strings.IndexByte(target, '#'); i >= 0 {
				target = target[:i]
			}
			if unescaped, err := url.PathUnescape(target); err == nil {
				target = unescaped
			}
			add(target, domain.LinkKindMarkdown)
		}
	}
	return links
}

// proseLines returns the lines of content outside fenced code blocks.
func proseLines(content string) []string {
	var out []string
	var fence string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fence = trimmed[:3]
			continue
		}
		out = append(out, line)
	}
	return out
}

// resolver maps link text to known document paths.
type resolver struct {
	exact  map[string]string   // lower-cased path -> path
	byBase map[string][]string // lower-cased base name -> paths
}

func newResolver(known []string) *resolver {
	r := &resolver{
		exact:  make(map[string]string, len(known)),
		byBase: make(map[string][]string),
	}
	for _, p := range known {
		r.exact[strings.ToLower(p)] = p
		base := strings.ToLower(path.Base(p))
		r.byBase[base] = append(r.byBase[base], p)
	}
	for _, paths := range r.byBase {
		sort.Slice(paths, func(i, j int) bool {
			if len(paths[i]) != len(paths[j]) {
				return len(paths[i]) < len(paths[j])
			}
			return paths[i] < paths[j]
		})
	}
	return r
}

// resolve tries the path relative to the source folder, then relative to
// the vault root, then by base name preferring the source folder and then
// the shortest path.
func (r *resolver) resolve(source, target string) (string, bool) {
	target = strings.TrimSpace(strings.ReplaceAll(target, "\\", "/"))
	if target == "" {
		return "", false
	}
	if path.Ext(target) == "" {
		target += ".md"
	}

	dir := path.Dir(source)
	candidates := []string{path.Join(dir, target), strings.TrimPrefix(path.Clean("/"+target), "/")}
	for _, c := range candidates {
		if p, ok := r.exact[strings.ToLower(c)]; ok {
			return p, true
		}
	}

	if strings.Contains(target, "/") {
		return "", false
	}
	matches := r.byBase[strings.ToLower(target)]
	if len(matches) == 0 {
		return "", false
	}
	for _, p := range matches {
		if path.Dir(p) == dir {
			return p, true
		}
	}
	return matches[0], true
}
