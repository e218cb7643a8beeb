// Package extractor turns one file's source text into a structural
// profile using the matchers registered for its language. Extraction is a
// pure function of (source, matchers): the same input always produces the
// same profile, with element names in first-seen order.
package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
)

// ErrParse is returned when the grammar cannot produce any usable syntax
// tree for a file, including when the per-file parse timeout expires.
// It is recoverable: callers skip the file and record a diagnostic.
var ErrParse = errors.New("parse failed")

// Result carries a (possibly partial) file profile plus any diagnostics
// raised while extracting it.
type Result struct {
	Profile     pattern.FileProfile
	Diagnostics []pattern.Diagnostic
}

// kindMatcher is one matcher bound to the element kind it extracts.
type kindMatcher struct {
	kind    grammar.ElementKind
	matcher grammar.Matcher
}

// Extract parses source with the language's grammar and collects element
// names for every kind. A tree containing internal error nodes is still
// extracted over its valid portions and reported with a partial_parse
// diagnostic; only a fully unusable tree yields ErrParse.
//
// Nested declarations are flattened to their innermost name, so a nested
// declaration shadowing an outer one in the same file collapses to a
// single entry after first-seen deduplication. Anonymous declarations
// contribute no name and are skipped.
func Extract(path string, source []byte, lang *grammar.Language, timeout time.Duration) (*Result, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang.Grammar); err != nil {
		return nil, fmt.Errorf("loading %s grammar: %w", lang.Name, err)
	}
	if timeout > 0 {
		parser.SetTimeoutMicros(uint64(timeout.Microseconds()))
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, path)
	}
	defer tree.Close()

	// Index matchers by node kind so the walk is a single map lookup
	// per node regardless of language.
	byNodeKind := make(map[string][]kindMatcher)
	for _, kind := range grammar.Kinds() {
		for _, m := range lang.Matchers[kind] {
			for _, nk := range m.NodeKinds {
				byNodeKind[nk] = append(byNodeKind[nk], kindMatcher{kind: kind, matcher: m})
			}
		}
	}

	seen := make(map[grammar.ElementKind]map[string]struct{})
	ordered := make(map[grammar.ElementKind][]string)
	for _, kind := range grammar.Kinds() {
		seen[kind] = make(map[string]struct{})
	}

	root := tree.RootNode()
	walkTree(root, func(n *sitter.Node) bool {
		for _, km := range byNodeKind[n.Kind()] {
			for _, name := range km.matcher.Names(n, source) {
				if name == "" {
					continue
				}
				if _, dup := seen[km.kind][name]; dup {
					continue
				}
				seen[km.kind][name] = struct{}{}
				ordered[km.kind] = append(ordered[km.kind], name)
			}
		}
		return true
	})

	profile := pattern.NewFileProfile(path, strings.TrimPrefix(filepath.Ext(path), "."))
	for _, kind := range grammar.Kinds() {
		profile.SetElements(kind, ordered[kind])
	}

	result := &Result{Profile: profile}
	if root.HasError() {
		result.Diagnostics = append(result.Diagnostics, pattern.Diagnostic{
			Path:    path,
			Code:    pattern.DiagPartialParse,
			Message: fmt.Sprintf("%s parse produced error nodes; extracted valid portions", lang.DisplayName),
		})
	}
	return result, nil
}

// walkTree visits every node depth-first. The visitor returns false to
// skip a node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visitor)
	}
}
