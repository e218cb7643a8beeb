package grammar

import (
	"errors"
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrUnsupportedLanguage is returned by Lookup for extensions with no
// registered language. It is a per-file condition: callers skip the file
// and record a diagnostic rather than aborting the scan.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Matcher pairs a set of tree-sitter node kinds with a rule that derives
// canonical element names from a matched node. A matcher may yield zero
// names (anonymous declaration) or several (e.g. a Go type declaration
// with multiple specs).
type Matcher struct {
	// NodeKinds are the tree-sitter node kinds this matcher applies to.
	NodeKinds []string

	// Names extracts element names from a matched node. Empty strings
	// are discarded by the extractor.
	Names func(node *sitter.Node, source []byte) []string
}

// Language binds a language identity to its tree-sitter grammar and the
// matchers used to extract each element kind.
type Language struct {
	Name        string
	DisplayName string
	Extensions  []string
	Grammar     *sitter.Language
	Matchers    map[ElementKind][]Matcher
}

// Registry maps file extensions to languages. It is built once at startup
// and treated as read-only afterwards, so it can be shared across
// extraction workers without locking.
type Registry struct {
	byExt  map[string]*Language
	byName map[string]*Language
	order  []*Language
}

// NewRegistry creates a registry containing the given languages, in order.
func NewRegistry(langs ...*Language) *Registry {
	r := &Registry{
		byExt:  make(map[string]*Language),
		byName: make(map[string]*Language),
	}
	for _, lang := range langs {
		r.Register(lang)
	}
	return r
}

// Register adds a language to the registry. Re-registering an extension
// replaces the prior entry for that extension.
func (r *Registry) Register(lang *Language) {
	if prev, ok := r.byName[lang.Name]; ok {
		for i, l := range r.order {
			if l == prev {
				r.order[i] = lang
			}
		}
	} else {
		r.order = append(r.order, lang)
	}
	r.byName[lang.Name] = lang
	for _, ext := range lang.Extensions {
		r.byExt[normalizeExt(ext)] = lang
	}
}

// Lookup resolves a file extension to its language. The extension may be
// given with or without a leading dot.
func (r *Registry) Lookup(ext string) (*Language, error) {
	lang, ok := r.byExt[normalizeExt(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedLanguage, ext)
	}
	return lang, nil
}

// ByName resolves a language by its identifier (e.g. "rust").
func (r *Registry) ByName(name string) (*Language, bool) {
	lang, ok := r.byName[strings.ToLower(name)]
	return lang, ok
}

// Languages returns all registered languages in registration order.
func (r *Registry) Languages() []*Language {
	return r.order
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
