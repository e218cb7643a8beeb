package grammar

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
	html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	jsonlang "github.com/tree-sitter/tree-sitter-json/bindings/go"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Default builds the registry with every supported language. Adding a
// language means adding an entry here; the extractor never branches on
// language identity.
func Default() *Registry {
	return NewRegistry(
		rustLanguage(),
		javascriptLanguage(),
		typescriptLanguage(),
		pythonLanguage(),
		javaLanguage(),
		goLanguage(),
		jsonLanguage(),
		htmlLanguage(),
		cssLanguage(),
		cLanguage(),
		phpLanguage(),
		rubyLanguage(),
	)
}

func rustLanguage() *Language {
	return &Language{
		Name:        "rust",
		DisplayName: "Rust",
		Extensions:  []string{"rs"},
		Grammar:     sitter.NewLanguage(rust.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindFunction: {
				{NodeKinds: []string{"function_item"}, Names: namedField("name")},
			},
			KindRecord: {
				{NodeKinds: []string{"struct_item"}, Names: namedField("name")},
			},
			KindImplementation: {
				{NodeKinds: []string{"impl_item"}, Names: namedField("type")},
			},
		},
	}
}

func javascriptLanguage() *Language {
	return &Language{
		Name:        "javascript",
		DisplayName: "JavaScript",
		Extensions:  []string{"js", "jsx"},
		Grammar:     sitter.NewLanguage(javascript.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindClass: {
				{NodeKinds: []string{"class_declaration"}, Names: namedField("name")},
			},
			KindFunction: {
				{NodeKinds: []string{"function_declaration", "method_definition"}, Names: namedField("name")},
			},
		},
	}
}

func typescriptLanguage() *Language {
	return &Language{
		Name:        "typescript",
		DisplayName: "TypeScript",
		Extensions:  []string{"ts", "tsx"},
		Grammar:     sitter.NewLanguage(typescript.LanguageTypescript()),
		Matchers: map[ElementKind][]Matcher{
			KindClass: {
				{NodeKinds: []string{"class_declaration"}, Names: namedField("name")},
				{NodeKinds: []string{"interface_declaration"}, Names: prefixedField("interface ", "name")},
			},
			KindFunction: {
				{NodeKinds: []string{"function_declaration", "method_definition"}, Names: namedField("name")},
			},
		},
	}
}

func pythonLanguage() *Language {
	return &Language{
		Name:        "python",
		DisplayName: "Python",
		Extensions:  []string{"py", "pyi"},
		Grammar:     sitter.NewLanguage(python.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindClass: {
				{NodeKinds: []string{"class_definition"}, Names: namedField("name")},
			},
			KindFunction: {
				{NodeKinds: []string{"function_definition"}, Names: namedField("name")},
			},
		},
	}
}

func javaLanguage() *Language {
	return &Language{
		Name:        "java",
		DisplayName: "Java",
		Extensions:  []string{"java"},
		Grammar:     sitter.NewLanguage(java.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindClass: {
				{NodeKinds: []string{"class_declaration"}, Names: namedField("name")},
				{NodeKinds: []string{"interface_declaration"}, Names: prefixedField("interface ", "name")},
			},
			KindFunction: {
				{NodeKinds: []string{"method_declaration"}, Names: namedField("name")},
			},
		},
	}
}

func goLanguage() *Language {
	return &Language{
		Name:        "go",
		DisplayName: "Go",
		Extensions:  []string{"go"},
		Grammar:     sitter.NewLanguage(golang.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindFunction: {
				{NodeKinds: []string{"function_declaration", "method_declaration"}, Names: namedField("name")},
			},
			KindRecord: {
				{NodeKinds: []string{"type_declaration"}, Names: typeSpecNames},
			},
		},
	}
}

func jsonLanguage() *Language {
	return &Language{
		Name:        "json",
		DisplayName: "JSON",
		Extensions:  []string{"json"},
		Grammar:     sitter.NewLanguage(jsonlang.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindRecord: {
				{NodeKinds: []string{"pair"}, Names: jsonKeyName},
			},
		},
	}
}

func htmlLanguage() *Language {
	return &Language{
		Name:        "html",
		DisplayName: "HTML",
		Extensions:  []string{"html", "htm"},
		Grammar:     sitter.NewLanguage(html.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindClass: {
				{NodeKinds: []string{"element"}, Names: htmlTagName},
			},
		},
	}
}

func cssLanguage() *Language {
	return &Language{
		Name:        "css",
		DisplayName: "CSS",
		Extensions:  []string{"css"},
		Grammar:     sitter.NewLanguage(css.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindClass: {
				{NodeKinds: []string{"rule_set"}, Names: cssSelectorNames},
			},
		},
	}
}

func cLanguage() *Language {
	return &Language{
		Name:        "c",
		DisplayName: "C",
		Extensions:  []string{"c", "h"},
		Grammar:     sitter.NewLanguage(c.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindFunction: {
				{NodeKinds: []string{"function_definition"}, Names: cDeclaratorName},
			},
			KindRecord: {
				{NodeKinds: []string{"struct_specifier", "union_specifier", "enum_specifier"}, Names: namedField("name")},
			},
		},
	}
}

func phpLanguage() *Language {
	return &Language{
		Name:        "php",
		DisplayName: "PHP",
		Extensions:  []string{"php"},
		Grammar:     sitter.NewLanguage(php.LanguagePHP()),
		Matchers: map[ElementKind][]Matcher{
			KindClass: {
				{NodeKinds: []string{"class_declaration"}, Names: namedField("name")},
				{NodeKinds: []string{"interface_declaration"}, Names: prefixedField("interface ", "name")},
			},
			KindFunction: {
				{NodeKinds: []string{"function_definition", "method_declaration"}, Names: namedField("name")},
			},
			KindImplementation: {
				{NodeKinds: []string{"trait_declaration"}, Names: namedField("name")},
			},
		},
	}
}

func rubyLanguage() *Language {
	return &Language{
		Name:        "ruby",
		DisplayName: "Ruby",
		Extensions:  []string{"rb"},
		Grammar:     sitter.NewLanguage(ruby.Language()),
		Matchers: map[ElementKind][]Matcher{
			KindClass: {
				{NodeKinds: []string{"class"}, Names: namedField("name")},
			},
			KindFunction: {
				{NodeKinds: []string{"method", "singleton_method"}, Names: namedField("name")},
			},
			KindImplementation: {
				{NodeKinds: []string{"module"}, Names: namedField("name")},
			},
		},
	}
}

// nodeText returns the source text spanned by a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// namedField builds a naming rule that reads a single child field.
// Declarations without the field (anonymous) yield no names.
func namedField(field string) func(*sitter.Node, []byte) []string {
	return func(node *sitter.Node, source []byte) []string {
		name := nodeText(node.ChildByFieldName(field), source)
		if name == "" {
			return nil
		}
		return []string{name}
	}
}

// prefixedField is namedField with a display prefix, used to keep
// interfaces distinguishable from classes inside the same kind bucket.
func prefixedField(prefix, field string) func(*sitter.Node, []byte) []string {
	return func(node *sitter.Node, source []byte) []string {
		name := nodeText(node.ChildByFieldName(field), source)
		if name == "" {
			return nil
		}
		return []string{prefix + name}
	}
}

// typeSpecNames collects the names of every type_spec under a Go
// type_declaration, so grouped declarations yield all their types.
func typeSpecNames(node *sitter.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "type_spec" {
			continue
		}
		if name := nodeText(child.ChildByFieldName("name"), source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// jsonKeyName extracts an object key. The key node spans its surrounding
// quotes; those are stripped so names compare cleanly.
func jsonKeyName(node *sitter.Node, source []byte) []string {
	key := nodeText(node.ChildByFieldName("key"), source)
	key = strings.Trim(key, `"`)
	if key == "" {
		return nil
	}
	return []string{key}
}

// htmlTagName extracts the tag name from an element's start or
// self-closing tag.
func htmlTagName(node *sitter.Node, source []byte) []string {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "start_tag" && child.Kind() != "self_closing_tag" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			if tag := child.Child(j); tag.Kind() == "tag_name" {
				return []string{nodeText(tag, source)}
			}
		}
	}
	return nil
}

// cssSelectorNames extracts each selector of a rule set as its own name.
func cssSelectorNames(node *sitter.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "selectors" {
			continue
		}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			sel := strings.TrimSpace(nodeText(child.NamedChild(j), source))
			if sel != "" {
				names = append(names, sel)
			}
		}
	}
	return names
}

// cDeclaratorName digs through pointer and function declarators to reach
// the declared identifier of a C function definition.
func cDeclaratorName(node *sitter.Node, source []byte) []string {
	decl := node.ChildByFieldName("declarator")
	for decl != nil {
		switch decl.Kind() {
		case "identifier":
			return []string{nodeText(decl, source)}
		case "function_declarator", "pointer_declarator", "parenthesized_declarator":
			decl = decl.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}
