package pattern

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scaffdev/scaff/internal/grammar"
)

// FileProfile is the structural summary of one source file: the named
// elements found in it, grouped by kind. The four element arrays are
// always present in the interchange format, even when empty.
//
// Names are unique within a (file, kind) pair and keep first-seen order.
type FileProfile struct {
	Path            string   `json:"path"`
	Extension       string   `json:"extension"`
	Classes         []string `json:"classes"`
	Functions       []string `json:"functions"`
	Structs         []string `json:"structs"`
	Implementations []string `json:"implementations"`
}

// NewFileProfile creates an empty profile with non-nil element lists.
func NewFileProfile(path, extension string) FileProfile {
	return FileProfile{
		Path:            path,
		Extension:       extension,
		Classes:         []string{},
		Functions:       []string{},
		Structs:         []string{},
		Implementations: []string{},
	}
}

// Elements returns the names recorded for one element kind.
func (p *FileProfile) Elements(kind grammar.ElementKind) []string {
	switch kind {
	case grammar.KindClass:
		return p.Classes
	case grammar.KindFunction:
		return p.Functions
	case grammar.KindRecord:
		return p.Structs
	case grammar.KindImplementation:
		return p.Implementations
	default:
		return nil
	}
}

// SetElements replaces the names recorded for one element kind.
func (p *FileProfile) SetElements(kind grammar.ElementKind, names []string) {
	if names == nil {
		names = []string{}
	}
	switch kind {
	case grammar.KindClass:
		p.Classes = names
	case grammar.KindFunction:
		p.Functions = names
	case grammar.KindRecord:
		p.Structs = names
	case grammar.KindImplementation:
		p.Implementations = names
	}
}

// ElementCount is the total number of named elements across all kinds.
func (p *FileProfile) ElementCount() int {
	return len(p.Classes) + len(p.Functions) + len(p.Structs) + len(p.Implementations)
}

// Pattern is a persisted, named structural summary of a codebase. It is
// created once by aggregation and never mutated.
type Pattern struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Language    string        `json:"language"`
	CreatedAt   time.Time     `json:"created_at"`
	Files       []FileProfile `json:"files"`
}

// New builds a pattern from aggregated file profiles. The description
// summarizes the profile contents; name and language are attached
// verbatim.
func New(name, language string, files []FileProfile) *Pattern {
	total := 0
	for i := range files {
		total += files[i].ElementCount()
	}
	return &Pattern{
		ID:          uuid.NewString(),
		Name:        name,
		Description: fmt.Sprintf("Pattern with %d files containing %d total items", len(files), total),
		Language:    language,
		CreatedAt:   time.Now().UTC(),
		Files:       files,
	}
}

// ElementCount is the total number of named elements across all files.
func (p *Pattern) ElementCount() int {
	total := 0
	for i := range p.Files {
		total += p.Files[i].ElementCount()
	}
	return total
}

// File returns the profile for a relative path, if present.
func (p *Pattern) File(path string) (*FileProfile, bool) {
	for i := range p.Files {
		if p.Files[i].Path == path {
			return &p.Files[i], true
		}
	}
	return nil, false
}

// DiagnosticCode classifies a recoverable per-file condition recorded
// during a scan.
type DiagnosticCode string

const (
	DiagUnsupportedLanguage DiagnosticCode = "unsupported_language"
	DiagParseError          DiagnosticCode = "parse_error"
	DiagIOError             DiagnosticCode = "io_error"
	DiagPartialParse        DiagnosticCode = "partial_parse"
)

// Diagnostic is a warning attached to a scan result. Diagnostics never
// abort a scan; the file they describe is skipped or partially extracted.
type Diagnostic struct {
	Path    string         `json:"path"`
	Code    DiagnosticCode `json:"code"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Path, d.Message, d.Code)
}
