package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
	"github.com/scaffdev/scaff/internal/scanner"
	"github.com/scaffdev/scaff/internal/validator"
)

// pluralKind is the section heading for one element kind.
func pluralKind(kind grammar.ElementKind) string {
	if kind == grammar.KindClass {
		return "Classes"
	}
	return kind.String() + "s"
}

// displayLanguage maps a stored language identifier to its display name.
func displayLanguage(registry *grammar.Registry, name string) string {
	if name == scanner.LanguageAll {
		return "all languages"
	}
	if lang, ok := registry.ByName(name); ok {
		return lang.DisplayName
	}
	return name
}

func renderScanResult(w io.Writer, registry *grammar.Registry, result *scanner.Result, language string) {
	fmt.Fprintf(w, "\nScan results (%s)\n", displayLanguage(registry, language))
	fmt.Fprintln(w, strings.Repeat("-", 50))

	if len(result.Files) == 0 {
		fmt.Fprintln(w, "No supported files found.")
		return
	}

	totalItems := 0
	for i := range result.Files {
		fp := &result.Files[i]
		totalItems += fp.ElementCount()
		fmt.Fprintf(w, "\nFile: %s\n", fp.Path)
		renderProfileElements(w, fp)
		if fp.ElementCount() == 0 {
			fmt.Fprintln(w, "  (no extractable items found)")
		}
	}

	fmt.Fprintf(w, "\nFiles: %d, items: %d\n", len(result.Files), totalItems)
}

func renderProfileElements(w io.Writer, fp *pattern.FileProfile) {
	for _, kind := range grammar.Kinds() {
		names := fp.Elements(kind)
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s:\n", pluralKind(kind))
		for _, name := range names {
			fmt.Fprintf(w, "    - %s\n", name)
		}
	}
}

func renderPatternSummary(w io.Writer, registry *grammar.Registry, p *pattern.Pattern) {
	fmt.Fprintf(w, "\nPattern: %s\n", p.Name)
	fmt.Fprintf(w, "Description: %s\n", p.Description)
	fmt.Fprintf(w, "Language: %s\n", displayLanguage(registry, p.Language))
	fmt.Fprintf(w, "Files: %d\n", len(p.Files))
	fmt.Fprintf(w, "Created: %s\n", p.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(w, strings.Repeat("-", 50))

	for i := range p.Files {
		fp := &p.Files[i]
		fmt.Fprintf(w, "%s\n", fp.Path)
		for _, kind := range grammar.Kinds() {
			if names := fp.Elements(kind); len(names) > 0 {
				fmt.Fprintf(w, "  %s: %s\n", pluralKind(kind), strings.Join(names, ", "))
			}
		}
	}
}

func renderPatternList(w io.Writer, patterns []*pattern.Pattern, defaultScaff string) {
	if len(patterns) == 0 {
		fmt.Fprintln(w, "No scaffs found. Use 'scaff save <name>' to save one.")
		return
	}

	fmt.Fprintln(w, "\nAvailable scaffs:")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, p := range patterns {
		marker := ""
		if p.Name == defaultScaff {
			marker = " [default]"
		}
		fmt.Fprintf(w, "%s%s (%s)\n", p.Name, marker, p.Language)
		fmt.Fprintf(w, "   %s\n", p.Description)
		fmt.Fprintf(w, "   Files: %d, items: %d, created: %s\n",
			len(p.Files), p.ElementCount(), p.CreatedAt.Format("2006-01-02"))
	}

	if defaultScaff == "" {
		fmt.Fprintln(w, "\nNo default scaff set. Use 'scaff default set <name>' to set one.")
	}
}

func renderReport(w io.Writer, report *validator.Report, suggestions []string, quiet bool) {
	fmt.Fprintf(w, "\nValidation results for scaff %q\n", report.PatternName)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	if report.Valid {
		fmt.Fprintln(w, "Architecture matches the scaff pattern.")
	} else {
		fmt.Fprintln(w, "Architecture deviates from the scaff pattern.")
	}

	if !quiet {
		for _, fd := range report.Files {
			if fd.FileMissing {
				fmt.Fprintf(w, "\nMissing file: %s\n", fd.Path)
			}
			for _, kd := range fd.Kinds {
				for _, name := range kd.Missing {
					fmt.Fprintf(w, "  missing %s '%s' in %s\n", kd.Kind, name, fd.Path)
				}
				for _, name := range kd.Extra {
					fmt.Fprintf(w, "  extra %s '%s' in %s\n", kd.Kind, name, fd.Path)
				}
			}
		}
		for i := range report.ExtraFiles {
			fmt.Fprintf(w, "\nExtra file: %s\n", report.ExtraFiles[i].Path)
		}

		if len(suggestions) > 0 {
			fmt.Fprintln(w, "\nSuggestions:")
			for _, s := range suggestions {
				fmt.Fprintf(w, "  - %s\n", s)
			}
		}
	}

	fmt.Fprintln(w, "\nCompliance:")
	for _, t := range report.Totals {
		fmt.Fprintf(w, "  %-14s %3.0f%% (matched %d, missing %d, extra %d)\n",
			t.Kind.String()+":", t.Compliance, t.Matched, t.Missing, t.Extra)
	}
	fmt.Fprintf(w, "  Score: %d/100\n", report.Score)
}

func renderDiagnostics(w io.Writer, diagnostics []pattern.Diagnostic) {
	if len(diagnostics) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d warning(s):\n", len(diagnostics))
	for _, d := range diagnostics {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
