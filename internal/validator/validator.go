// Package validator diffs a live structural scan against a reference
// pattern and scores the result. Validation is pure: it reads two
// immutable patterns and performs no I/O.
package validator

import (
	"errors"
	"math"
	"sort"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
)

// ErrMissingReference is returned when validation is attempted without a
// reference pattern. This is fatal for the validation call: no partial
// report is produced, so an empty reference can never masquerade as 100%
// compliance.
var ErrMissingReference = errors.New("missing reference pattern")

// KindDiff is the element diff for one (file, kind) pair. The three sets
// are disjoint: matched ∪ missing are the reference names, matched ∪
// extra are the live names. All lists are sorted ascending.
type KindDiff struct {
	Kind    grammar.ElementKind `json:"kind"`
	Matched []string            `json:"matched"`
	Missing []string            `json:"missing"`
	Extra   []string            `json:"extra"`
}

// FileDiff is the per-kind diff for one reference file.
type FileDiff struct {
	Path string `json:"path"`
	// FileMissing marks a reference file absent from the live scan;
	// every reference element of every kind is then missing.
	FileMissing bool       `json:"file_missing"`
	Kinds       []KindDiff `json:"kinds"`
}

// KindTotals aggregates one element kind across all reference files.
// Compliance is matched/(matched+missing) as a percentage, vacuously 100
// when the kind has no reference elements.
type KindTotals struct {
	Kind       grammar.ElementKind `json:"kind"`
	Matched    int                 `json:"matched"`
	Missing    int                 `json:"missing"`
	Extra      int                 `json:"extra"`
	Compliance float64             `json:"compliance"`
}

// Report is the outcome of one validation. Ordering is deterministic:
// files by path, kinds in enum order, names ascending — identical inputs
// produce byte-identical reports.
type Report struct {
	PatternName string `json:"pattern_name"`
	// Files diffs every reference file against the live scan.
	Files []FileDiff `json:"files"`
	// ExtraFiles lists live files absent from the reference pattern,
	// kept apart from per-file diffs so consumers can distinguish
	// "new file" from "new element in a known file".
	ExtraFiles []pattern.FileProfile `json:"extra_files"`
	Totals     []KindTotals          `json:"totals"`
	// Score is the unweighted mean of the four per-kind compliance
	// percentages, rounded to the nearest integer. Equal weighting
	// keeps a populous kind from dominating the score.
	Score int `json:"score"`
	// Valid is true when nothing the reference requires is missing.
	// Extra files and elements do not invalidate.
	Valid bool `json:"valid"`
}

// Validate diffs live against reference.
func Validate(reference, live *pattern.Pattern) (*Report, error) {
	if reference == nil {
		return nil, ErrMissingReference
	}
	if live == nil {
		live = &pattern.Pattern{}
	}

	report := &Report{
		PatternName: reference.Name,
		Valid:       true,
	}

	refFiles := make([]pattern.FileProfile, len(reference.Files))
	copy(refFiles, reference.Files)
	sort.Slice(refFiles, func(i, j int) bool { return refFiles[i].Path < refFiles[j].Path })

	totals := make(map[grammar.ElementKind]*KindTotals)
	for _, kind := range grammar.Kinds() {
		totals[kind] = &KindTotals{Kind: kind}
	}

	for i := range refFiles {
		ref := &refFiles[i]
		liveFile, present := live.File(ref.Path)

		fd := FileDiff{Path: ref.Path, FileMissing: !present}
		for _, kind := range grammar.Kinds() {
			var liveNames []string
			if present {
				liveNames = liveFile.Elements(kind)
			}
			kd := diffKind(kind, ref.Elements(kind), liveNames)
			totals[kind].Matched += len(kd.Matched)
			totals[kind].Missing += len(kd.Missing)
			totals[kind].Extra += len(kd.Extra)
			if len(kd.Missing) > 0 {
				report.Valid = false
			}
			fd.Kinds = append(fd.Kinds, kd)
		}
		if fd.FileMissing && ref.ElementCount() > 0 {
			report.Valid = false
		}
		report.Files = append(report.Files, fd)
	}

	// Live-only files form the synthetic extra-file bucket.
	for i := range live.Files {
		if _, known := reference.File(live.Files[i].Path); !known {
			report.ExtraFiles = append(report.ExtraFiles, live.Files[i])
		}
	}
	sort.Slice(report.ExtraFiles, func(i, j int) bool {
		return report.ExtraFiles[i].Path < report.ExtraFiles[j].Path
	})

	var sum float64
	for _, kind := range grammar.Kinds() {
		t := totals[kind]
		if t.Matched+t.Missing == 0 {
			t.Compliance = 100
		} else {
			t.Compliance = 100 * float64(t.Matched) / float64(t.Matched+t.Missing)
		}
		sum += t.Compliance
		report.Totals = append(report.Totals, *t)
	}
	report.Score = int(math.Round(sum / float64(len(grammar.Kinds()))))

	return report, nil
}

// diffKind computes the exact, case-sensitive set diff for one kind.
func diffKind(kind grammar.ElementKind, refNames, liveNames []string) KindDiff {
	refSet := toSet(refNames)
	liveSet := toSet(liveNames)

	kd := KindDiff{
		Kind:    kind,
		Matched: []string{},
		Missing: []string{},
		Extra:   []string{},
	}
	for name := range refSet {
		if _, ok := liveSet[name]; ok {
			kd.Matched = append(kd.Matched, name)
		} else {
			kd.Missing = append(kd.Missing, name)
		}
	}
	for name := range liveSet {
		if _, ok := refSet[name]; !ok {
			kd.Extra = append(kd.Extra, name)
		}
	}

	sort.Strings(kd.Matched)
	sort.Strings(kd.Missing)
	sort.Strings(kd.Extra)
	return kd
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
