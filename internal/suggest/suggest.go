// Package suggest turns a validation report into an ordered list of
// remediation suggestions, one per missing or extra element, following
// the report's deterministic ordering.
package suggest

import (
	"fmt"

	"github.com/agext/levenshtein"

	"github.com/scaffdev/scaff/internal/validator"
)

// Options tune the rename heuristic. A missing/extra pair within the
// same (file, kind) whose edit distance is at or below the looser of the
// two bounds is reported as a single rename suggestion instead of an
// add/remove pair.
type Options struct {
	// MaxEditDistance is the absolute edit-distance bound. Default: 2.
	MaxEditDistance int

	// MaxLengthRatio bounds the distance relative to the longer name's
	// length. Default: 0.2.
	MaxLengthRatio float64
}

// DefaultOptions returns the documented default thresholds.
func DefaultOptions() Options {
	return Options{
		MaxEditDistance: 2,
		MaxLengthRatio:  0.2,
	}
}

// Suggestions builds the remediation list for a report. Per reference
// file, in report order: rename candidates first, then additions for the
// remaining missing elements, then removals for the remaining extra
// elements. Extra files get one advisory each at the end. Removal and
// extra-file suggestions are advisory, never auto-applied.
func Suggestions(report *validator.Report, opts Options) []string {
	if opts.MaxEditDistance <= 0 && opts.MaxLengthRatio <= 0 {
		opts = DefaultOptions()
	}

	var out []string
	for _, fd := range report.Files {
		if fd.FileMissing {
			total := 0
			for _, kd := range fd.Kinds {
				total += len(kd.Missing)
			}
			out = append(out, fmt.Sprintf("create missing file %s (should contain %d items)", fd.Path, total))
		}
		for _, kd := range fd.Kinds {
			renames, missing, extra := pairRenames(kd.Missing, kd.Extra, opts)
			for _, r := range renames {
				out = append(out, fmt.Sprintf("possible rename: '%s' -> '%s' in %s", r.from, r.to, fd.Path))
			}
			for _, name := range missing {
				out = append(out, fmt.Sprintf("add %s '%s' to %s", kd.Kind, name, fd.Path))
			}
			for _, name := range extra {
				out = append(out, fmt.Sprintf("remove or incorporate extra %s '%s' in %s", kd.Kind, name, fd.Path))
			}
		}
	}

	for _, fp := range report.ExtraFiles {
		out = append(out, fmt.Sprintf("file %s is not in the reference pattern; update the pattern or remove it", fp.Path))
	}

	return out
}

type rename struct {
	from string
	to   string
}

// pairRenames greedily matches missing names to their closest extra name
// within threshold, consuming both. Missing names are considered in
// sorted report order; ties go to the lexicographically first candidate.
func pairRenames(missing, extra []string, opts Options) ([]rename, []string, []string) {
	remainingExtra := append([]string{}, extra...)
	var renames []rename
	var remainingMissing []string

	for _, name := range missing {
		best := -1
		bestDist := 0
		for i, candidate := range remainingExtra {
			dist := levenshtein.Distance(name, candidate, nil)
			if !withinThreshold(name, candidate, dist, opts) {
				continue
			}
			if best == -1 || dist < bestDist {
				best, bestDist = i, dist
			}
		}
		if best == -1 {
			remainingMissing = append(remainingMissing, name)
			continue
		}
		renames = append(renames, rename{from: name, to: remainingExtra[best]})
		remainingExtra = append(remainingExtra[:best], remainingExtra[best+1:]...)
	}

	return renames, remainingMissing, remainingExtra
}

// withinThreshold applies the looser of the absolute and length-relative
// bounds.
func withinThreshold(a, b string, dist int, opts Options) bool {
	if dist <= opts.MaxEditDistance {
		return true
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return float64(dist) <= opts.MaxLengthRatio*float64(longer)
}
