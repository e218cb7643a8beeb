package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
	"github.com/scaffdev/scaff/internal/validator"
)

// Test Plan for Suggestions:
// - Missing elements become "add" lines, extras become "remove" lines
// - Close missing/extra pairs collapse into a single rename suggestion
// - Distant pairs stay as separate add/remove lines
// - Missing files and extra files get one suggestion each
// - Output follows report order: per file, renames then adds then
//   removes, extra-file advisories last
// - A compliant report yields no suggestions

func buildReport(t *testing.T, ref, live *pattern.Pattern) *validator.Report {
	t.Helper()
	report, err := validator.Validate(ref, live)
	require.NoError(t, err)
	return report
}

func fileWith(path string, kind grammar.ElementKind, names ...string) pattern.FileProfile {
	f := pattern.NewFileProfile(path, "rs")
	f.SetElements(kind, names)
	return f
}

func TestSuggestions_AddAndRemove(t *testing.T) {
	t.Parallel()

	ref := pattern.New("ref", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "main", "parse_args"),
	})
	live := pattern.New("live", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "main", "leftover_helper_routine"),
	})

	got := Suggestions(buildReport(t, ref, live), DefaultOptions())

	assert.Equal(t, []string{
		"add Function 'parse_args' to src/main.rs",
		"remove or incorporate extra Function 'leftover_helper_routine' in src/main.rs",
	}, got)
}

func TestSuggestions_Rename(t *testing.T) {
	t.Parallel()

	ref := pattern.New("ref", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "parse_args"),
	})
	live := pattern.New("live", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "parse_arg"),
	})

	got := Suggestions(buildReport(t, ref, live), DefaultOptions())

	assert.Equal(t, []string{
		"possible rename: 'parse_args' -> 'parse_arg' in src/main.rs",
	}, got)
}

func TestSuggestions_RenameLengthRatio(t *testing.T) {
	t.Parallel()

	// Distance 3 exceeds the absolute bound of 2 but stays within
	// 0.2 * len("process_user_request") = 4.
	ref := pattern.New("ref", "rust", []pattern.FileProfile{
		fileWith("src/api.rs", grammar.KindFunction, "process_user_request"),
	})
	live := pattern.New("live", "rust", []pattern.FileProfile{
		fileWith("src/api.rs", grammar.KindFunction, "process_usr_reqst"),
	})

	got := Suggestions(buildReport(t, ref, live), DefaultOptions())

	require.Len(t, got, 1)
	assert.Equal(t, "possible rename: 'process_user_request' -> 'process_usr_reqst' in src/api.rs", got[0])
}

func TestSuggestions_NoRenameWhenTooFar(t *testing.T) {
	t.Parallel()

	// Distance 5 between these names exceeds both bounds
	// (2 and 0.2 * 17 = 3.4), so no rename is suggested.
	ref := pattern.New("ref", "rust", []pattern.FileProfile{
		fileWith("src/auth.rs", grammar.KindFunction, "authenticate"),
	})
	live := pattern.New("live", "rust", []pattern.FileProfile{
		fileWith("src/auth.rs", grammar.KindFunction, "authenticate_user"),
	})

	got := Suggestions(buildReport(t, ref, live), DefaultOptions())

	assert.Equal(t, []string{
		"add Function 'authenticate' to src/auth.rs",
		"remove or incorporate extra Function 'authenticate_user' in src/auth.rs",
	}, got)
}

func TestSuggestions_MissingFile(t *testing.T) {
	t.Parallel()

	ref := pattern.New("ref", "rust", []pattern.FileProfile{
		fileWith("src/lib.rs", grammar.KindRecord, "Config", "State"),
	})

	got := Suggestions(buildReport(t, ref, pattern.New("live", "rust", nil)), DefaultOptions())

	require.NotEmpty(t, got)
	assert.Equal(t, "create missing file src/lib.rs (should contain 2 items)", got[0])
	assert.Contains(t, got, "add Struct 'Config' to src/lib.rs")
	assert.Contains(t, got, "add Struct 'State' to src/lib.rs")
}

func TestSuggestions_ExtraFile(t *testing.T) {
	t.Parallel()

	ref := pattern.New("ref", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "main"),
	})
	live := pattern.New("live", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "main"),
		fileWith("src/stray.rs", grammar.KindFunction, "stray"),
	})

	got := Suggestions(buildReport(t, ref, live), DefaultOptions())

	assert.Equal(t, []string{
		"file src/stray.rs is not in the reference pattern; update the pattern or remove it",
	}, got)
}

func TestSuggestions_Ordering(t *testing.T) {
	t.Parallel()

	ref := pattern.New("ref", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "parse_args", "run"),
	})
	live := pattern.New("live", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "parse_arg", "unrelated_long_function"),
		fileWith("src/other.rs", grammar.KindFunction, "other"),
	})

	got := Suggestions(buildReport(t, ref, live), DefaultOptions())

	assert.Equal(t, []string{
		"possible rename: 'parse_args' -> 'parse_arg' in src/main.rs",
		"add Function 'run' to src/main.rs",
		"remove or incorporate extra Function 'unrelated_long_function' in src/main.rs",
		"file src/other.rs is not in the reference pattern; update the pattern or remove it",
	}, got)
}

func TestSuggestions_CompliantReport(t *testing.T) {
	t.Parallel()

	ref := pattern.New("ref", "rust", []pattern.FileProfile{
		fileWith("src/main.rs", grammar.KindFunction, "main"),
	})

	got := Suggestions(buildReport(t, ref, ref), DefaultOptions())
	assert.Empty(t, got)
}
