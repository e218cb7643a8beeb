package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
	"github.com/scaffdev/scaff/internal/validator"
)

// Test Plan for CLI helpers:
// - pluralKind handles the irregular "Classes" plural
// - resolveLanguage accepts identifiers, display names, and "all"
// - resolveScaffName prefers the argument over the configured default
// - renderReport prints the verdict, compliance table and suggestions

func TestPluralKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Classes", pluralKind(grammar.KindClass))
	assert.Equal(t, "Functions", pluralKind(grammar.KindFunction))
	assert.Equal(t, "Structs", pluralKind(grammar.KindRecord))
	assert.Equal(t, "Implementations", pluralKind(grammar.KindImplementation))
}

func TestResolveLanguage(t *testing.T) {
	t.Parallel()

	registry := grammar.Default()

	for _, tc := range []struct {
		in   string
		want string
	}{
		{"", "all"},
		{"all", "all"},
		{"rust", "rust"},
		{"Rust", "rust"},
		{"TypeScript", "typescript"},
	} {
		got, err := resolveLanguage(registry, tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := resolveLanguage(registry, "fortran")
	require.Error(t, err)
	assert.ErrorIs(t, err, grammar.ErrUnsupportedLanguage)
}

func TestResolveScaffName(t *testing.T) {
	t.Parallel()

	store := pattern.NewStore(t.TempDir())

	name, err := resolveScaffName(store, []string{"explicit"})
	require.NoError(t, err)
	assert.Equal(t, "explicit", name)

	// No argument and no default set.
	_, err = resolveScaffName(store, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no default scaff set")
}

func TestRenderReport(t *testing.T) {
	t.Parallel()

	ref := pattern.New("cli-tool", "rust", []pattern.FileProfile{
		func() pattern.FileProfile {
			f := pattern.NewFileProfile("src/main.rs", "rs")
			f.SetElements(grammar.KindFunction, []string{"main", "parse_args"})
			return f
		}(),
	})
	live := pattern.New("live", "rust", []pattern.FileProfile{
		func() pattern.FileProfile {
			f := pattern.NewFileProfile("src/main.rs", "rs")
			f.SetElements(grammar.KindFunction, []string{"main"})
			return f
		}(),
	})

	report, err := validator.Validate(ref, live)
	require.NoError(t, err)

	var buf bytes.Buffer
	renderReport(&buf, report, []string{"add Function 'parse_args' to src/main.rs"}, false)
	out := buf.String()

	assert.Contains(t, out, `Validation results for scaff "cli-tool"`)
	assert.Contains(t, out, "Architecture deviates from the scaff pattern.")
	assert.Contains(t, out, "missing Function 'parse_args' in src/main.rs")
	assert.Contains(t, out, "add Function 'parse_args' to src/main.rs")
	assert.Contains(t, out, "Score: 88/100")
}

func TestRenderReport_Quiet(t *testing.T) {
	t.Parallel()

	ref := pattern.New("cli-tool", "rust", []pattern.FileProfile{
		func() pattern.FileProfile {
			f := pattern.NewFileProfile("src/main.rs", "rs")
			f.SetElements(grammar.KindFunction, []string{"main", "missing_fn"})
			return f
		}(),
	})

	report, err := validator.Validate(ref, pattern.New("live", "rust", nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	renderReport(&buf, report, []string{"create missing file src/main.rs (should contain 2 items)"}, true)
	out := buf.String()

	assert.Contains(t, out, "Architecture deviates")
	assert.Contains(t, out, "Score:")
	assert.NotContains(t, out, "Suggestions:")
	assert.NotContains(t, out, "Missing file:")
}
