package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
)

// Test Plan for Scanner:
// - Scan profiles supported files and reports unsupported ones as diagnostics
// - Ignore patterns exclude files and whole directories
// - Language filter restricts profiles without raising diagnostics for
//   other registered languages
// - Results are sorted and identical across repeated scans
// - Aggregate produces a pattern with sorted files and caller metadata
// - Unreadable root fails; cancelled context aborts

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func newScanner(t *testing.T, opts Options) *Scanner {
	t.Helper()
	s, err := New(grammar.Default(), opts)
	require.NoError(t, err)
	return s
}

func TestScan_MixedTree(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"src/main.rs":  "fn main() {}\nfn parse_args() {}\n",
		"src/lib.rs":   "struct Config {}\n",
		"notes.txt":    "not source code",
		"app/index.js": "function boot() {}\n",
	})

	s := newScanner(t, Options{})
	result, err := s.Scan(context.Background(), dir, LanguageAll)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, "app/index.js", result.Files[0].Path)
	assert.Equal(t, "src/lib.rs", result.Files[1].Path)
	assert.Equal(t, "src/main.rs", result.Files[2].Path)
	assert.Equal(t, []string{"main", "parse_args"}, result.Files[2].Functions)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "notes.txt", result.Diagnostics[0].Path)
	assert.Equal(t, pattern.DiagUnsupportedLanguage, result.Diagnostics[0].Code)
}

func TestScan_IgnorePatterns(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"src/main.py":         "def main():\n    pass\n",
		"node_modules/dep.js": "function hidden() {}\n",
		"target/debug/gen.rs": "fn generated() {}\n",
		"build/out.py":        "def artifact():\n    pass\n",
		"src/skip_me.py":      "def skipped():\n    pass\n",
		"scaffs/pattern.json": `{"name": "p"}`,
	})

	s := newScanner(t, Options{Ignore: []string{"build/**", "src/skip_me.py"}})
	result, err := s.Scan(context.Background(), dir, LanguageAll)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "src/main.py", result.Files[0].Path)
	assert.Empty(t, result.Diagnostics)
}

func TestScan_LanguageFilter(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"main.rs": "fn main() {}\n",
		"main.py": "def main():\n    pass\n",
	})

	s := newScanner(t, Options{})
	result, err := s.Scan(context.Background(), dir, "rust")
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "main.rs", result.Files[0].Path)
	// The python file is a registered language, just filtered out; it is
	// not an unsupported_language diagnostic.
	assert.Empty(t, result.Diagnostics)
}

func TestScan_UnknownLanguage(t *testing.T) {
	t.Parallel()

	s := newScanner(t, Options{})
	_, err := s.Scan(context.Background(), t.TempDir(), "cobol")
	require.Error(t, err)
	assert.ErrorIs(t, err, grammar.ErrUnsupportedLanguage)
}

func TestScan_Deterministic(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.py": "def a():\n    pass\n",
		"b.py": "def b():\n    pass\n",
		"c.py": "def c():\n    pass\n",
		"d.py": "def d():\n    pass\n",
	})

	s := newScanner(t, Options{Workers: 4})
	first, err := s.Scan(context.Background(), dir, LanguageAll)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := s.Scan(context.Background(), dir, LanguageAll)
		require.NoError(t, err)
		assert.Equal(t, first.Files, again.Files)
		assert.Equal(t, first.Diagnostics, again.Diagnostics)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	t.Parallel()

	s := newScanner(t, Options{})
	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "absent"), LanguageAll)
	require.Error(t, err)
}

func TestScan_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.py": "def a():\n    pass\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newScanner(t, Options{})
	_, err := s.Scan(ctx, dir, LanguageAll)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_Progress(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.py": "def a():\n    pass\n",
		"b.py": "def b():\n    pass\n",
	})

	var calls [][2]int
	s, err := New(grammar.Default(), Options{
		Workers: 1,
		OnProgress: func(processed, total int) {
			calls = append(calls, [2]int{processed, total})
		},
	})
	require.NoError(t, err)

	_, err = s.Scan(context.Background(), dir, LanguageAll)
	require.NoError(t, err)

	require.Len(t, calls, 3)
	assert.Equal(t, [2]int{0, 2}, calls[0])
	assert.Equal(t, [2]int{2, 2}, calls[2])
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	result := &Result{Files: []pattern.FileProfile{
		pattern.NewFileProfile("z.py", "py"),
		pattern.NewFileProfile("a.py", "py"),
	}}

	p := Aggregate("api-service", "python", result)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "api-service", p.Name)
	assert.Equal(t, "python", p.Language)
	assert.False(t, p.CreatedAt.IsZero())
	require.Len(t, p.Files, 2)
	assert.Equal(t, "a.py", p.Files[0].Path)
	assert.Equal(t, "z.py", p.Files[1].Path)
}
