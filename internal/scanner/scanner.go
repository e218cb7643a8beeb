// Package scanner walks a directory tree, extracts a structural profile
// from every supported file, and aggregates the results into a
// deterministic pattern. Extraction runs on a bounded worker pool; all
// per-file failures become diagnostics rather than errors.
package scanner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/maypok86/otter"

	"github.com/scaffdev/scaff/internal/extractor"
	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
)

// LanguageAll scans every registered language.
const LanguageAll = "all"

// DefaultIgnore is applied on top of caller-supplied ignore patterns.
var DefaultIgnore = []string{
	".git/**",
	".scaff/**",
	"scaffs/**",
	"node_modules/**",
	"target/**",
	"vendor/**",
}

// Options tune a Scanner. Zero values select the documented defaults.
type Options struct {
	// Workers bounds the extraction pool. Default: GOMAXPROCS.
	Workers int

	// FileTimeout converts a slow parse into a parse_error diagnostic
	// instead of blocking the pool. Default: 5s.
	FileTimeout time.Duration

	// Ignore holds glob patterns (relative, slash-separated) excluded
	// from discovery, in addition to DefaultIgnore.
	Ignore []string

	// CacheSize bounds the content-hash profile cache used to skip
	// re-parsing unchanged files across rescans. Default: 4096.
	CacheSize int

	// OnProgress, when set, is called from the merge goroutine with
	// (processed, total) after discovery and after each file.
	OnProgress func(processed, total int)
}

// compiledPattern keeps the pattern string next to its compiled glob for
// error reporting.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Scanner extracts structural profiles from a directory tree. It is safe
// for concurrent use: the registry is read-only and the profile cache is
// concurrency-safe.
type Scanner struct {
	registry    *grammar.Registry
	workers     int
	fileTimeout time.Duration
	ignore      []compiledPattern
	cache       otter.Cache[string, pattern.FileProfile]
	onProgress  func(processed, total int)
}

// Result is the outcome of one scan: profiles sorted by relative path,
// plus the diagnostics for files that were skipped or partially parsed.
type Result struct {
	Files       []pattern.FileProfile
	Diagnostics []pattern.Diagnostic
}

// New creates a Scanner over the given registry.
func New(registry *grammar.Registry, opts Options) (*Scanner, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	timeout := opts.FileTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = 4096
	}

	s := &Scanner{
		registry:    registry,
		workers:     workers,
		fileTimeout: timeout,
		onProgress:  opts.OnProgress,
	}

	for _, p := range append(append([]string{}, DefaultIgnore...), opts.Ignore...) {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", p, err)
		}
		s.ignore = append(s.ignore, compiledPattern{pattern: p, glob: g})
	}

	cache, err := otter.MustBuilder[string, pattern.FileProfile](cacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("building profile cache: %w", err)
	}
	s.cache = cache

	return s, nil
}

// job is one unit of extraction work.
type job struct {
	absPath string
	relPath string
	lang    *grammar.Language
}

// outcome is what a worker sends back for one file.
type outcome struct {
	profile     *pattern.FileProfile
	diagnostics []pattern.Diagnostic
}

// Scan extracts profiles for every file under rootDir. language is a
// registered language name or LanguageAll. The scan always completes and
// returns a Result; per-file problems surface only as diagnostics.
func (s *Scanner) Scan(ctx context.Context, rootDir, language string) (*Result, error) {
	var filter *grammar.Language
	if language != "" && language != LanguageAll {
		lang, ok := s.registry.ByName(language)
		if !ok {
			return nil, fmt.Errorf("%w: %q", grammar.ErrUnsupportedLanguage, language)
		}
		filter = lang
	}

	jobs, diagnostics, err := s.discover(rootDir, filter)
	if err != nil {
		return nil, err
	}

	result := &Result{Diagnostics: diagnostics}
	if s.onProgress != nil {
		s.onProgress(0, len(jobs))
	}

	jobCh := make(chan job)
	outCh := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				outCh <- s.extractOne(ctx, j)
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, j := range jobs {
			select {
			case jobCh <- j:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Single-consumer merge: only this goroutine touches the result.
	processed := 0
	for out := range outCh {
		if out.profile != nil {
			result.Files = append(result.Files, *out.profile)
		}
		result.Diagnostics = append(result.Diagnostics, out.diagnostics...)
		processed++
		if s.onProgress != nil {
			s.onProgress(processed, len(jobs))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortResult(result)
	return result, nil
}

// Aggregate combines a scan result with caller metadata into an immutable
// pattern. Files are (re)sorted by relative path so pattern content is
// independent of worker scheduling.
func Aggregate(name, language string, result *Result) *pattern.Pattern {
	files := make([]pattern.FileProfile, len(result.Files))
	copy(files, result.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return pattern.New(name, language, files)
}

// discover walks rootDir and pairs each supported file with its language.
// Unsupported extensions become diagnostics; ignored paths are silent.
func (s *Scanner) discover(rootDir string, filter *grammar.Language) ([]job, []pattern.Diagnostic, error) {
	var jobs []job
	var diagnostics []pattern.Diagnostic

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootDir {
				return err
			}
			diagnostics = append(diagnostics, pattern.Diagnostic{
				Path:    path,
				Code:    pattern.DiagIOError,
				Message: err.Error(),
			})
			return nil
		}

		relPath, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			return relErr
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if path != rootDir && s.ignored(relPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.ignored(relPath) {
			return nil
		}

		ext := filepath.Ext(path)
		lang, lookupErr := s.registry.Lookup(ext)
		if lookupErr != nil {
			diagnostics = append(diagnostics, pattern.Diagnostic{
				Path:    relPath,
				Code:    pattern.DiagUnsupportedLanguage,
				Message: fmt.Sprintf("no grammar registered for extension %q", ext),
			})
			return nil
		}
		if filter != nil && lang != filter {
			return nil
		}

		jobs = append(jobs, job{absPath: path, relPath: relPath, lang: lang})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", rootDir, err)
	}

	return jobs, diagnostics, nil
}

// extractOne reads and extracts a single file, consulting the profile
// cache first. Failures degrade to diagnostics.
func (s *Scanner) extractOne(ctx context.Context, j job) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{}
	}

	source, err := os.ReadFile(j.absPath)
	if err != nil {
		return outcome{diagnostics: []pattern.Diagnostic{{
			Path:    j.relPath,
			Code:    pattern.DiagIOError,
			Message: err.Error(),
		}}}
	}

	key := cacheKey(j.relPath, source)
	if cached, ok := s.cache.Get(key); ok {
		return outcome{profile: &cached}
	}

	res, err := extractor.Extract(j.relPath, source, j.lang, s.fileTimeout)
	if err != nil {
		return outcome{diagnostics: []pattern.Diagnostic{{
			Path:    j.relPath,
			Code:    pattern.DiagParseError,
			Message: err.Error(),
		}}}
	}

	s.cache.Set(key, res.Profile)
	return outcome{profile: &res.Profile, diagnostics: res.Diagnostics}
}

// ignored reports whether a relative slash-separated path matches any
// ignore pattern, directly or as a directory prefix.
func (s *Scanner) ignored(relPath string) bool {
	for _, p := range s.ignore {
		if p.glob.Match(relPath) || p.glob.Match(relPath+"/**") {
			return true
		}
	}
	return false
}

func sortResult(result *Result) {
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	sort.Slice(result.Diagnostics, func(i, j int) bool {
		a, b := result.Diagnostics[i], result.Diagnostics[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Code < b.Code
	})
}

func cacheKey(relPath string, source []byte) string {
	sum := sha256.Sum256(source)
	return relPath + ":" + hex.EncodeToString(sum[:])
}
