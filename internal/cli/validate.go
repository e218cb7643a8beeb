package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
	"github.com/scaffdev/scaff/internal/scanner"
	"github.com/scaffdev/scaff/internal/suggest"
	"github.com/scaffdev/scaff/internal/validator"
)

var (
	validateDir   string
	validateWatch bool
	validateQuiet bool
)

// validateCmd checks the live codebase against a stored scaff.
var validateCmd = &cobra.Command{
	Use:   "validate [scaff]",
	Short: "Validate codebase against a scaff",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		name, err := resolveScaffName(store, args)
		if err != nil {
			return err
		}

		reference, err := store.Load(name)
		if err != nil {
			if errors.Is(err, pattern.ErrNotFound) {
				return fmt.Errorf("%w; run 'scaff list' to see available scaffs", err)
			}
			return err
		}

		registry := grammar.Default()
		s, err := newScanner(nil)
		if err != nil {
			return err
		}

		if err := runValidation(cmd.Context(), s, registry, reference); err != nil {
			return err
		}
		if !validateWatch {
			return nil
		}

		fmt.Fprintln(os.Stderr, "Watching for changes (ctrl-c to stop)...")
		err = s.Watch(cmd.Context(), validateDir, 500*time.Millisecond, func() {
			if err := runValidation(cmd.Context(), s, registry, reference); err != nil {
				fmt.Fprintln(os.Stderr, "Validation error:", err)
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// runValidation scans the live tree, diffs it against the reference, and
// renders the report.
func runValidation(ctx context.Context, s *scanner.Scanner, registry *grammar.Registry, reference *pattern.Pattern) error {
	result, err := s.Scan(ctx, validateDir, reference.Language)
	if err != nil {
		return err
	}
	live := scanner.Aggregate(reference.Name, reference.Language, result)

	report, err := validator.Validate(reference, live)
	if err != nil {
		return err
	}
	suggestions := suggest.Suggestions(report, suggestOptions())

	renderReport(os.Stdout, report, suggestions, validateQuiet)
	renderDiagnostics(os.Stderr, result.Diagnostics)
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateDir, "dir", "d", ".", "directory to validate")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "revalidate on file changes")
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "only print the summary")
}
