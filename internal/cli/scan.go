package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/scanner"
)

var (
	scanLanguage string
	scanDir      string
	scanQuiet    bool
)

// scanCmd scans a directory and prints the structural profiles it finds.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the codebase for structural patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := grammar.Default()
		language, err := resolveLanguage(registry, scanLanguage)
		if err != nil {
			return err
		}

		progress := newScanProgress(scanQuiet)
		s, err := newScanner(progress.OnProgress)
		if err != nil {
			return err
		}

		result, err := s.Scan(cmd.Context(), scanDir, language)
		if err != nil {
			return err
		}

		renderScanResult(os.Stdout, registry, result, language)
		renderDiagnostics(os.Stderr, result.Diagnostics)

		if len(result.Files) > 0 {
			fmt.Println("\nTo save this pattern, run: scaff save <pattern-name> --language " + language)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanLanguage, "language", "l", scanner.LanguageAll, "language to scan for (e.g. rust, typescript, or all)")
	scanCmd.Flags().StringVarP(&scanDir, "dir", "d", ".", "directory to scan")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress progress output")
}
