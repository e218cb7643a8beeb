package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/scanner"
)

var (
	saveLanguage string
	saveDir      string
	saveQuiet    bool
)

// saveCmd scans a directory and persists the result as a named scaff.
var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a detected pattern as a scaff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		registry := grammar.Default()
		language, err := resolveLanguage(registry, saveLanguage)
		if err != nil {
			return err
		}

		progress := newScanProgress(saveQuiet)
		s, err := newScanner(progress.OnProgress)
		if err != nil {
			return err
		}

		result, err := s.Scan(cmd.Context(), saveDir, language)
		if err != nil {
			return err
		}
		if len(result.Files) == 0 {
			return fmt.Errorf("no files found to save as pattern")
		}

		p := scanner.Aggregate(name, language, result)
		renderPatternSummary(os.Stdout, registry, p)
		renderDiagnostics(os.Stderr, result.Diagnostics)

		store := newStore()
		if err := store.Save(p); err != nil {
			return err
		}
		fmt.Printf("Saved pattern %q to %s\n", p.Name, store.Dir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringVarP(&saveLanguage, "language", "l", scanner.LanguageAll, "language to scan for (e.g. rust, typescript, or all)")
	saveCmd.Flags().StringVarP(&saveDir, "dir", "d", ".", "directory to scan")
	saveCmd.Flags().BoolVarP(&saveQuiet, "quiet", "q", false, "suppress progress output")
}
