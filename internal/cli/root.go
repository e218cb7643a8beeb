package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scaffdev/scaff/internal/grammar"
	"github.com/scaffdev/scaff/internal/pattern"
	"github.com/scaffdev/scaff/internal/scanner"
	"github.com/scaffdev/scaff/internal/suggest"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scaff",
	Short: "Scaff - structural patterns for your codebase",
	Long: `Scaff extracts a structural summary of a codebase, saves it as a
named pattern, and later checks a codebase for structural compliance
against a stored pattern.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scaff.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault("store.dir", "scaffs")
	viper.SetDefault("scanner.workers", 0)
	viper.SetDefault("scanner.file_timeout", 5*time.Second)
	viper.SetDefault("scanner.ignore", []string{})
	viper.SetDefault("scanner.cache_size", 4096)
	viper.SetDefault("suggest.max_edit_distance", 2)
	viper.SetDefault("suggest.max_length_ratio", 0.2)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".scaff" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".scaff")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// newScanner builds a scanner from the effective configuration.
func newScanner(onProgress func(processed, total int)) (*scanner.Scanner, error) {
	return scanner.New(grammar.Default(), scanner.Options{
		Workers:     viper.GetInt("scanner.workers"),
		FileTimeout: viper.GetDuration("scanner.file_timeout"),
		Ignore:      viper.GetStringSlice("scanner.ignore"),
		CacheSize:   viper.GetInt("scanner.cache_size"),
		OnProgress:  onProgress,
	})
}

// newStore opens the pattern store from the effective configuration.
func newStore() *pattern.Store {
	return pattern.NewStore(viper.GetString("store.dir"))
}

// suggestOptions reads the rename-heuristic thresholds.
func suggestOptions() suggest.Options {
	return suggest.Options{
		MaxEditDistance: viper.GetInt("suggest.max_edit_distance"),
		MaxLengthRatio:  viper.GetFloat64("suggest.max_length_ratio"),
	}
}

// resolveLanguage accepts a language identifier or display name and
// returns the canonical identifier, or "all".
func resolveLanguage(registry *grammar.Registry, name string) (string, error) {
	if name == "" || name == scanner.LanguageAll {
		return scanner.LanguageAll, nil
	}
	if lang, ok := registry.ByName(name); ok {
		return lang.Name, nil
	}
	for _, lang := range registry.Languages() {
		if lang.DisplayName == name {
			return lang.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s, all)", grammar.ErrUnsupportedLanguage, name, supportedLanguages(registry))
}

func supportedLanguages(registry *grammar.Registry) string {
	names := ""
	for i, lang := range registry.Languages() {
		if i > 0 {
			names += ", "
		}
		names += lang.Name
	}
	return names
}

// resolveScaffName falls back to the configured default scaff when no
// name was given on the command line.
func resolveScaffName(store *pattern.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	name, err := store.DefaultScaff()
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("no scaff specified and no default scaff set; use 'scaff default set <name>' or pass a scaff name")
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using default scaff: %s\n", name)
	}
	return name, nil
}
