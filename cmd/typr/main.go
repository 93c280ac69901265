// Package main provides the CLI entrypoint for typr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typr/internal/config"
	"github.com/verte-zerg/typr/internal/engine"
	"github.com/verte-zerg/typr/internal/highscore"
	"github.com/verte-zerg/typr/internal/history"
	"github.com/verte-zerg/typr/internal/model"
	"github.com/verte-zerg/typr/internal/scoresui"
	"github.com/verte-zerg/typr/internal/stats"
	"github.com/verte-zerg/typr/internal/tui"
	"github.com/verte-zerg/typr/internal/words"
)

const (
	defaultWords       = 25
	defaultPunct       = 0.0
	defaultScoresLimit = 10
	defaultCurveWindow = 20
)

var (
	practiceTimed   int
	practiceWords   int
	practicePunct   float64
	practiceNumbers bool
	practiceList    string
	practiceBook    string
	practiceChunk   int
	practiceTop     int

	scoresMode  string
	scoresLimit int
	scoresPlain bool

	statsMode   string
	statsSince  string
	statsLast   int
	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typr",
		Short:         "Terminal typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceTimed, "timed", 0, "timed mode: session length in seconds")
	rootCmd.Flags().IntVar(&practiceWords, "words", 0, "word-count mode: number of words")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().BoolVar(&practiceNumbers, "numbers", false, "enable occasional number injection")
	rootCmd.Flags().StringVar(&practiceList, "list", "", "word set name or custom word list file path")
	rootCmd.Flags().StringVar(&practiceBook, "book", "", "practice a book/passage file in order")
	rootCmd.Flags().IntVar(&practiceChunk, "chunk", 0, "group book words into chunks of this size")
	rootCmd.Flags().IntVar(&practiceTop, "top", model.DefaultTopN, "highscore entries kept per mode")

	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "timed", &practiceTimed, fileCfg.Practice.Timed)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.Punct)
	applyBoolConfig(cmd, "numbers", &practiceNumbers, fileCfg.Practice.Numbers)
	applyStringConfig(cmd, "list", &practiceList, fileCfg.Practice.List)
	applyIntConfig(cmd, "top", &practiceTop, fileCfg.Practice.Top)

	// A mode flag given on the command line wins over the other mode
	// coming from the config file.
	if practiceTimed > 0 && practiceWords > 0 {
		if cmd.Flags().Changed("timed") && !cmd.Flags().Changed("words") {
			practiceWords = 0
		} else if cmd.Flags().Changed("words") && !cmd.Flags().Changed("timed") {
			practiceTimed = 0
		}
	}
	if practiceTimed == 0 && practiceWords == 0 {
		practiceWords = defaultWords
	}
	cfg := model.SessionConfig{
		TimedSeconds: practiceTimed,
		WordCount:    practiceWords,
		PunctProb:    practicePunct,
		Numbers:      practiceNumbers,
		WordList:     practiceList,
		TopN:         practiceTop,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	newSource, err := buildSource(cfg, practiceBook, practiceChunk)
	if err != nil {
		return err
	}

	scores, err := highscore.Open(config.DefaultHighscorePath(), cfg.Limit())
	if err != nil {
		logErrf("%v; starting with an empty leaderboard\n", err)
	}

	var hist *history.Store
	hist, err = history.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v; sessions will not be recorded\n", err)
		hist = nil
	} else {
		defer func() {
			if cerr := hist.Close(); cerr != nil {
				logErrf("failed to close history db: %v\n", cerr)
			}
		}()
	}

	uiModel, err := tui.NewModel(cfg, scores, hist, newSource)
	if err != nil {
		return err
	}
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildSource resolves the word supplier: an ordered book sequence or a
// randomized generator over a named set / custom list.
func buildSource(cfg model.SessionConfig, bookPath string, chunk int) (func() engine.WordSource, error) {
	if bookPath != "" {
		bookWords, err := words.LoadBook(bookPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load book: %w", err)
		}
		if chunk > 0 {
			bookWords = words.ChunkWords(bookWords, chunk)
		}
		return func() engine.WordSource {
			return words.NewSequenceSource(bookWords)
		}, nil
	}
	base, err := words.Load(cfg.WordList)
	if err != nil {
		return nil, wordListLoadError(cfg.WordList, err)
	}
	return func() engine.WordSource {
		return words.NewRandomSource(base, cfg.PunctProb, cfg.Numbers)
	}, nil
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show highscores",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.Flags().StringVar(&scoresMode, "mode", "", "mode key filter (e.g. timed-60-p0-n0)")
	cmd.Flags().IntVar(&scoresLimit, "limit", defaultScoresLimit, "entries shown per mode")
	cmd.Flags().BoolVar(&scoresPlain, "plain", false, "plain output instead of the interactive browser")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	store, err := highscore.Open(config.DefaultHighscorePath(), model.DefaultTopN)
	if err != nil {
		logErrf("%v; showing an empty leaderboard\n", err)
	}
	if scoresPlain || !stats.IsTerminal(os.Stdout) {
		return stats.RenderScores(cmd.OutOrStdout(), store, scoresMode, scoresLimit)
	}
	program := tea.NewProgram(scoresui.NewModel(store, scoresLimit), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run scores TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode key filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsWindow, "window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	hist, err := history.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := hist.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	records, err := hist.ListResults(context.Background(), model.HistoryFilter{
		ModeKey: statsMode,
		Since:   sinceTime,
		Last:    statsLast,
	})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), records, statsWindow)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typr configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# timed = 60              # Timed mode: seconds
# words = %d              # Word-count mode: number of words
# punct = %.2f            # Punctuation probability per word (0-1)
# numbers = false         # Occasional number injection
# list = %q               # Word set name or custom list path
# top = %d                # Highscore entries kept per mode
`,
		defaultWords,
		defaultPunct,
		words.DefaultSet,
		model.DefaultTopN,
	)
}

func wordListLoadError(list string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("built-in sets: %s", strings.Join(words.SetNames(), ", ")),
		"or pass a file path with one word per line",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
