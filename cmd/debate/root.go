package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"debate/internal/config"
	"debate/internal/embedding/termfreq"
	"debate/internal/logger"
	"debate/internal/service"
)

var (
	cfgFile string
	verbose bool
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg *config.AppConfig
	log *zap.Logger
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "debate",
		Short: "Search debate transcripts by topic",
		Long: `debate ranks each speaker's utterances against a topic by cosine
similarity of term-count vectors and shows the closest excerpts.

Topics come from a keyword file ("T: Name" headers followed by one term per
line) or from keywords typed at query time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(a)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to YAML config file (optional; uses ./config.yaml or ~/.config/debate/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newBrowseCommand(a))
	rootCmd.AddCommand(newQueryCommand(a))
	rootCmd.AddCommand(newTopicsCommand(a))
	rootCmd.AddCommand(newSpeakersCommand(a))
	rootCmd.AddCommand(newClassifyCommand(a))
	rootCmd.AddCommand(newSplitCommand(a))
	return rootCmd
}

func (a *app) setup() error {
	_ = godotenv.Load()

	var err error
	if cfgFile == "" {
		a.cfg, _, err = config.LoadDefault()
	} else {
		a.cfg, err = config.Load(cfgFile)
	}
	if err != nil {
		return err
	}
	level := a.cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	a.log, err = logger.NewLogger(a.cfg.Logging.Env, level)
	return err
}

func (a *app) openEngine() (*service.Engine, error) {
	return service.Open(service.Options{
		CorpusDir:  a.cfg.Corpus.Dir,
		Pattern:    a.cfg.Corpus.Pattern,
		TopicsFile: a.cfg.Topics.File,
		Tokenizer: termfreq.Options{
			CaseFold: a.cfg.Tokenizer.Folds(),
			Stem:     a.cfg.Tokenizer.Stem,
		},
		DefaultK: a.cfg.Search.DefaultK,
		KeyTerms: a.cfg.Summary.KeyTerms,
	}, a.log)
}
