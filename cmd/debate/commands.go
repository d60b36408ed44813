package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"debate/internal/domain"
	"debate/internal/ranker"
	"debate/internal/splitter"
	"debate/internal/tui"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newBrowseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a speaker and topic interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(a)
		},
	}
}

func runBrowse(a *app) error {
	// Keep the terminal clean while the program owns it.
	if !verbose {
		a.log = a.log.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
	}
	eng, err := a.openEngine()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(tui.New(eng, eng.Summary()), tea.WithAltScreen()).Run()
	return err
}

func newQueryCommand(a *app) *cobra.Command {
	var (
		speaker  string
		topic    string
		keywords string
		k        string
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the utterances closest to a topic",
		Example: `  debate query --speaker obama --topic Economy -k 3
  debate query --speaker romney --keywords "jobs wages taxes"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (topic == "") == (keywords == "") {
				return fmt.Errorf("%w: give exactly one of --topic or --keywords", domain.ErrInvalidRequest)
			}
			eng, err := a.openEngine()
			if err != nil {
				return err
			}
			n := eng.DefaultK()
			if cmd.Flags().Changed("count") {
				n, err = ranker.ParseK(k)
				if err != nil {
					a.log.Warn("result count normalized", zap.Error(err), zap.Int("k", n))
				}
			}
			t, res, err := eng.Query(speaker, topic, keywords, n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("%s on %q (top %d)", strings.ToUpper(speaker), t.Name, len(res))))
			for i, r := range res {
				fmt.Fprintf(out, "%2d. %s %s\n    %s\n", i+1,
					scoreStyle.Render(fmt.Sprintf("%.4f", r.Score)),
					dimStyle.Render(fmt.Sprintf("#%d", r.Index)),
					r.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&speaker, "speaker", "s", "", "speaker id (case-insensitive)")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "preset topic name")
	cmd.Flags().StringVar(&keywords, "keywords", "", "ad hoc keywords, space separated")
	cmd.Flags().StringVarP(&k, "count", "k", "", "number of results (non-positive or non-numeric means 5)")
	_ = cmd.MarkFlagRequired("speaker")
	return cmd
}

func newTopicsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List preset topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.openEngine()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range eng.TopicNames() {
				t, err := eng.PresetTopic(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", headingStyle.Render(t.Name), dimStyle.Render(fmt.Sprintf("(%d terms)", t.Vector.Len())))
			}
			return nil
		},
	}
}

func newSpeakersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "speakers",
		Short: "List speakers with their document counts and key terms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.openEngine()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, sp := range eng.Speakers() {
				terms, n, err := eng.Profile(sp)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n    %s\n", headingStyle.Render(sp), dimStyle.Render(fmt.Sprintf("(%d utterances)", n)), strings.Join(terms, ", "))
			}
			return nil
		},
	}
}

func newClassifyCommand(a *app) *cobra.Command {
	var speaker string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Assign each utterance of a speaker to its closest preset topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.openEngine()
			if err != nil {
				return err
			}
			if len(eng.TopicNames()) == 0 {
				return fmt.Errorf("%w: no preset topics loaded", domain.ErrNotFound)
			}
			asg, err := eng.Classify(speaker)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range eng.TopicNames() {
				t, err := eng.PresetTopic(name)
				if err != nil {
					return err
				}
				idx := asg.ByTopic[t.Name]
				fmt.Fprintf(out, "%s %s\n", headingStyle.Render(t.Name), scoreStyle.Render(fmt.Sprintf("%d", len(idx))))
				if len(idx) > 0 {
					fmt.Fprintf(out, "    %s\n", dimStyle.Render(formatIndexes(idx)))
				}
			}
			fmt.Fprintf(out, "%s %s\n", headingStyle.Render("(none)"), scoreStyle.Render(fmt.Sprintf("%d", len(asg.Unassigned))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&speaker, "speaker", "s", "", "speaker id (case-insensitive)")
	_ = cmd.MarkFlagRequired("speaker")
	return cmd
}

func newSplitCommand(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "split TRANSCRIPT SPEAKER",
		Short: "Extract one speaker's turns from a transcript into a corpus file",
		Long: `split reads a transcript whose turns start with an upper-case "NAME:" tag
and writes the given speaker's turns, one per line, to SPEAKER.<transcript>.txt.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = a.cfg.Corpus.Dir
			}
			path, n, err := splitter.SplitFile(args[0], args[1], outDir)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					a.log.Warn("speaker has no turns in transcript", zap.String("transcript", args[0]), zap.String("speaker", args[1]))
				}
				return err
			}
			a.log.Info("transcript split", zap.String("out", path), zap.Int("blocks", n))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d turns to %s\n", n, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: corpus dir from config)")
	return cmd
}

func formatIndexes(idx []int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = fmt.Sprintf("#%d", v)
	}
	return strings.Join(parts, " ")
}
