package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/filtering"
	"github.com/spigell/resume-scorer/internal/ranking"
	"github.com/spigell/resume-scorer/internal/resume"
)

const (
	PromptReportByCompanies = "Report by companies"
	PromptResultsToFile     = "Dump results to file"
	PromptExit              = "exit"
)

var rankCmd = &cobra.Command{
	Use:   "rank <resume-file> <job-source>...",
	Short: "Match a resume against many job postings and rank them",
	Long: `Match a resume against many job postings and rank them best first.

Every job source may be a text, JSON or YAML file (JSON and YAML files may
hold a list of postings), "-" for stdin, an http(s) URL or hh:<vacancy id>.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().BoolP("interactive", "i", false, "browse the ranked postings and their full reports")
	rankCmd.Flags().Bool("full", false, "print full match reports instead of a summary")
	rankCmd.Flags().Int("minimum-score", 0, "drop postings with a lower match score")
	rankCmd.Flags().Int("concurrency", ranking.DefaultConcurrency, "number of postings matched at the same time")
	rankCmd.Flags().Bool("keep-duplicates", false, "do not collapse postings that point to the same job")

	viper.BindPFlag("rank.minimum-score", rankCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("rank.concurrency", rankCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("rank.keep-duplicates", rankCmd.Flags().Lookup("keep-duplicates"))
}

// rankEntry is the summary line printed for a ranked posting.
type rankEntry struct {
	Rank    int    `json:"rank"`
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	URL     string `json:"url,omitempty"`
	Score   int    `json:"score"`
	Verdict string `json:"verdict,omitempty"`
}

func rank(cmd *cobra.Command, resumePath string, jobRefs []string) {
	ctx := cmd.Context()
	config, log := setup()

	matcher, err := newMatcher(config)
	if err != nil {
		log.Fatal("creating a matcher", zap.Error(err))
	}

	rec, err := resume.Load(resumePath)
	if err != nil {
		log.Fatal("loading a resume", zap.String("path", resumePath), zap.Error(err))
	}

	postings, err := newJobLoader(config, cmd.InOrStdin(), log).LoadAll(ctx, jobRefs)
	if err != nil {
		log.Fatal("loading job postings", zap.Error(err))
	}

	log.Info("getting job postings", zap.Int("count", len(postings)))

	ranker := ranking.New(matcher, ranking.Options{
		Concurrency: config.Rank.Concurrency,
		Filters:     &config.Rank.Config,
		Rewriter:    optionalRewriter(ctx, config, log),
		Logger:      log,
	})

	ranked, err := ranker.Rank(ctx, rec, postings)
	if err != nil {
		log.Fatal("ranking failed", zap.Error(err))
	}

	if len(ranked) == 0 {
		log.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	out := cmd.OutOrStdout()

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := browse(ctx, out, log, ranked); err != nil {
			log.Fatal("exiting", zap.Error(err))
		}
		return
	}

	var report any = summarize(ranked)
	if full, _ := cmd.Flags().GetBool("full"); full {
		report = ranked
	}

	if err := writeJSON(out, report); err != nil {
		log.Fatal("writing the result", zap.Error(err))
	}
}

func summarize(ranked []*filtering.Candidate) []rankEntry {
	entries := make([]rankEntry, 0, len(ranked))
	for i, c := range ranked {
		entry := rankEntry{
			Rank:    i + 1,
			ID:      c.ID(),
			Title:   c.Posting.Title,
			Company: c.Posting.Company,
			URL:     c.Posting.URL,
			Score:   c.Score(),
		}
		if c.Result != nil {
			entry.Verdict = string(c.Result.Verdict)
		}
		entries = append(entries, entry)
	}
	return entries
}

func browse(ctx context.Context, out io.Writer, log *zap.Logger, ranked []*filtering.Candidate) error {
	candidates := &filtering.Candidates{Items: ranked}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		items := make([]string, 0, len(ranked)+3)
		for _, e := range summarize(ranked) {
			items = append(items, fmt.Sprintf("%3d  %s / %s / %s", e.Score, e.Title, e.Company, e.URL))
		}
		items = append(items, PromptReportByCompanies, PromptResultsToFile, PromptExit)

		selectPrompt := promptui.Select{
			Label: "Choose a posting and press ENTER",
			Items: items,
			Size:  10,
		}

		idx, selected, err := selectPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		if idx < len(ranked) {
			if err := writeJSON(out, ranked[idx].Result); err != nil {
				return err
			}
			continue
		}

		switch selected {
		case PromptReportByCompanies:
			if err := writeJSON(out, candidates.ReportByCompany()); err != nil {
				return err
			}
		case PromptResultsToFile:
			filename, err := dumpToTmpFile(ranked)
			if err != nil {
				return fmt.Errorf("dump results to file: %w", err)
			}
			log.Info("dumping result to file", zap.String("filename", filename))
		case PromptExit:
			log.Info("exiting", zap.String("reason", "got exit from prompt"))
			return nil
		default:
			return fmt.Errorf("invalid action: %s", selected)
		}
	}
}

func dumpToTmpFile(ranked []*filtering.Candidate) (string, error) {
	f, err := os.CreateTemp("", app+"-rank-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		return "", err
	}

	if _, err := f.Write(data); err != nil {
		return "", err
	}

	return f.Name(), nil
}
