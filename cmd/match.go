package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/resume"
)

var matchCmd = &cobra.Command{
	Use:   "match <resume-file> <job-source>",
	Short: "Match a resume against a job posting",
	Long: `Match a resume against a job posting.

The job source is a text, JSON or YAML file, "-" for stdin, an http(s) URL
or hh:<vacancy id> for a vacancy on hh.ru.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("title", "", "job title (overrides the title found in the source)")
	matchCmd.Flags().String("company", "", "company name (overrides the company found in the source)")
}

func match(cmd *cobra.Command, resumePath, jobRef string) {
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

	postings, err := newJobLoader(config, cmd.InOrStdin(), log).Load(ctx, jobRef)
	if err != nil {
		log.Fatal("loading a job posting", zap.String("source", jobRef), zap.Error(err))
	}

	if len(postings) > 1 {
		log.Warn("source holds several postings, matching the first one",
			zap.Int("count", len(postings)),
			zap.String("hint", "use the rank command to match all of them"),
		)
	}

	job := postings[0].Job()
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		job.Title = title
	}
	if company, _ := cmd.Flags().GetString("company"); company != "" {
		job.Company = company
	}

	result, err := matcher.MatchResumeToJob(rec, job)
	if err != nil {
		log.Fatal("matching a resume", zap.Error(err))
	}

	if rewriter := optionalRewriter(ctx, config, log); rewriter != nil {
		ai.EnhanceSummaries(ctx, rewriter, log, rec, job, result)
	}

	log.Info("resume matched", logger.ScanFields(result.ScanID, result.ResumeID, result.JobID, string(result.Verdict), result.MatchScore)...)

	if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
		log.Fatal("writing the result", zap.Error(err))
	}
}
