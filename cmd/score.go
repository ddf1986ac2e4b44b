package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/resume"
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume-file>",
	Short: "Score a resume document (JSON or YAML) for ATS compatibility",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args[0])
	},
}

var scoreTextCmd = &cobra.Command{
	Use:   "score-text <text-file|->",
	Short: "Score plain resume text read from a file or stdin",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scoreText(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(scoreTextCmd)

	scoreTextCmd.Flags().String("file-name", "", "file name reported in the result (default is the base name of the input file)")
}

func score(cmd *cobra.Command, path string) {
	config, log := setup()

	scorer, err := newScorer(config)
	if err != nil {
		log.Fatal("creating a scorer", zap.Error(err))
	}

	rec, err := resume.Load(path)
	if err != nil {
		log.Fatal("loading a resume", zap.String("path", path), zap.Error(err))
	}

	result, err := scorer.ScoreResume(rec)
	if err != nil {
		log.Fatal("scoring a resume", zap.Error(err))
	}

	log.Info("resume scored", logger.ScanFields(result.ScanID, result.ResumeID, "", string(result.Verdict), result.Overall)...)

	if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
		log.Fatal("writing the result", zap.Error(err))
	}
}

func scoreText(cmd *cobra.Command, path string) {
	config, log := setup()

	scorer, err := newScorer(config)
	if err != nil {
		log.Fatal("creating a scorer", zap.Error(err))
	}

	text, err := readText(cmd.InOrStdin(), path)
	if err != nil {
		log.Fatal("reading resume text", zap.String("path", path), zap.Error(err))
	}

	fileName, _ := cmd.Flags().GetString("file-name")
	if fileName == "" && path != "-" {
		fileName = filepath.Base(path)
	}

	result := scorer.ScoreResumeText(text, fileName)

	log.Info("resume text scored", logger.ScanFields(result.ScanID, "", "", string(result.Verdict), result.Overall)...)

	if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
		log.Fatal("writing the result", zap.Error(err))
	}
}

func readText(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
