package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

var (
	analyzeJobDescription string
	analyzeJobFile        string
	analyzeJSON           bool
)

// newMatchService is swapped in tests to avoid calling Gemini.
var newMatchService = func(ctx context.Context) (services.MatchService, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		return nil, err
	}

	return services.NewMatchService(services.NewTextExtractor(), services.NewAnalysisClient(gemini)), nil
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file>",
	Short: "Analyze a local resume against a job description",
	Long: `Extracts text from a local PDF, DOCX or text resume, asks Gemini for an
ATS match analysis against the job description and prints the result.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobDescription, "job-description", "j", "", "job description text")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job-file", "f", "", "file containing the job description")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw JSON result")
	analyzeCmd.MarkFlagsMutuallyExclusive("job-description", "job-file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	resumePath := args[0]
	if _, err := os.Stat(resumePath); err != nil {
		return fmt.Errorf("resume not found: %w", err)
	}

	jobDescription, err := readJobDescription()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	matcher, err := newMatchService(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	outcome, err := matcher.Analyze(ctx, services.MatchInput{
		Filename:       filepath.Base(resumePath),
		FilePath:       resumePath,
		JobDescription: jobDescription,
	})
	if errors.Is(err, services.ErrNoExtractableText) {
		return errors.New("could not extract text from resume")
	}
	if err != nil {
		return errors.New("AI analysis failed")
	}

	if analyzeJSON {
		return writeJSON(cmd.OutOrStdout(), outcome.Result)
	}
	writeReport(cmd.OutOrStdout(), outcome.Result)
	return nil
}

func readJobDescription() (string, error) {
	if analyzeJobFile != "" {
		data, err := os.ReadFile(analyzeJobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		analyzeJobDescription = string(data)
	}

	if analyzeJobDescription == "" {
		return "", errors.New("job description is required (--job-description or --job-file)")
	}
	return analyzeJobDescription, nil
}

func writeJSON(w io.Writer, result *models.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeReport(w io.Writer, result *models.AnalysisResult) {
	fmt.Fprintf(w, "Match: %.0f%% (%s)\n", result.MatchPercentage, result.MatchLevel)
	writeList(w, "Matching skills", result.MatchingSkills)
	writeList(w, "Missing skills", result.MissingSkills)
	writeList(w, "Strengths", result.Strengths)
	writeList(w, "Suggestions", result.Suggestions)
	if result.Summary != "" {
		fmt.Fprintf(w, "\nSummary:\n  %s\n", result.Summary)
	}
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", strings.TrimSpace(item))
	}
}
