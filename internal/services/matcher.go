package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

// ErrNoExtractableText is returned when the resume yields no usable text,
// whether it was empty or unreadable.
var ErrNoExtractableText = errors.New("could not extract text from resume")

type MatchInput struct {
	Filename       string
	FilePath       string
	JobDescription string
}

type MatchOutcome struct {
	Result *models.AnalysisResult
	// AnalysisID is uuid.Nil unless a history record was written.
	AnalysisID uuid.UUID
}

type MatchService interface {
	Analyze(ctx context.Context, input MatchInput) (*MatchOutcome, error)
}

// MatchOption enables the optional post-analysis side effects.
type MatchOption func(*matchService)

func WithHistory(repo repositories.AnalysisRepository) MatchOption {
	return func(m *matchService) { m.history = repo }
}

func WithResumeIndex(index ResumeIndex, embedder Embedder) MatchOption {
	return func(m *matchService) {
		m.index = index
		m.embedder = embedder
	}
}

type matchService struct {
	extractor     TextExtractor
	promptBuilder *PromptBuilder
	client        AnalysisClient
	history       repositories.AnalysisRepository
	index         ResumeIndex
	embedder      Embedder
}

func NewMatchService(extractor TextExtractor, client AnalysisClient, opts ...MatchOption) MatchService {
	m := &matchService{
		extractor:     extractor,
		promptBuilder: NewPromptBuilder(),
		client:        client,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *matchService) Analyze(ctx context.Context, input MatchInput) (*MatchOutcome, error) {
	log.Printf("📄 Extracting text from %s", input.Filename)
	resumeText, err := m.extractor.ExtractText(input.FilePath)
	if err != nil {
		log.Printf("❌ Error extracting resume: %v", err)
		resumeText = ""
	}

	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrNoExtractableText
	}

	prompt := m.promptBuilder.BuildATSAnalysisPrompt(resumeText, input.JobDescription)
	log.Printf("🤖 Requesting analysis, prompt length: %d characters", len(prompt))

	result, err := m.client.Analyze(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: empty result", ErrAnalysisFailed)
	}

	outcome := &MatchOutcome{Result: result}
	outcome.AnalysisID = m.record(input, result)
	m.indexResume(ctx, outcome, input.Filename, resumeText)

	log.Printf("✅ Analysis completed for %s: %.0f%% (%s)", input.Filename, result.MatchPercentage, result.MatchLevel)
	return outcome, nil
}

func (m *matchService) record(input MatchInput, result *models.AnalysisResult) uuid.UUID {
	if m.history == nil {
		return uuid.Nil
	}

	analysis := &models.Analysis{
		ID:              uuid.New(),
		Filename:        input.Filename,
		FilePath:        input.FilePath,
		JobDescription:  input.JobDescription,
		MatchPercentage: result.MatchPercentage,
		MatchLevel:      string(result.MatchLevel),
		Summary:         result.Summary,
		Result:          result,
	}
	if err := m.history.Create(analysis); err != nil {
		log.Printf("⚠️  Failed to record analysis history: %v", err)
		return uuid.Nil
	}

	return analysis.ID
}

func (m *matchService) indexResume(ctx context.Context, outcome *MatchOutcome, filename, resumeText string) {
	if m.index == nil || m.embedder == nil {
		return
	}

	embedding, err := m.embedder.GenerateEmbedding(ctx, m.promptBuilder.BuildSearchDocument(resumeText, outcome.Result))
	if err != nil {
		log.Printf("⚠️  Failed to embed resume for index: %v", err)
		return
	}

	doc := IndexedResume{
		Filename:        filename,
		MatchPercentage: outcome.Result.MatchPercentage,
		MatchLevel:      string(outcome.Result.MatchLevel),
		Summary:         outcome.Result.Summary,
	}
	if outcome.AnalysisID != uuid.Nil {
		doc.AnalysisID = outcome.AnalysisID.String()
	}

	if err := m.index.IndexResume(ctx, doc, embedding); err != nil {
		log.Printf("⚠️  Failed to index resume: %v", err)
	}
}
