package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/ats-analyzer/internal/models"
)

// ErrAnalysisFailed wraps any failure to obtain a usable analysis from the model.
var ErrAnalysisFailed = errors.New("AI analysis failed")

type AnalysisClient interface {
	Analyze(ctx context.Context, prompt string) (*models.AnalysisResult, error)
}

type analysisClient struct {
	generator JSONGenerator
}

func NewAnalysisClient(generator JSONGenerator) AnalysisClient {
	return &analysisClient{generator: generator}
}

// Analyze implements AnalysisClient. It makes exactly one model call.
func (a *analysisClient) Analyze(ctx context.Context, prompt string) (*models.AnalysisResult, error) {
	response, err := a.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	result, err := parseAnalysis(response)
	if err != nil {
		log.Printf("❌ Failed to parse analysis response: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	return result, nil
}

func parseAnalysis(response string) (*models.AnalysisResult, error) {
	jsonStr := extractJSON(response)

	// null and {} carry no analysis.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if len(fields) == 0 {
		return nil, errors.New("empty analysis object")
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("response does not match analysis shape: %w", err)
	}

	return &result, nil
}

// extractJSON strips a markdown fence the model may wrap around the object.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	return strings.TrimSpace(text)
}
