package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildATSAnalysisPrompt embeds both texts verbatim. Nothing is escaped, so
// instructions inside the resume or job description reach the model as-is.
func (pb *PromptBuilder) BuildATSAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert Applicant Tracking System (ATS) specializing in Tech Recruitment.

Task: Analyze the provided Resume against the Job Description.

Resume Content:
%s

Job Description:
%s

Return the analysis strictly as a JSON object with this structure:
{
  "match_percentage": number,
  "match_level": %s,
  "matching_skills": [string],
  "missing_skills": [string],
  "strengths": [string],
  "suggestions": [string],
  "summary": string
}`,
		resumeText, jobDescription, matchLevelUnion())
}

// BuildSearchDocument is the text embedded for the resume index.
func (pb *PromptBuilder) BuildSearchDocument(resumeText string, result *models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(resumeText)
	if result != nil && len(result.MatchingSkills) > 0 {
		b.WriteString("\n\nSkills: ")
		b.WriteString(strings.Join(result.MatchingSkills, ", "))
	}
	return b.String()
}

func matchLevelUnion() string {
	quoted := make([]string, len(models.MatchLevels))
	for i, level := range models.MatchLevels {
		quoted[i] = fmt.Sprintf("%q", string(level))
	}
	return strings.Join(quoted, " | ")
}
