package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/services"
)

// AnalysisIDHeader carries the history record id when history is enabled.
const AnalysisIDHeader = "X-Analysis-ID"

type AnalyzeHandler struct {
	storageService services.StorageService
	matchService   services.MatchService
	maxFileSize    int64
}

func NewAnalyzeHandler(
	storageService services.StorageService,
	matchService services.MatchService,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		storageService: storageService,
		matchService:   matchService,
		maxFileSize:    maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume PDF is required",
		})
	}

	jobDescription := c.FormValue("job_description")
	if jobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Job description is required",
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filePath, err := h.storageService.SaveFile(c.UserContext(), resumeFile)
	if err != nil {
		log.Printf("❌ Failed to save resume %s: %v", resumeFile.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save resume",
		})
	}

	outcome, err := h.matchService.Analyze(c.UserContext(), services.MatchInput{
		Filename:       resumeFile.Filename,
		FilePath:       filePath,
		JobDescription: jobDescription,
	})
	if errors.Is(err, services.ErrNoExtractableText) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract text from PDF",
		})
	}
	if err != nil {
		log.Printf("❌ Analysis failed for %s: %v", resumeFile.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI analysis failed",
		})
	}

	if outcome.AnalysisID != uuid.Nil {
		c.Set(AnalysisIDHeader, outcome.AnalysisID.String())
	}

	return c.JSON(outcome.Result)
}
