package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type SearchHandler struct {
	searchService services.SearchService
}

func NewSearchHandler(searchService services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// HandleSearch handles POST /search
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	results, err := h.searchService.Search(c.UserContext(), req.Query, req.Limit)
	if err != nil {
		log.Printf("❌ Resume search failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	hits := make([]models.SearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, models.SearchHit{
			AnalysisID:      r.AnalysisID,
			Filename:        r.Filename,
			Score:           r.Score,
			MatchPercentage: r.MatchPercentage,
			MatchLevel:      r.MatchLevel,
			Summary:         r.Summary,
		})
	}

	return c.JSON(models.SearchResponse{
		Query:   req.Query,
		Results: hits,
	})
}
