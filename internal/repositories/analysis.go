package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-analyzer/internal/models"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	ListRecent(limit int) ([]models.Analysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create stores the analysis, serializing Result into ResultJSON.
func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}
	if analysis.Result != nil {
		raw, err := json.Marshal(analysis.Result)
		if err != nil {
			return fmt.Errorf("failed to encode analysis result: %w", err)
		}
		analysis.ResultJSON = string(raw)
	}

	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}

	if err := decodeResult(&analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) ListRecent(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	if err := decodeResults(analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

func decodeResults(analyses []models.Analysis) error {
	for i := range analyses {
		if err := decodeResult(&analyses[i]); err != nil {
			return err
		}
	}
	return nil
}

func decodeResult(analysis *models.Analysis) error {
	if analysis.ResultJSON == "" {
		return nil
	}
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(analysis.ResultJSON), &result); err != nil {
		return fmt.Errorf("failed to decode stored result: %w", err)
	}
	analysis.Result = &result
	return nil
}
