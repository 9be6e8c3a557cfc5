package models

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is a stored history entry for one successful /analyze call.
type Analysis struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename        string    `gorm:"type:text" json:"filename"`
	FilePath        string    `gorm:"type:text" json:"-"`
	JobDescription  string    `gorm:"type:text" json:"job_description"`
	MatchPercentage float64   `gorm:"type:decimal(5,2)" json:"match_percentage"`
	MatchLevel      string    `gorm:"type:text;index" json:"match_level"`
	Summary         string    `gorm:"type:text" json:"summary"`
	ResultJSON      string    `gorm:"type:jsonb" json:"-"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`

	Result *AnalysisResult `gorm:"-" json:"result,omitempty"`
}

func (Analysis) TableName() string {
	return "analyses"
}
