// file: models/project.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectPitch is the five-question pitch collected on the final form step.
type ProjectPitch struct {
	ID                   string    `gorm:"type:char(36);primarykey" json:"id"`
	TeamID               string    `gorm:"type:char(36);uniqueIndex;not null" json:"team_id"`
	IdeaTitle            string    `gorm:"size:150;not null" json:"idea_title"`
	ProblemStatement     string    `gorm:"type:text;not null" json:"problem_statement"`
	SolutionIdea         string    `gorm:"type:text;not null" json:"solution_idea"`
	ImplementationPlan   string    `gorm:"type:text;not null" json:"implementation_plan"`
	Beneficiaries        string    `gorm:"type:text;not null" json:"beneficiaries"`
	TeamworkContribution string    `gorm:"type:text;not null" json:"teamwork_contribution"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (ProjectPitch) TableName() string {
	return "project_pitches"
}

func (p *ProjectPitch) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
