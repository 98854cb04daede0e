// file: models/teacher.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salutation string

const (
	SalutationSir  Salutation = "sir"
	SalutationMaam Salutation = "maam"
)

// TeacherVerification names the supervising teacher for a team. One per
// team; it is not checked against any school roster.
type TeacherVerification struct {
	ID           string     `gorm:"type:char(36);primarykey" json:"id"`
	TeamID       string     `gorm:"type:char(36);uniqueIndex;not null" json:"team_id"`
	Salutation   Salutation `gorm:"size:10;not null" json:"salutation"`
	TeacherName  string     `gorm:"size:100;not null" json:"teacher_name"`
	TeacherPhone string     `gorm:"size:10;not null" json:"teacher_phone"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (TeacherVerification) TableName() string {
	return "teacher_verifications"
}

func (t *TeacherVerification) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
