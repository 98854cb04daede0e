// file: models/team.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationPending     RegistrationStatus = "pending"
	RegistrationShortlisted RegistrationStatus = "shortlisted"
	RegistrationRejected    RegistrationStatus = "rejected"
	RegistrationVerified    RegistrationStatus = "verified"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Grade string

const (
	Grade11 Grade = "11"
	Grade12 Grade = "12"
)

type FoodPreference string

const (
	FoodVeg    FoodPreference = "veg"
	FoodNonVeg FoodPreference = "non_veg"
	FoodNone   FoodPreference = "none"
)

// Team is one registration unit. It is only ever written after the
// registration fee has been verified, together with its members, the
// teacher verification, the project pitch and the payment record.
type Team struct {
	ID                 string               `gorm:"type:char(36);primarykey" json:"id"`
	TeamName           string               `gorm:"size:100;unique;not null" json:"team_name"`
	TeamCode           string               `gorm:"size:20;unique;not null" json:"team_code"`
	SchoolName         string               `gorm:"size:150;not null" json:"school_name"`
	SchoolDistrict     string               `gorm:"size:50;not null" json:"school_district"`
	LeadPhone          string               `gorm:"size:10;not null" json:"lead_phone"`
	LeadEmail          string               `gorm:"size:100;not null" json:"lead_email"`
	RegistrationStatus RegistrationStatus   `gorm:"size:20;not null;default:'pending'" json:"registration_status"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	Members            []TeamMember         `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Teacher            *TeacherVerification `gorm:"foreignKey:TeamID" json:"teacher,omitempty"`
	Project            *ProjectPitch        `gorm:"foreignKey:TeamID" json:"project,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TeamMember rows are created together with their team, never on their own.
// Exactly one member per team carries IsTeamLead.
type TeamMember struct {
	ID             string         `gorm:"type:char(36);primarykey" json:"id"`
	TeamID         string         `gorm:"type:char(36);index;not null" json:"team_id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Gender         Gender         `gorm:"size:10;not null" json:"gender"`
	Grade          Grade          `gorm:"size:2;not null" json:"grade"`
	Phone          string         `gorm:"size:10;not null" json:"phone"`
	Email          string         `gorm:"size:100;not null" json:"email"`
	FoodPreference FoodPreference `gorm:"size:10;not null;default:'none'" json:"food_preference"`
	IsTeamLead     bool           `gorm:"not null;default:false" json:"is_team_lead"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
