// file: models/status_log.go
package models

import "time"

// TeamStatusLog is the append-only audit trail of registration status
// transitions made from the admin surface.
type TeamStatusLog struct {
	ID        uint32             `gorm:"primarykey" json:"id"`
	TeamID    string             `gorm:"type:char(36);index;not null" json:"team_id"`
	AdminID   string             `gorm:"type:char(36);not null" json:"admin_id"`
	Admin     *Admin             `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	OldStatus RegistrationStatus `gorm:"size:20;not null" json:"old_status"`
	NewStatus RegistrationStatus `gorm:"size:20;not null" json:"new_status"`
	Comment   string             `gorm:"size:500" json:"comment,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

func (TeamStatusLog) TableName() string {
	return "team_status_logs"
}
