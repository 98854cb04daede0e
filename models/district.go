// file: models/district.go
package models

import "time"

// District is a reference value scoping which administrative region a
// school belongs to. Seeded at boot, consumed read-only by validation.
type District struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:50;unique;not null" json:"name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (District) TableName() string {
	return "districts"
}

// FallbackDistricts is served when the reference table is unreachable or
// empty, so the form never renders with an empty district list.
var FallbackDistricts = []string{
	"Thiruvananthapuram",
	"Kollam",
	"Pathanamthitta",
	"Alappuzha",
	"Kottayam",
	"Idukki",
	"Ernakulam",
	"Thrissur",
	"Palakkad",
	"Malappuram",
	"Kozhikode",
	"Wayanad",
	"Kannur",
	"Kasaragod",
}
