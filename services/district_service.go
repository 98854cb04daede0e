// file: services/district_service.go
package services

import (
	"log"

	"github.com/JB-05/gen-201-mbc/models"
	"gorm.io/gorm"
)

// DistrictSource provides the controlled vocabulary for the school district
// field.
type DistrictSource interface {
	ActiveDistricts() []string
}

type DistrictService struct {
	db *gorm.DB
}

func NewDistrictService(db *gorm.DB) *DistrictService {
	return &DistrictService{db: db}
}

// ActiveDistricts returns the reference list, falling back to the static
// list when storage is unreachable or empty.
func (s *DistrictService) ActiveDistricts() []string {
	var names []string
	err := s.db.Model(&models.District{}).
		Where("active = ?", true).
		Order("name asc").
		Pluck("name", &names).Error
	if err != nil {
		log.Printf("District lookup failed, serving fallback list: %v", err)
		return models.FallbackDistricts
	}
	if len(names) == 0 {
		return models.FallbackDistricts
	}
	return names
}
