// file: controllers/district_controller.go
package controllers

import (
	"github.com/JB-05/gen-201-mbc/services"
	"github.com/JB-05/gen-201-mbc/utils"
	"github.com/gin-gonic/gin"
)

type DistrictController struct {
	districts services.DistrictSource
}

func NewDistrictController(districts services.DistrictSource) *DistrictController {
	return &DistrictController{districts: districts}
}

func (dc *DistrictController) GetDistricts(c *gin.Context) {
	utils.Success(c, "success", gin.H{"districts": dc.districts.ActiveDistricts()})
}
