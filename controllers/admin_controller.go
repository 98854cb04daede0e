// file: controllers/admin_controller.go
package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/JB-05/gen-201-mbc/dto"
	"github.com/JB-05/gen-201-mbc/models"
	"github.com/JB-05/gen-201-mbc/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController serves the dashboard: registration review, status
// management with an audit trail, and aggregate insights.
type AdminController struct {
	db *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

func (ac *AdminController) Login(c *gin.Context) {
	var req dto.AdminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Email and password are required")
		return
	}

	var admin models.Admin
	if err := ac.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.Error(c, 4011, "Invalid email or password")
		return
	}
	if !admin.CheckPassword(req.Password) {
		utils.Error(c, 4011, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(admin)
	if err != nil {
		utils.Error(c, 5000, "Failed to issue token")
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "name": admin.Name, "email": admin.Email},
	})
}

// ListRegistrations returns a paginated, filterable view of teams with
// their payment state.
func (ac *AdminController) ListRegistrations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	search := c.Query("search")
	status := c.Query("status")
	district := c.Query("district")

	var teams []models.Team
	var total int64

	db := ac.db.Model(&models.Team{})
	if search != "" {
		db = db.Where("team_name LIKE ? OR school_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if status != "" {
		db = db.Where("registration_status = ?", status)
	}
	if district != "" {
		db = db.Where("school_district = ?", district)
	}

	db.Count(&total)
	if err := db.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&teams).Error; err != nil {
		utils.Error(c, 5000, "Failed to load registrations")
		return
	}

	type RegistrationRow struct {
		ID                 string                    `json:"id"`
		TeamName           string                    `json:"team_name"`
		TeamCode           string                    `json:"team_code"`
		SchoolName         string                    `json:"school_name"`
		SchoolDistrict     string                    `json:"school_district"`
		LeadEmail          string                    `json:"lead_email"`
		LeadPhone          string                    `json:"lead_phone"`
		RegistrationStatus models.RegistrationStatus `json:"registration_status"`
		PaymentStatus      models.PaymentStatus      `json:"payment_status"`
		PaymentID          string                    `json:"payment_id,omitempty"`
		MemberCount        int64                     `json:"member_count"`
		CreatedAt          time.Time                 `json:"created_at"`
	}

	rows := make([]RegistrationRow, 0, len(teams))
	for _, team := range teams {
		var memberCount int64
		ac.db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount)

		var payment models.Payment
		paymentStatus := models.PaymentPending
		paymentID := ""
		if err := ac.db.Where("team_id = ?", team.ID).First(&payment).Error; err == nil {
			paymentStatus = payment.Status
			paymentID = payment.PaymentID
		}

		rows = append(rows, RegistrationRow{
			ID:                 team.ID,
			TeamName:           team.TeamName,
			TeamCode:           team.TeamCode,
			SchoolName:         team.SchoolName,
			SchoolDistrict:     team.SchoolDistrict,
			LeadEmail:          team.LeadEmail,
			LeadPhone:          team.LeadPhone,
			RegistrationStatus: team.RegistrationStatus,
			PaymentStatus:      paymentStatus,
			PaymentID:          paymentID,
			MemberCount:        memberCount,
			CreatedAt:          team.CreatedAt,
		})
	}

	utils.Success(c, "success", gin.H{
		"total":         total,
		"registrations": rows,
	})
}

// GetRegistration returns one team with members, teacher verification,
// project pitch and payment. The payment signature never serializes.
func (ac *AdminController) GetRegistration(c *gin.Context) {
	var team models.Team
	err := ac.db.Preload("Members").Preload("Teacher").Preload("Project").
		First(&team, "id = ?", c.Param("id")).Error
	if err != nil {
		utils.Error(c, 4004, "Registration not found")
		return
	}

	var payment models.Payment
	var paymentOut any
	if err := ac.db.Where("team_id = ?", team.ID).First(&payment).Error; err == nil {
		paymentOut = payment
	}

	utils.Success(c, "success", gin.H{
		"team":    team,
		"payment": paymentOut,
	})
}

// UpdateStatus transitions the registration status and appends to the
// append-only audit trail in the same transaction.
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	var req struct {
		Status  models.RegistrationStatus `json:"status" binding:"required,oneof=pending shortlisted rejected verified"`
		Comment string                    `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid status value")
		return
	}

	var team models.Team
	if err := ac.db.First(&team, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, 4004, "Registration not found")
		return
	}

	adminIDAny, _ := c.Get("admin_id")
	adminID, _ := adminIDAny.(string)

	oldStatus := team.RegistrationStatus
	err := ac.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&team).Update("registration_status", req.Status).Error; err != nil {
			return err
		}
		logEntry := models.TeamStatusLog{
			TeamID:    team.ID,
			AdminID:   adminID,
			OldStatus: oldStatus,
			NewStatus: req.Status,
			Comment:   req.Comment,
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		utils.Error(c, 5000, "Failed to update registration status")
		return
	}

	utils.Success(c, "Registration status updated", gin.H{
		"team_id":    team.ID,
		"old_status": oldStatus,
		"new_status": req.Status,
	})
}

// GetStatusLogs returns the audit trail for one team, newest first.
func (ac *AdminController) GetStatusLogs(c *gin.Context) {
	var logs []models.TeamStatusLog
	err := ac.db.Preload("Admin").
		Where("team_id = ?", c.Param("id")).
		Order("created_at desc").
		Find(&logs).Error
	if err != nil {
		utils.Error(c, 5000, "Failed to load status logs")
		return
	}
	utils.Success(c, "success", gin.H{"logs": logs})
}

// DistrictInsights aggregates registrations per district.
func (ac *AdminController) DistrictInsights(c *gin.Context) {
	type DistrictRow struct {
		District string `json:"district"`
		Total    int64  `json:"total"`
		Verified int64  `json:"verified"`
	}

	var rows []DistrictRow
	err := ac.db.Model(&models.Team{}).
		Select("school_district as district, COUNT(*) as total, SUM(CASE WHEN registration_status = 'verified' THEN 1 ELSE 0 END) as verified").
		Group("school_district").
		Order("total desc").
		Scan(&rows).Error
	if err != nil {
		utils.Error(c, 5000, "Failed to load district insights")
		return
	}
	utils.Success(c, "success", gin.H{"districts": rows})
}

// PaymentInsights aggregates payment records by status plus the total
// amount collected.
func (ac *AdminController) PaymentInsights(c *gin.Context) {
	type StatusRow struct {
		Status models.PaymentStatus `json:"status"`
		Count  int64                `json:"count"`
	}

	var byStatus []StatusRow
	err := ac.db.Model(&models.Payment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		utils.Error(c, 5000, "Failed to load payment insights")
		return
	}

	var collected int64
	err = ac.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&collected).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, 5000, "Failed to load payment insights")
		return
	}

	utils.Success(c, "success", gin.H{
		"by_status":       byStatus,
		"collected_paise": collected,
	})
}
