// file: services/registration_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/JB-05/gen-201-mbc/dto"
	"github.com/JB-05/gen-201-mbc/models"
	"github.com/JB-05/gen-201-mbc/utils"
	"gorm.io/gorm"
)

var ErrTeamNameTaken = errors.New("team name already taken")

// Registrar is the persistence boundary the form controller talks to.
type Registrar interface {
	IsTeamNameAvailable(name string) (bool, error)
	RegisterTeam(in RegisterTeamInput) (*RegisterTeamResult, error)
}

type RegisterTeamInput struct {
	Team    dto.TeamInfoReq
	Lead    dto.MemberReq
	Members []dto.MemberReq
	Teacher dto.TeacherReq
	Project dto.ProjectPitchReq

	// Verified gateway identifiers. The signature is stored write-once and
	// never leaves the payments table.
	OrderID   string
	PaymentID string
	Signature string
	Amount    int64
	Currency  string
}

type RegisterTeamResult struct {
	TeamID    string
	TeamCode  string
	CreatedAt time.Time

	// AlreadyRegistered is set when the order id had already been persisted;
	// the earlier registration is returned instead of creating a second team.
	AlreadyRegistered bool
}

type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// IsTeamNameAvailable is read-only and race-prone by nature; RegisterTeam
// re-checks inside its transaction and the unique index has the final word.
func (s *RegistrationService) IsTeamNameAvailable(name string) (bool, error) {
	name = strings.TrimSpace(name)
	var count int64
	err := s.db.Model(&models.Team{}).Where("team_name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// RegisterTeam persists the whole registration in one transaction: team,
// ordered members (lead first), teacher verification, project pitch and the
// completed payment row. Either everything lands or nothing does.
func (s *RegistrationService) RegisterTeam(in RegisterTeamInput) (*RegisterTeamResult, error) {
	var result *RegisterTeamResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Same verified order submitted twice must not create a second team.
		var existing models.Payment
		if err := tx.Where("order_id = ?", in.OrderID).First(&existing).Error; err == nil {
			var team models.Team
			if err := tx.First(&team, "id = ?", existing.TeamID).Error; err != nil {
				return err
			}
			result = &RegisterTeamResult{
				TeamID:            team.ID,
				TeamCode:          team.TeamCode,
				CreatedAt:         team.CreatedAt,
				AlreadyRegistered: true,
			}
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Name availability re-validated at write time; time has passed since
		// the pre-payment check.
		var count int64
		if err := tx.Model(&models.Team{}).Where("team_name = ?", in.Team.TeamName).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTeamNameTaken
		}

		team := models.Team{
			TeamName:           in.Team.TeamName,
			TeamCode:           utils.GenerateTeamCode(),
			SchoolName:         in.Team.SchoolName,
			SchoolDistrict:     in.Team.District,
			LeadPhone:          in.Lead.Phone,
			LeadEmail:          in.Lead.Email,
			RegistrationStatus: models.RegistrationPending,
		}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		members := make([]models.TeamMember, 0, len(in.Members)+1)
		members = append(members, memberModel(team.ID, in.Lead, true))
		for _, m := range in.Members {
			members = append(members, memberModel(team.ID, m, false))
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		teacher := models.TeacherVerification{
			TeamID:       team.ID,
			Salutation:   models.Salutation(in.Teacher.Salutation),
			TeacherName:  in.Teacher.TeacherName,
			TeacherPhone: in.Teacher.TeacherPhone,
		}
		if err := tx.Create(&teacher).Error; err != nil {
			return err
		}

		pitch := models.ProjectPitch{
			TeamID:               team.ID,
			IdeaTitle:            in.Project.IdeaTitle,
			ProblemStatement:     in.Project.ProblemStatement,
			SolutionIdea:         in.Project.SolutionIdea,
			ImplementationPlan:   in.Project.ImplementationPlan,
			Beneficiaries:        in.Project.Beneficiaries,
			TeamworkContribution: in.Project.TeamworkContribution,
		}
		if err := tx.Create(&pitch).Error; err != nil {
			return err
		}

		payment := models.Payment{
			TeamID:    team.ID,
			OrderID:   in.OrderID,
			PaymentID: in.PaymentID,
			Signature: in.Signature,
			Amount:    in.Amount,
			Currency:  in.Currency,
			Status:    models.PaymentCompleted,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		result = &RegisterTeamResult{
			TeamID:    team.ID,
			TeamCode:  team.TeamCode,
			CreatedAt: team.CreatedAt,
		}
		return nil
	})

	if err != nil {
		// A concurrent submission may have won the unique index race on
		// either team_name or payments.order_id. If the order landed, this
		// is the idempotent case; otherwise the name is taken.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Payment
			if lookupErr := s.db.Where("order_id = ?", in.OrderID).First(&existing).Error; lookupErr == nil {
				var team models.Team
				if lookupErr = s.db.First(&team, "id = ?", existing.TeamID).Error; lookupErr == nil {
					return &RegisterTeamResult{
						TeamID:            team.ID,
						TeamCode:          team.TeamCode,
						CreatedAt:         team.CreatedAt,
						AlreadyRegistered: true,
					}, nil
				}
			}
			return nil, ErrTeamNameTaken
		}
		return nil, err
	}
	return result, nil
}

func memberModel(teamID string, m dto.MemberReq, lead bool) models.TeamMember {
	food := m.FoodPreference
	if food == "" {
		food = string(models.FoodNone)
	}
	return models.TeamMember{
		TeamID:         teamID,
		Name:           m.Name,
		Gender:         models.Gender(m.Gender),
		Grade:          models.Grade(m.Grade),
		Phone:          m.Phone,
		Email:          m.Email,
		FoodPreference: models.FoodPreference(food),
		IsTeamLead:     lead,
	}
}
