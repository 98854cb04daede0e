// file: dto/registration.go
package dto

import "strings"

// ========== Step payloads ==========

// TeamInfoReq is the first form step.
type TeamInfoReq struct {
	TeamName   string `json:"team_name" validate:"required,min=3,max=100"`
	SchoolName string `json:"school_name" validate:"required,min=3"`
	District   string `json:"district" validate:"required"`
}

func (r *TeamInfoReq) Normalize() {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.SchoolName = strings.TrimSpace(r.SchoolName)
	r.District = strings.TrimSpace(r.District)
}

// MemberReq covers both the team lead and the additional members.
type MemberReq struct {
	Name           string `json:"name" validate:"required,min=2"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	Grade          string `json:"grade" validate:"required,oneof=11 12"`
	Phone          string `json:"phone" validate:"required,phone10"`
	Email          string `json:"email" validate:"required,email"`
	FoodPreference string `json:"food_preference" validate:"omitempty,oneof=veg non_veg none"`
}

func (r *MemberReq) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.Grade = strings.TrimSpace(r.Grade)
	r.Phone = NormalizePhone(r.Phone)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	// "non-veg" arrives hyphenated from the form; stored as non_veg.
	r.FoodPreference = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(r.FoodPreference)), "-", "_")
	if r.FoodPreference == "" {
		r.FoodPreference = "none"
	}
}

type TeacherReq struct {
	Salutation   string `json:"salutation" validate:"required,oneof=sir maam"`
	TeacherName  string `json:"teacher_name" validate:"required,min=2"`
	TeacherPhone string `json:"teacher_phone" validate:"required,phone10"`
}

func (r *TeacherReq) Normalize() {
	r.Salutation = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(r.Salutation)), "'", "")
	r.TeacherName = strings.TrimSpace(r.TeacherName)
	r.TeacherPhone = NormalizePhone(r.TeacherPhone)
}

// LeadTeacherReq is the second form step: team lead plus supervising teacher.
type LeadTeacherReq struct {
	Lead    MemberReq  `json:"lead" validate:"required"`
	Teacher TeacherReq `json:"teacher" validate:"required"`
}

func (r *LeadTeacherReq) Normalize() {
	r.Lead.Normalize()
	r.Teacher.Normalize()
}

// MembersReq is the third step. The lead is not part of this list; 1 to 3
// additional members are required, 4 total including the lead.
type MembersReq struct {
	Members []MemberReq `json:"members" validate:"required,min=1,max=3,dive"`
}

func (r *MembersReq) Normalize() {
	for i := range r.Members {
		r.Members[i].Normalize()
	}
}

// ProjectPitchReq is the final step's five-question pitch plus consent.
type ProjectPitchReq struct {
	IdeaTitle            string `json:"idea_title" validate:"required,min=3"`
	ProblemStatement     string `json:"problem_statement" validate:"required,min=30"`
	SolutionIdea         string `json:"solution_idea" validate:"required,min=30"`
	ImplementationPlan   string `json:"implementation_plan" validate:"required,min=20"`
	Beneficiaries        string `json:"beneficiaries" validate:"required,min=3"`
	TeamworkContribution string `json:"teamwork_contribution" validate:"required,min=10"`
	TermsAccepted        bool   `json:"terms_accepted" validate:"eq=true"`
}

func (r *ProjectPitchReq) Normalize() {
	r.IdeaTitle = strings.TrimSpace(r.IdeaTitle)
	r.ProblemStatement = strings.TrimSpace(r.ProblemStatement)
	r.SolutionIdea = strings.TrimSpace(r.SolutionIdea)
	r.ImplementationPlan = strings.TrimSpace(r.ImplementationPlan)
	r.Beneficiaries = strings.TrimSpace(r.Beneficiaries)
	r.TeamworkContribution = strings.TrimSpace(r.TeamworkContribution)
}

// NormalizePhone canonicalizes Indian phone input to a bare 10-digit string:
// strip everything non-numeric, drop a leading "91" country code when 12
// digits remain, otherwise keep the last 10 digits.
func NormalizePhone(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		return digits[2:]
	}
	if len(digits) > 10 {
		return digits[len(digits)-10:]
	}
	return digits
}
