// file: validation/validation.go
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/JB-05/gen-201-mbc/dto"
	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field path (json names, e.g. "members[0].phone") to a
// user-facing message. An empty/nil map means the input passed.
type FieldErrors map[string]string

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// Merge copies other's entries, prefixing each path.
func (fe FieldErrors) Merge(prefix string, other FieldErrors) {
	for path, msg := range other {
		if prefix != "" {
			path = prefix + "." + path
		}
		fe[path] = msg
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report json field names instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// phone10: already-normalized Indian mobile number.
	_ = validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 10 {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}

// Struct validates any of the dto step payloads and returns field-scoped
// messages. Inputs are expected to be normalized first.
func Struct(v any) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": "invalid request payload"}
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		fe[fieldPath(e)] = message(e)
	}
	return fe
}

// District checks membership in the active district list and records the
// result under the given path. Done outside the schema because the valid
// set comes from storage at request time.
func District(fe FieldErrors, path, district string, active []string) {
	for _, d := range active {
		if strings.EqualFold(d, district) {
			return
		}
	}
	fe[path] = "Select a valid district"
}

// fieldPath strips the root struct name from the namespace:
// "LeadTeacherReq.lead.phone" -> "lead.phone".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "phone10":
		return "Invalid phone number"
	case "oneof":
		return "Invalid value"
	case "eq":
		if e.Field() == "terms_accepted" {
			return "You must accept the terms and conditions"
		}
		return "Invalid value"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("At least %s team member is required", e.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", e.Param())
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Maximum %s additional team members allowed", e.Param())
		}
		return fmt.Sprintf("Must be at most %s characters", e.Param())
	default:
		return "Invalid value"
	}
}

// Registration re-runs every step's rules in one authoritative pass. This is
// the server-side gate immediately before payment initiation; client-side
// step checks are a UX convenience only.
func Registration(team *dto.TeamInfoReq, lead *dto.MemberReq, teacher *dto.TeacherReq, members []dto.MemberReq, project *dto.ProjectPitchReq, activeDistricts []string) FieldErrors {
	fe := make(FieldErrors)

	if team == nil {
		fe["team"] = "Team details are missing"
	} else {
		fe.Merge("", Struct(team))
		if team.District != "" {
			District(fe, "district", team.District, activeDistricts)
		}
	}

	if lead == nil {
		fe["lead"] = "Team lead details are missing"
	} else {
		fe.Merge("lead", Struct(lead))
	}

	if teacher == nil {
		fe["teacher"] = "Teacher verification is missing"
	} else {
		fe.Merge("teacher", Struct(teacher))
	}

	fe.Merge("", Struct(&dto.MembersReq{Members: members}))

	if project == nil {
		fe["project"] = "Project details are missing"
	} else {
		fe.Merge("project", Struct(project))
	}

	if fe.Empty() {
		return nil
	}
	return fe
}
