// file: controllers/registration_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/JB-05/gen-201-mbc/dto"
	"github.com/JB-05/gen-201-mbc/services"
	"github.com/JB-05/gen-201-mbc/utils"
	"github.com/gin-gonic/gin"
)

type RegistrationController struct {
	forms     *services.FormController
	registrar services.Registrar
}

func NewRegistrationController(forms *services.FormController, registrar services.Registrar) *RegistrationController {
	return &RegistrationController{forms: forms, registrar: registrar}
}

// StartSession opens a fresh registration session at the team_info step.
func (rc *RegistrationController) StartSession(c *gin.Context) {
	s, err := rc.forms.Start(c.Request.Context())
	if err != nil {
		utils.Error(c, 5000, "Failed to start registration session")
		return
	}
	utils.Success(c, "Registration session started", s)
}

// GetSession returns the current step and collected data so the client can
// restore after a reload.
func (rc *RegistrationController) GetSession(c *gin.Context) {
	s, err := rc.forms.Current(c.Request.Context(), c.Param("id"))
	if err != nil {
		rc.sessionError(c, err)
		return
	}
	utils.Success(c, "success", s)
}

// NextStep submits the current step's payload and advances on success.
func (rc *RegistrationController) NextStep(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.Error(c, 1001, "Invalid request body")
		return
	}

	s, fieldErrs, err := rc.forms.Next(c.Request.Context(), c.Param("id"), json.RawMessage(payload))
	if err != nil {
		rc.sessionError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		utils.FieldError(c, 2001, "Please fix the highlighted fields", fieldErrs)
		return
	}
	utils.Success(c, "Step saved", s)
}

// BackStep moves to the previous step; nothing is validated or discarded.
func (rc *RegistrationController) BackStep(c *gin.Context) {
	s, err := rc.forms.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		rc.sessionError(c, err)
		return
	}
	utils.Success(c, "Step saved", s)
}

// SubmitSession runs the final chain up to order creation and returns the
// checkout intent for the gateway widget.
func (rc *RegistrationController) SubmitSession(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.Error(c, 1001, "Invalid request body")
		return
	}

	intent, fieldErrs, err := rc.forms.Submit(c.Request.Context(), c.Param("id"), json.RawMessage(payload))
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotConfigured) {
			utils.Error(c, 5030, "Payment service is not configured. Please contact the organizers.")
			return
		}
		rc.sessionError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		utils.FieldError(c, 2001, "Please fix the highlighted fields", fieldErrs)
		return
	}
	utils.Success(c, "Order created", intent)
}

// CompleteSession receives the gateway success callback, verifies it and
// persists the registration.
func (rc *RegistrationController) CompleteSession(c *gin.Context) {
	var req dto.VerifyPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body")
		return
	}

	receipt, err := rc.forms.Complete(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVerificationFailed):
			// Security-relevant: no cryptographic detail reaches the user.
			utils.Error(c, 4010, "Payment verification failed. Please contact support.")
		case errors.Is(err, services.ErrTeamNameTaken):
			utils.Error(c, 3001, "Team name was taken while you were paying. Please contact support with your payment reference.")
		case errors.Is(err, services.ErrPostPaymentPersistence):
			utils.Error(c, 5001, "Your payment went through but we could not record the registration. Please contact support.")
		default:
			rc.sessionError(c, err)
		}
		return
	}
	utils.Success(c, "Registration complete", receipt)
}

// FailSession receives the gateway failure/dismiss callback and re-enables
// submission.
func (rc *RegistrationController) FailSession(c *gin.Context) {
	var req dto.PaymentFailureReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body")
		return
	}

	msg, err := rc.forms.Fail(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		rc.sessionError(c, err)
		return
	}
	utils.Success(c, msg, gin.H{"retry_allowed": true})
}

// CheckTeamName is the read-only availability probe, usable as the user
// types. Submit re-checks authoritatively.
func (rc *RegistrationController) CheckTeamName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		utils.Error(c, 1001, "Query parameter 'name' is required")
		return
	}

	available, err := rc.registrar.IsTeamNameAvailable(name)
	if err != nil {
		utils.Error(c, 5000, "Failed to check team name")
		return
	}
	utils.Success(c, "success", gin.H{"name": name, "available": available})
}

func (rc *RegistrationController) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		utils.Error(c, 4040, "Registration session not found or expired")
	case errors.Is(err, services.ErrInvalidStep):
		utils.Error(c, 3002, "Invalid step transition")
	case errors.Is(err, services.ErrBadPayload):
		utils.Error(c, 1001, "Invalid request body")
	case errors.Is(err, services.ErrSubmitInFlight):
		utils.Error(c, 3003, "A submission is already in progress")
	case errors.Is(err, services.ErrAlreadySubmitted):
		utils.Error(c, 3004, "This registration has already been submitted")
	case errors.Is(err, services.ErrNoOrderInFlight):
		utils.Error(c, 3005, "No payment is in progress for this session")
	case errors.Is(err, services.ErrOrderMismatch):
		utils.Error(c, 3006, "Payment does not match this registration")
	default:
		utils.Error(c, 5000, "Something went wrong, please try again")
	}
}
