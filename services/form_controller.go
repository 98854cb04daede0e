// file: services/form_controller.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/JB-05/gen-201-mbc/config"
	"github.com/JB-05/gen-201-mbc/dto"
	"github.com/JB-05/gen-201-mbc/metrics"
	"github.com/JB-05/gen-201-mbc/utils"
	"github.com/JB-05/gen-201-mbc/validation"
	"github.com/google/uuid"
)

// Step is the tagged-union state of the registration form. Transitions move
// between adjacent steps only; submitted is terminal.
type Step string

const (
	StepTeamInfo       Step = "team_info"
	StepLeadTeacher    Step = "lead_teacher"
	StepMembers        Step = "members"
	StepProjectPayment Step = "project_payment"
	StepSubmitted      Step = "submitted"
)

var (
	ErrBadPayload             = errors.New("malformed step payload")
	ErrInvalidStep            = errors.New("invalid step transition")
	ErrSubmitInFlight         = errors.New("a submission is already in progress")
	ErrAlreadySubmitted       = errors.New("registration already submitted")
	ErrNoOrderInFlight        = errors.New("no payment order in flight for this session")
	ErrOrderMismatch          = errors.New("order does not belong to this session")
	ErrVerificationFailed     = errors.New("payment verification failed")
	ErrPostPaymentPersistence = errors.New("registration could not be saved after payment")
)

// FormSession is everything collected across the steps. It lives only in
// the session store until payment verification succeeds.
type FormSession struct {
	ID   string `json:"id"`
	Step Step   `json:"step"`

	Team    *dto.TeamInfoReq     `json:"team,omitempty"`
	Lead    *dto.MemberReq       `json:"lead,omitempty"`
	Teacher *dto.TeacherReq      `json:"teacher,omitempty"`
	Members []dto.MemberReq      `json:"members,omitempty"`
	Project *dto.ProjectPitchReq `json:"project,omitempty"`

	// Submitting guards the whole create-order -> verify -> persist span
	// against duplicate submissions.
	Submitting bool   `json:"submitting"`
	OrderID    string `json:"order_id,omitempty"`

	Receipt *Receipt `json:"receipt,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Receipt is the client-visible registration artifact. It deliberately
// carries neither the signature nor the gateway order id.
type Receipt struct {
	TeamID    string    `json:"team_id"`
	TeamCode  string    `json:"team_code"`
	PaymentID string    `json:"payment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckoutIntent is what the client needs to open the gateway checkout
// widget for an in-flight order.
type CheckoutIntent struct {
	OrderID  string          `json:"order_id"`
	Amount   int64           `json:"amount"`
	Currency string          `json:"currency"`
	KeyID    string          `json:"key_id"`
	Prefill  CheckoutPrefill `json:"prefill"`
}

type CheckoutPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// FormController sequences the multi-step registration workflow: collect
// team info, lead + teacher, additional members, project pitch, then the
// payment handshake and persistence. Each network step depends on the
// verified result of the previous one, so everything runs sequentially.
type FormController struct {
	store     SessionStore
	gateway   PaymentGateway
	registrar Registrar
	districts DistrictSource

	feePaise int64
	currency string
}

func NewFormController(store SessionStore, gateway PaymentGateway, registrar Registrar, districts DistrictSource, cfg *config.Config) *FormController {
	return &FormController{
		store:     store,
		gateway:   gateway,
		registrar: registrar,
		districts: districts,
		feePaise:  cfg.RegistrationFeePaise,
		currency:  cfg.Currency,
	}
}

func (f *FormController) Start(ctx context.Context) (*FormSession, error) {
	now := time.Now()
	s := &FormSession{
		ID:        uuid.NewString(),
		Step:      StepTeamInfo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (f *FormController) Current(ctx context.Context, id string) (*FormSession, error) {
	return f.store.Get(ctx, id)
}

// Next validates the payload for the session's current step and advances.
// On validation failure the step does not change and the field errors are
// returned; previously entered data is never discarded.
func (f *FormController) Next(ctx context.Context, id string, payload json.RawMessage) (*FormSession, validation.FieldErrors, error) {
	s, err := f.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.Submitting {
		return nil, nil, ErrSubmitInFlight
	}

	switch s.Step {
	case StepTeamInfo:
		var req dto.TeamInfoReq
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, nil, ErrBadPayload
		}
		req.Normalize()
		fe := validation.Struct(&req)
		if fe == nil {
			fe = validation.FieldErrors{}
			validation.District(fe, "district", req.District, f.districts.ActiveDistricts())
		}
		if !fe.Empty() {
			return s, fe, nil
		}
		s.Team = &req
		s.Step = StepLeadTeacher

	case StepLeadTeacher:
		var req dto.LeadTeacherReq
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, nil, ErrBadPayload
		}
		req.Normalize()
		if fe := validation.Struct(&req); !fe.Empty() {
			return s, fe, nil
		}
		s.Lead = &req.Lead
		s.Teacher = &req.Teacher
		s.Step = StepMembers

	case StepMembers:
		var req dto.MembersReq
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, nil, ErrBadPayload
		}
		req.Normalize()
		if fe := validation.Struct(&req); !fe.Empty() {
			return s, fe, nil
		}
		s.Members = req.Members
		s.Step = StepProjectPayment

	case StepProjectPayment:
		// The forward action from here is Submit, which runs the full
		// payment chain.
		return nil, nil, ErrInvalidStep

	default:
		return nil, nil, ErrAlreadySubmitted
	}

	s.UpdatedAt = time.Now()
	if err := f.store.Save(ctx, s); err != nil {
		return nil, nil, err
	}
	return s, nil, nil
}

// Back moves one step towards team_info, keeping all collected data.
func (f *FormController) Back(ctx context.Context, id string) (*FormSession, error) {
	s, err := f.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Submitting {
		return nil, ErrSubmitInFlight
	}

	switch s.Step {
	case StepLeadTeacher:
		s.Step = StepTeamInfo
	case StepMembers:
		s.Step = StepLeadTeacher
	case StepProjectPayment:
		s.Step = StepMembers
	default:
		return nil, ErrInvalidStep
	}

	s.UpdatedAt = time.Now()
	if err := f.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Submit is the special final forward action: it stores the pitch, re-runs
// every rule across all steps, re-checks name availability and creates a
// fresh gateway order. The session stays on project_payment until the
// checkout callback resolves through Complete or Fail.
func (f *FormController) Submit(ctx context.Context, id string, payload json.RawMessage) (*CheckoutIntent, validation.FieldErrors, error) {
	s, err := f.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.Step == StepSubmitted {
		return nil, nil, ErrAlreadySubmitted
	}
	if s.Step != StepProjectPayment {
		return nil, nil, ErrInvalidStep
	}
	if s.Submitting {
		return nil, nil, ErrSubmitInFlight
	}

	var project dto.ProjectPitchReq
	if err := json.Unmarshal(payload, &project); err != nil {
		return nil, nil, ErrBadPayload
	}
	project.Normalize()
	s.Project = &project

	// Authoritative re-validation of everything collected so far. The
	// client-side step checks are not a trust boundary.
	fe := validation.Registration(s.Team, s.Lead, s.Teacher, s.Members, s.Project, f.districts.ActiveDistricts())
	if !fe.Empty() {
		f.saveQuietly(ctx, s)
		return nil, fe, nil
	}

	available, err := f.registrar.IsTeamNameAvailable(s.Team.TeamName)
	if err != nil {
		return nil, nil, err
	}
	if !available {
		f.saveQuietly(ctx, s)
		return nil, validation.FieldErrors{"team_name": "This team name is already taken"}, nil
	}

	// A fresh order and receipt token on every attempt; gateway orders are
	// not reusable across checkout sessions.
	order, err := f.gateway.CreateOrder(f.feePaise, f.currency, utils.GenerateReceiptToken(), map[string]interface{}{
		"team_name":  s.Team.TeamName,
		"lead_email": s.Lead.Email,
		"lead_phone": s.Lead.Phone,
	})
	if err != nil {
		return nil, nil, err
	}
	metrics.OrdersCreated.Inc()

	s.OrderID = order.ID
	s.Submitting = true
	s.UpdatedAt = time.Now()
	if err := f.store.Save(ctx, s); err != nil {
		return nil, nil, err
	}

	return &CheckoutIntent{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    f.gateway.KeyID(),
		Prefill: CheckoutPrefill{
			Name:    s.Team.TeamName,
			Email:   s.Lead.Email,
			Contact: s.Lead.Phone,
		},
	}, nil, nil
}

// Complete handles the gateway success callback: verify the signature, then
// persist. A success callback alone proves nothing; only the recomputed
// signature moves any state.
func (f *FormController) Complete(ctx context.Context, id string, cb dto.VerifyPaymentReq) (*Receipt, error) {
	s, err := f.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Step == StepSubmitted {
		// Client retried after the terminal transition; hand back the receipt.
		if s.Receipt != nil && s.Receipt.PaymentID == cb.PaymentID {
			return s.Receipt, nil
		}
		return nil, ErrAlreadySubmitted
	}
	if s.OrderID == "" || !s.Submitting {
		return nil, ErrNoOrderInFlight
	}
	if cb.OrderID != s.OrderID {
		return nil, ErrOrderMismatch
	}

	if !f.gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		metrics.VerificationsFailed.Inc()
		s.Submitting = false
		f.saveQuietly(ctx, s)
		return nil, ErrVerificationFailed
	}
	metrics.VerificationsOK.Inc()

	res, err := f.registrar.RegisterTeam(RegisterTeamInput{
		Team:      *s.Team,
		Lead:      *s.Lead,
		Members:   s.Members,
		Teacher:   *s.Teacher,
		Project:   *s.Project,
		OrderID:   cb.OrderID,
		PaymentID: cb.PaymentID,
		Signature: cb.Signature,
		Amount:    f.feePaise,
		Currency:  f.currency,
	})
	if err != nil {
		// Money has moved but the registration did not complete. Log enough
		// for manual reconciliation; the gateway charge is out of our hands.
		metrics.PostPaymentFailures.Inc()
		log.Printf("RECONCILE: registration persist failed after verified payment: order_id=%s payment_id=%s err=%v",
			cb.OrderID, cb.PaymentID, err)
		s.Submitting = false
		f.saveQuietly(ctx, s)
		if errors.Is(err, ErrTeamNameTaken) {
			return nil, err
		}
		return nil, ErrPostPaymentPersistence
	}
	if !res.AlreadyRegistered {
		metrics.RegistrationsCompleted.Inc()
	}

	receipt := &Receipt{
		TeamID:    res.TeamID,
		TeamCode:  res.TeamCode,
		PaymentID: cb.PaymentID,
		CreatedAt: res.CreatedAt,
	}

	// Terminal transition: drop the collected form data, keep the receipt
	// so a page refresh can still render it.
	s.Step = StepSubmitted
	s.Submitting = false
	s.OrderID = ""
	s.Team, s.Lead, s.Teacher, s.Members, s.Project = nil, nil, nil, nil, nil
	s.Receipt = receipt
	s.UpdatedAt = time.Now()
	if err := f.store.Save(ctx, s); err != nil {
		log.Printf("Failed to save submitted session %s: %v", s.ID, err)
	}

	return receipt, nil
}

// Fail handles the gateway failure/dismiss callback. The session stays on
// project_payment with all input intact and submit re-enabled; retrying
// creates a fresh order.
func (f *FormController) Fail(ctx context.Context, id string, code string) (string, error) {
	s, err := f.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if s.Step == StepSubmitted {
		return "", ErrAlreadySubmitted
	}

	metrics.GatewayFailures.Inc()
	s.Submitting = false
	s.OrderID = ""
	s.UpdatedAt = time.Now()
	if err := f.store.Save(ctx, s); err != nil {
		return "", err
	}
	return GatewayFailureMessage(code), nil
}

// GatewayFailureMessage maps known gateway error codes to distinct
// user-facing messages, with a generic fallback for anything unknown.
func GatewayFailureMessage(code string) string {
	switch code {
	case "payment_cancelled", "user_cancelled":
		return "Payment cancelled. You can try again when you are ready."
	case "BAD_REQUEST_ERROR":
		return "Payment could not be started. Please check your details and try again."
	case "GATEWAY_ERROR":
		return "The payment gateway reported an error. Please try again."
	case "NETWORK_ERROR":
		return "Network issue during payment. Please check your connection and try again."
	case "SERVER_ERROR":
		return "The payment service is temporarily unavailable. Please try again shortly."
	default:
		return "Payment failed. Please try again."
	}
}

func (f *FormController) saveQuietly(ctx context.Context, s *FormSession) {
	s.UpdatedAt = time.Now()
	if err := f.store.Save(ctx, s); err != nil {
		log.Printf("Failed to save session %s: %v", s.ID, err)
	}
}
