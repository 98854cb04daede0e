// file: services/form_controller_test.go
package services

import (
	"context"
	"crypto/hmac"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/JB-05/gen-201-mbc/config"
	"github.com/JB-05/gen-201-mbc/dto"
	"github.com/JB-05/gen-201-mbc/validation"
)

// --- test doubles ---

type memStore struct {
	sessions map[string]*FormSession
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]*FormSession{}}
}

func (s *memStore) Get(_ context.Context, id string) (*FormSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memStore) Save(_ context.Context, sess *FormSession) error {
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

// mockGateway signs like the real gateway so tamper tests behave.
type mockGateway struct {
	secret       string
	orders       int
	unconfigured bool
}

func (g *mockGateway) Configured() bool { return !g.unconfigured }
func (g *mockGateway) KeyID() string    { return "rzp_test_mock" }

func (g *mockGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*OrderInfo, error) {
	if g.unconfigured {
		return nil, ErrPaymentNotConfigured
	}
	g.orders++
	return &OrderInfo{
		ID:       fmt.Sprintf("order_mock_%d", g.orders),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	expected := signOrder(g.secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

type staticDistricts []string

func (d staticDistricts) ActiveDistricts() []string { return d }

// --- fixtures ---

func testFormController(t *testing.T) (*FormController, *mockGateway, *RegistrationService) {
	t.Helper()
	db := testDB(t)
	registrar := NewRegistrationService(db)
	gateway := &mockGateway{secret: "test_secret"}
	cfg := &config.Config{RegistrationFeePaise: 5000, Currency: "INR"}
	f := NewFormController(newMemStore(), gateway, registrar, staticDistricts{"Ernakulam", "Thrissur"}, cfg)
	return f, gateway, registrar
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func teamInfoPayload() dto.TeamInfoReq {
	return dto.TeamInfoReq{
		TeamName:   "Quantum Coders",
		SchoolName: "ABC Higher Secondary",
		District:   "Ernakulam",
	}
}

func leadTeacherPayload() dto.LeadTeacherReq {
	return dto.LeadTeacherReq{
		Lead: dto.MemberReq{
			Name: "Anjali Menon", Gender: "female", Grade: "12",
			Phone: "+919876543210", Email: "anjali@example.com", FoodPreference: "veg",
		},
		Teacher: dto.TeacherReq{
			Salutation: "maam", TeacherName: "R. Nair", TeacherPhone: "9876543212",
		},
	}
}

func membersPayload() dto.MembersReq {
	return dto.MembersReq{Members: []dto.MemberReq{{
		Name: "Rahul K", Gender: "male", Grade: "11",
		Phone: "9876543211", Email: "rahul@example.com", FoodPreference: "non_veg",
	}}}
}

func projectPayload() dto.ProjectPitchReq {
	return dto.ProjectPitchReq{
		IdeaTitle:            "Smart Water Meter",
		ProblemStatement:     "Households waste water because usage is invisible.",
		SolutionIdea:         "A cheap flow sensor with a weekly usage report.",
		ImplementationPlan:   "Prototype with ESP32 and a web dashboard.",
		Beneficiaries:        "Households in Kerala",
		TeamworkContribution: "Hardware by Rahul, dashboard by Anjali.",
		TermsAccepted:        true,
	}
}

// advanceToPayment walks a fresh session to the project_payment step.
func advanceToPayment(t *testing.T, f *FormController) string {
	t.Helper()
	ctx := context.Background()

	s, err := f.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, payload := range []any{teamInfoPayload(), leadTeacherPayload(), membersPayload()} {
		var fe validation.FieldErrors
		s, fe, err = f.Next(ctx, s.ID, mustJSON(t, payload))
		if err != nil || len(fe) > 0 {
			t.Fatalf("next: err=%v fields=%v", err, fe)
		}
	}
	if s.Step != StepProjectPayment {
		t.Fatalf("step = %s, want project_payment", s.Step)
	}
	return s.ID
}

// --- tests ---

func TestStepTransitionsForwardAndBack(t *testing.T) {
	f, _, _ := testFormController(t)
	ctx := context.Background()

	s, err := f.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Step != StepTeamInfo {
		t.Fatalf("initial step = %s", s.Step)
	}

	// Back from the first step is not a valid transition.
	if _, err := f.Back(ctx, s.ID); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("back from team_info: want ErrInvalidStep, got %v", err)
	}

	s, fe, err := f.Next(ctx, s.ID, mustJSON(t, teamInfoPayload()))
	if err != nil || len(fe) > 0 {
		t.Fatalf("next: err=%v fields=%v", err, fe)
	}
	if s.Step != StepLeadTeacher {
		t.Fatalf("step = %s, want lead_teacher", s.Step)
	}

	// Back keeps the collected team info.
	s, err = f.Back(ctx, s.ID)
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if s.Step != StepTeamInfo {
		t.Fatalf("step after back = %s", s.Step)
	}
	if s.Team == nil || s.Team.TeamName != "Quantum Coders" {
		t.Fatal("team info lost on back transition")
	}
}

func TestNextBlocksOnValidationFailure(t *testing.T) {
	f, _, _ := testFormController(t)
	ctx := context.Background()

	s, _ := f.Start(ctx)
	payload := teamInfoPayload()
	payload.TeamName = "ab"

	s2, fe, err := f.Next(ctx, s.ID, mustJSON(t, payload))
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if fe["team_name"] == "" {
		t.Fatalf("expected team_name error, got %v", fe)
	}
	if s2.Step != StepTeamInfo {
		t.Fatalf("failed validation must not advance, step = %s", s2.Step)
	}

	// Unknown district is caught even though the schema field is just "required".
	payload = teamInfoPayload()
	payload.District = "Atlantis"
	_, fe, err = f.Next(ctx, s.ID, mustJSON(t, payload))
	if err != nil || fe["district"] == "" {
		t.Fatalf("expected district error, got err=%v fields=%v", err, fe)
	}
}

func TestSubmitCreatesOrderAndGuardsDoubleSubmit(t *testing.T) {
	f, gateway, _ := testFormController(t)
	ctx := context.Background()
	id := advanceToPayment(t, f)

	intent, fe, err := f.Submit(ctx, id, mustJSON(t, projectPayload()))
	if err != nil || len(fe) > 0 {
		t.Fatalf("submit: err=%v fields=%v", err, fe)
	}
	if intent.OrderID == "" || intent.Amount != 5000 || intent.Currency != "INR" {
		t.Fatalf("bad checkout intent: %+v", intent)
	}
	if intent.KeyID != gateway.KeyID() {
		t.Errorf("intent key id = %q", intent.KeyID)
	}
	if intent.Prefill.Name != "Quantum Coders" || intent.Prefill.Contact != "9876543210" {
		t.Errorf("bad prefill: %+v", intent.Prefill)
	}

	// While the checkout is open, submit and step navigation are locked.
	if _, _, err := f.Submit(ctx, id, mustJSON(t, projectPayload())); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("double submit: want ErrSubmitInFlight, got %v", err)
	}
	if _, err := f.Back(ctx, id); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("back during submit: want ErrSubmitInFlight, got %v", err)
	}
}

func TestSubmitRejectsTakenTeamName(t *testing.T) {
	f, _, registrar := testFormController(t)
	ctx := context.Background()

	if _, err := registrar.RegisterTeam(registrationInput("Quantum Coders", "order_prior")); err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	id := advanceToPayment(t, f)
	intent, fe, err := f.Submit(ctx, id, mustJSON(t, projectPayload()))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if intent != nil {
		t.Fatal("no order should be created for a taken name")
	}
	if fe["team_name"] == "" {
		t.Fatalf("expected team_name conflict, got %v", fe)
	}
}

func TestHappyPathEndToEnd(t *testing.T) {
	f, gateway, _ := testFormController(t)
	ctx := context.Background()
	id := advanceToPayment(t, f)

	intent, _, err := f.Submit(ctx, id, mustJSON(t, projectPayload()))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	paymentID := "pay_e2e_1"
	receipt, err := f.Complete(ctx, id, dto.VerifyPaymentReq{
		PaymentID: paymentID,
		OrderID:   intent.OrderID,
		Signature: signOrder(gateway.secret, intent.OrderID, paymentID),
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if receipt.TeamID == "" || receipt.TeamCode == "" {
		t.Fatalf("incomplete receipt: %+v", receipt)
	}
	if receipt.PaymentID != paymentID {
		t.Errorf("receipt payment id = %q", receipt.PaymentID)
	}

	s, err := f.Current(ctx, id)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if s.Step != StepSubmitted {
		t.Fatalf("step = %s, want submitted", s.Step)
	}
	if s.Team != nil || s.Lead != nil || s.Members != nil || s.Project != nil {
		t.Fatal("form data should be cleared after the terminal transition")
	}
	if s.OrderID != "" {
		t.Error("order id should not survive on a submitted session")
	}

	// Replayed success callback hands back the same receipt.
	again, err := f.Complete(ctx, id, dto.VerifyPaymentReq{
		PaymentID: paymentID,
		OrderID:   intent.OrderID,
		Signature: signOrder(gateway.secret, intent.OrderID, paymentID),
	})
	if err != nil {
		t.Fatalf("replayed complete: %v", err)
	}
	if again.TeamID != receipt.TeamID {
		t.Fatal("replayed complete returned a different team")
	}
}

func TestCompleteRejectsTamperedSignature(t *testing.T) {
	f, gateway, registrar := testFormController(t)
	ctx := context.Background()
	id := advanceToPayment(t, f)

	intent, _, err := f.Submit(ctx, id, mustJSON(t, projectPayload()))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	sig := []byte(signOrder(gateway.secret, intent.OrderID, "pay_bad"))
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}
	_, err = f.Complete(ctx, id, dto.VerifyPaymentReq{
		PaymentID: "pay_bad",
		OrderID:   intent.OrderID,
		Signature: string(sig),
	})
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("want ErrVerificationFailed, got %v", err)
	}

	// Nothing persisted, session recoverable.
	if available, _ := registrar.IsTeamNameAvailable("Quantum Coders"); !available {
		t.Fatal("failed verification must not persist a team")
	}
	s, _ := f.Current(ctx, id)
	if s.Step != StepProjectPayment || s.Submitting {
		t.Fatalf("session not recoverable after failed verification: step=%s submitting=%v", s.Step, s.Submitting)
	}
}

func TestCompleteRejectsOrderMismatch(t *testing.T) {
	f, gateway, _ := testFormController(t)
	ctx := context.Background()
	id := advanceToPayment(t, f)

	if _, _, err := f.Submit(ctx, id, mustJSON(t, projectPayload())); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := f.Complete(ctx, id, dto.VerifyPaymentReq{
		PaymentID: "pay_x",
		OrderID:   "order_someone_elses",
		Signature: signOrder(gateway.secret, "order_someone_elses", "pay_x"),
	})
	if !errors.Is(err, ErrOrderMismatch) {
		t.Fatalf("want ErrOrderMismatch, got %v", err)
	}
}

func TestUserDismissKeepsDataAndAllowsRetry(t *testing.T) {
	f, _, _ := testFormController(t)
	ctx := context.Background()
	id := advanceToPayment(t, f)

	first, _, err := f.Submit(ctx, id, mustJSON(t, projectPayload()))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	msg, err := f.Fail(ctx, id, "payment_cancelled")
	if err != nil {
		t.Fatalf("fail: %v", err)
	}
	if msg == "" {
		t.Fatal("dismiss should produce a user-facing message")
	}

	s, _ := f.Current(ctx, id)
	if s.Step != StepProjectPayment || s.Submitting {
		t.Fatalf("session after dismiss: step=%s submitting=%v", s.Step, s.Submitting)
	}
	if s.Team == nil || s.Lead == nil || len(s.Members) == 0 || s.Project == nil {
		t.Fatal("entered data must survive a dismissed checkout")
	}

	// Retry gets a fresh order; gateway orders are single-use.
	second, _, err := f.Submit(ctx, id, mustJSON(t, projectPayload()))
	if err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if second.OrderID == first.OrderID {
		t.Fatal("retry must create a fresh order")
	}
}

func TestSubmitUnconfiguredGateway(t *testing.T) {
	f, gateway, _ := testFormController(t)
	gateway.unconfigured = true
	ctx := context.Background()
	id := advanceToPayment(t, f)

	_, _, err := f.Submit(ctx, id, mustJSON(t, projectPayload()))
	if !errors.Is(err, ErrPaymentNotConfigured) {
		t.Fatalf("want ErrPaymentNotConfigured, got %v", err)
	}
}

func TestExpiredSession(t *testing.T) {
	f, _, _ := testFormController(t)
	_, _, err := f.Next(context.Background(), "no-such-session", mustJSON(t, teamInfoPayload()))
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
}
