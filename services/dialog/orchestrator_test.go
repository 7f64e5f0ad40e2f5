package dialog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"frontdesk/models"
	"frontdesk/services/intelligence"
	"frontdesk/services/notification"
	"frontdesk/services/telemetry"
)

type fakeStore struct {
	sessions map[string]*models.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*models.Session)}
}

func (s *fakeStore) Load(_ context.Context, id string) (*models.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (s *fakeStore) Save(_ context.Context, sess *models.Session) error {
	copied := *sess
	s.sessions[sess.ID] = &copied
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type fakeTenants struct {
	tenant *models.Tenant
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*models.Tenant, error) {
	if f.tenant == nil || f.tenant.ID != id {
		return nil, errors.New("tenant not found")
	}
	return f.tenant, nil
}

func (f *fakeTenants) UpdateSlotConfig(context.Context, string, []models.SlotDefinition) error {
	return nil
}

type fakeRetriever struct {
	answer *models.KnowledgeAnswer
}

func (f *fakeRetriever) Search(context.Context, string, string) (*models.KnowledgeAnswer, error) {
	return f.answer, nil
}

type fakeOracle struct {
	text  string
	err   error
	calls int
}

func (f *fakeOracle) Complete(context.Context, string) (*intelligence.Completion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &intelligence.Completion{Text: f.text, TokensUsed: 42}, nil
}

type fakeBookings struct {
	records  []models.BookingRecord
	failNext bool
}

func (f *fakeBookings) Create(_ context.Context, record models.BookingRecord) (string, string, error) {
	if f.failNext {
		f.failNext = false
		return "", "", errors.New("storage down")
	}
	f.records = append(f.records, record)
	return record.CaseID, record.ID, nil
}

func (f *fakeBookings) GetByCaseID(context.Context, string, string) (*models.BookingRecord, error) {
	return nil, nil
}

func (f *fakeBookings) GetBySessionID(context.Context, string) (*models.BookingRecord, error) {
	return nil, nil
}

func (f *fakeBookings) ListByTenant(context.Context, string, int64) ([]models.BookingRecord, error) {
	return nil, nil
}

func intakeTenant() *models.Tenant {
	return &models.Tenant{
		ID:          "t1",
		Name:        "Acme Heating & Air",
		OutcomeMode: models.OutcomePendingDispatch,
		SlotConfig:  intakeSlots(false),
	}
}

func newTestOrchestrator(tenant *models.Tenant, know *fakeRetriever, oracle *fakeOracle, bookings *fakeBookings) (*Orchestrator, *fakeStore) {
	store := newFakeStore()
	var o *Orchestrator
	if oracle != nil {
		o = NewOrchestrator(store, &fakeTenants{tenant: tenant}, know, oracle, bookings, notification.NopNotifier{}, telemetry.NopRecorder{})
	} else {
		o = NewOrchestrator(store, &fakeTenants{tenant: tenant}, know, nil, bookings, notification.NopNotifier{}, telemetry.NopRecorder{})
	}
	return o, store
}

func turn(t *testing.T, o *Orchestrator, sessionID, text string) *models.TurnResponse {
	t.Helper()
	resp, err := o.HandleTurn(context.Background(), "t1", models.TurnRequest{
		SessionID: sessionID,
		Channel:   "voice",
		Text:      text,
	})
	if err != nil {
		t.Fatalf("turn %q failed: %v", text, err)
	}
	return resp
}

func TestOrchestratorFullIntakeFlow(t *testing.T) {
	bookings := &fakeBookings{}
	o, _ := newTestOrchestrator(intakeTenant(), &fakeRetriever{}, nil, bookings)

	resp := turn(t, o, "", "My name is Dana Lee")
	if resp.Mode != models.ModeBooking {
		t.Fatalf("mode after first turn = %q", resp.Mode)
	}
	sid := resp.SessionID

	turn(t, o, sid, "555-123-4567")
	turn(t, o, sid, "42 Oak Street")
	resp = turn(t, o, sid, "tomorrow morning")

	if resp.Mode != models.ModeComplete {
		t.Fatalf("mode after last turn = %q", resp.Mode)
	}
	if len(bookings.records) != 1 {
		t.Fatalf("expected one booking, got %d", len(bookings.records))
	}
	record := bookings.records[0]
	if record.Name != "Dana Lee" {
		t.Fatalf("name = %q", record.Name)
	}
	if record.Phone != "(555) 123-4567" {
		t.Fatalf("phone = %q", record.Phone)
	}
	if record.Address != "42 Oak Street" {
		t.Fatalf("address = %q", record.Address)
	}
	if record.TimeWindow != "tomorrow" || record.ASAP {
		t.Fatalf("time = %q asap=%v", record.TimeWindow, record.ASAP)
	}
	if !strings.HasPrefix(record.CaseID, "FD-") {
		t.Fatalf("case id = %q", record.CaseID)
	}
}

func TestOrchestratorInterruptRepeatsExactPendingQuestion(t *testing.T) {
	know := &fakeRetriever{answer: &models.KnowledgeAnswer{
		Answer:   "We can usually get someone out the same day.",
		Category: "availability",
		Score:    4,
	}}
	o, store := newTestOrchestrator(intakeTenant(), know, nil, &fakeBookings{})

	resp := turn(t, o, "", "My name is Dana Lee")
	sid := resp.SessionID
	pending := store.sessions[sid].PendingQuestion

	resp = turn(t, o, sid, "what's the soonest you can come?")
	want := know.answer.Answer + " " + pending
	if resp.Reply != want {
		t.Fatalf("reply = %q, want %q", resp.Reply, want)
	}
	if store.sessions[sid].PendingQuestion != pending {
		t.Fatalf("interrupt must not disturb the pending question")
	}
	if store.sessions[sid].ActiveSlotID != "phone" {
		t.Fatalf("interrupt must not move the active slot")
	}
}

func TestOrchestratorFinalizeRetryOnNextTurn(t *testing.T) {
	bookings := &fakeBookings{failNext: true}
	o, store := newTestOrchestrator(intakeTenant(), &fakeRetriever{}, nil, bookings)

	resp := turn(t, o, "", "My name is Dana Lee")
	sid := resp.SessionID
	turn(t, o, sid, "555-123-4567")
	turn(t, o, sid, "42 Oak Street")

	resp = turn(t, o, sid, "tomorrow morning")
	if resp.Mode == models.ModeComplete {
		t.Fatalf("failed persistence must not complete the session")
	}
	if !store.sessions[sid].FinalizePending {
		t.Fatalf("expected finalize retry flag")
	}
	if resp.Reply == "" {
		t.Fatalf("caller must still get a safe acknowledgement")
	}
	caseID := store.sessions[sid].CaseID

	resp = turn(t, o, sid, "hello?")
	if resp.Mode != models.ModeComplete {
		t.Fatalf("retry turn should complete, mode = %q", resp.Mode)
	}
	if len(bookings.records) != 1 || bookings.records[0].CaseID != caseID {
		t.Fatalf("retry must reuse the case id, records = %+v", bookings.records)
	}
}

func TestOrchestratorDegradedWithoutSlotConfig(t *testing.T) {
	tenant := intakeTenant()
	tenant.SlotConfig = nil
	o, _ := newTestOrchestrator(tenant, &fakeRetriever{}, nil, &fakeBookings{})

	resp, err := o.HandleTurn(context.Background(), "t1", models.TurnRequest{
		Channel: "voice",
		Text:    "I want to book an appointment",
	})
	if err != nil {
		t.Fatalf("degraded mode must not error: %v", err)
	}
	if !strings.Contains(resp.Reply, "message") {
		t.Fatalf("expected take-a-message reply, got %q", resp.Reply)
	}
	if resp.Mode == models.ModeComplete {
		t.Fatalf("degraded mode must never complete a booking")
	}
}

func TestOrchestratorNewBookingResetAfterComplete(t *testing.T) {
	bookings := &fakeBookings{}
	o, store := newTestOrchestrator(intakeTenant(), &fakeRetriever{}, nil, bookings)

	resp := turn(t, o, "", "My name is Dana Lee")
	sid := resp.SessionID
	turn(t, o, sid, "555-123-4567")
	turn(t, o, sid, "42 Oak Street")
	turn(t, o, sid, "tomorrow morning")

	resp = turn(t, o, sid, "I'd like to book another appointment")
	if resp.Mode == models.ModeComplete {
		t.Fatalf("new booking request should leave COMPLETE, mode = %q", resp.Mode)
	}
	sess := store.sessions[sid]
	if len(sess.CollectedSlots) != 0 || sess.CaseID != "" {
		t.Fatalf("booking state should reset, got %+v", sess)
	}
}

func TestOrchestratorConsentPersistsThroughLaterNegation(t *testing.T) {
	required := true
	tenant := intakeTenant()
	tenant.ConsentRequired = &required
	o, store := newTestOrchestrator(tenant, &fakeRetriever{}, nil, &fakeBookings{})

	resp := turn(t, o, "", "I'd like to book an appointment")
	if !resp.ConsentGiven || resp.Mode != models.ModeBooking {
		t.Fatalf("consent not granted on explicit phrase: %+v", resp)
	}
	sid := resp.SessionID

	for _, text := range []string{"actually no, never mind", "no, don't bother"} {
		resp = turn(t, o, sid, text)
		if !resp.ConsentGiven {
			t.Fatalf("consent revoked after %q", text)
		}
		if !store.sessions[sid].Consent.Given {
			t.Fatalf("stored consent flipped after %q", text)
		}
		if resp.Mode != models.ModeBooking {
			t.Fatalf("mode = %q after %q", resp.Mode, text)
		}
	}
}

func TestOrchestratorOracleFallbackOnInterrupt(t *testing.T) {
	oracle := &fakeOracle{text: "Our service call fee is ninety dollars."}
	o, store := newTestOrchestrator(intakeTenant(), &fakeRetriever{}, oracle, &fakeBookings{})

	resp := turn(t, o, "", "My name is Dana Lee")
	sid := resp.SessionID
	pending := store.sessions[sid].PendingQuestion

	resp = turn(t, o, sid, "how much does a visit cost?")
	want := oracle.text + " " + pending
	if resp.Reply != want {
		t.Fatalf("reply = %q, want %q", resp.Reply, want)
	}
	if oracle.calls != 1 {
		t.Fatalf("oracle calls = %d", oracle.calls)
	}
	if resp.DebugTrace == nil || !resp.DebugTrace.UsedOracle || resp.DebugTrace.OracleTokens != 42 {
		t.Fatalf("trace = %+v", resp.DebugTrace)
	}
}

func TestOrchestratorOracleFailureFallsBackToApology(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("deadline exceeded")}
	o, store := newTestOrchestrator(intakeTenant(), &fakeRetriever{}, oracle, &fakeBookings{})

	resp := turn(t, o, "", "My name is Dana Lee")
	sid := resp.SessionID
	pending := store.sessions[sid].PendingQuestion

	resp = turn(t, o, sid, "how much does a visit cost?")
	if !strings.Contains(resp.Reply, pending) {
		t.Fatalf("pending question must still be asked, reply = %q", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "sorry") && !strings.Contains(resp.Reply, "Sorry") {
		t.Fatalf("expected apology, got %q", resp.Reply)
	}
}

func TestOrchestratorUnknownTenant(t *testing.T) {
	o, _ := newTestOrchestrator(intakeTenant(), &fakeRetriever{}, nil, &fakeBookings{})

	_, err := o.HandleTurn(context.Background(), "nope", models.TurnRequest{Channel: "sms", Text: "hi"})
	var te *TurnError
	if !errors.As(err, &te) || te.Code != CodeUnknownTenant {
		t.Fatalf("expected unknownTenant error, got %v", err)
	}
}
