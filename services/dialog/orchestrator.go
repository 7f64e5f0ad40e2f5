package dialog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"frontdesk/config"
	bookingRepo "frontdesk/database/repository/booking"
	tenantRepo "frontdesk/database/repository/tenant"
	"frontdesk/models"
	"frontdesk/services/extract"
	"frontdesk/services/intelligence"
	"frontdesk/services/notification"
	"frontdesk/services/session"
	"frontdesk/services/slotconfig"
	"frontdesk/services/telemetry"
	"frontdesk/utils"
)

const (
	oracleApology   = "I'm sorry, I didn't catch that. Could you say it one more time?"
	schedulingOffer = "Would you like to schedule a visit?"
)

// Orchestrator is the top-level per-turn coordinator. It checks the session
// out of the store, routes the utterance through the classifiers and the
// collector, and writes the session back atomically at the end of the turn.
type Orchestrator struct {
	store    session.Store
	tenants  tenantRepo.TenantRepository
	know     intelligence.Retriever
	oracle   intelligence.Oracle
	final    *Finalizer
	notifier notification.Notifier
	rec      telemetry.Recorder
}

func NewOrchestrator(
	store session.Store,
	tenants tenantRepo.TenantRepository,
	know intelligence.Retriever,
	oracle intelligence.Oracle,
	bookings bookingRepo.BookingRepository,
	notifier notification.Notifier,
	rec telemetry.Recorder,
) *Orchestrator {
	return &Orchestrator{
		store:    store,
		tenants:  tenants,
		know:     know,
		oracle:   oracle,
		final:    NewFinalizer(bookings),
		notifier: notifier,
		rec:      rec,
	}
}

// turnState bundles everything one turn needs so the routing helpers stay
// small.
type turnState struct {
	sess   *models.Session
	tenant *models.Tenant
	lex    models.Lexicon
	ex     *extract.Extractor
	exr    models.ExtractionResult
	slots  []models.SlotDefinition
	text   string
	trace  DebugTraceBuilder
}

// DebugTraceBuilder accumulates routing decisions during a turn.
type DebugTraceBuilder struct {
	models.DebugTrace
}

func (b *DebugTraceBuilder) note(s string) { b.Notes = append(b.Notes, s) }

// HandleTurn runs one utterance through the state machine and returns the
// single reply for it. The tenant id comes from the authenticated adapter,
// never from the request body.
func (o *Orchestrator) HandleTurn(ctx context.Context, tenantID string, req models.TurnRequest) (*models.TurnResponse, error) {
	started := time.Now()

	st, err := o.checkout(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	modeBefore := st.sess.Mode
	reply := o.route(ctx, st)

	st.sess.UpdatedAt = nowUTC()
	if err := o.store.Save(ctx, st.sess); err != nil {
		// The reply still goes out; the next turn resumes from the last
		// persisted state.
		utils.GetLogger().Error("session save failed",
			zap.String("sessionId", st.sess.ID), zap.Error(err))
	}

	o.rec.Record(models.TurnRecord{
		TenantID:     st.sess.TenantID,
		SessionID:    st.sess.ID,
		Turn:         st.sess.Turn,
		Channel:      st.sess.Channel,
		ModeBefore:   modeBefore,
		ModeAfter:    st.sess.Mode,
		Action:       st.trace.Action,
		ActiveSlotID: st.trace.ActiveSlotID,
		StrikeLevel:  st.trace.StrikeLevel,
		Interrupt:    st.trace.Interrupt,
		UsedOracle:   st.trace.UsedOracle,
		OracleTokens: st.trace.OracleTokens,
		TookMS:       time.Since(started).Milliseconds(),
		Timestamp:    nowUTC(),
	})

	return &models.TurnResponse{
		Reply:          reply,
		SessionID:      st.sess.ID,
		Mode:           st.sess.Mode,
		SlotsCollected: collectedView(st.sess),
		ConsentGiven:   st.sess.Consent.Given,
		DebugTrace:     &st.trace.DebugTrace,
	}, nil
}

// checkout loads or creates the session and resolves the tenant's lexicon and
// slot plan for the turn.
func (o *Orchestrator) checkout(ctx context.Context, tenantID string, req models.TurnRequest) (*turnState, error) {
	tenant, err := o.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, NewTurnError(CodeUnknownTenant, "tenant lookup failed: "+err.Error())
	}

	var sess *models.Session
	if req.SessionID != "" {
		sess, err = o.store.Load(ctx, req.SessionID)
		if err != nil {
			return nil, NewTurnError(CodeMalformedSession, "session load failed: "+err.Error())
		}
	}
	if sess == nil {
		id := req.SessionID
		if id == "" {
			id = uuid.NewString()
		}
		sess = models.NewSession(id, tenant.ID, req.Channel)
	}
	if sess.TenantID != tenant.ID {
		return nil, NewTurnError(CodeMalformedSession, "session belongs to another tenant")
	}

	lex := extract.MergeLexicon(tenant.Lexicon)
	slots, source := slotconfig.FromTenant(tenant)

	st := &turnState{
		sess:   sess,
		tenant: tenant,
		lex:    lex,
		ex:     extract.New(lex),
		slots:  slots,
		text:   req.Text,
	}
	st.trace.ConfigSource = source

	NewModeController(lex).RestoreMode(sess)
	sess.Turn++
	st.exr = st.ex.ExtractAll(req.Text)
	return st, nil
}

// route picks the reply for the turn based on mode.
func (o *Orchestrator) route(ctx context.Context, st *turnState) string {
	modes := NewModeController(st.lex)

	if st.sess.Mode == models.ModeComplete {
		if modes.WantsNewBooking(st.text) {
			modes.ResetForNewBooking(st.sess)
			st.trace.note("new booking reset")
			// Fall through to discovery handling below.
		} else {
			st.trace.Action = "complete_noop"
			return "You're all set. Your reference number is " + st.sess.CaseID + ". Is there anything else I can help with?"
		}
	}

	if st.sess.FinalizePending {
		st.trace.Action = "finalize_retry"
		res := o.final.Finalize(ctx, st.sess, st.tenant, st.slots)
		if res.Persisted {
			o.pushBooking(ctx, st)
		}
		return res.Reply
	}

	if st.sess.Mode == models.ModeDiscovery {
		return o.routeDiscovery(ctx, st, modes)
	}
	return o.routeBooking(ctx, st)
}

func (o *Orchestrator) routeDiscovery(ctx context.Context, st *turnState, modes *ModeController) string {
	required := config.AppConfig.ConsentRequired
	if st.tenant.ConsentRequired != nil {
		required = *st.tenant.ConsentRequired
	}
	verdict := NewConsentClassifier(st.lex, required).Classify(st.text, st.sess.OfferedScheduling)
	if verdict.Given {
		if len(st.slots) == 0 {
			// No slot plan means booking is refused outright; consent is not
			// recorded for a flow that cannot run.
			return o.takeMessage(st)
		}
		modes.GrantConsent(st.sess, verdict)
		st.trace.note("consent: " + verdict.Reason)
		return o.enterBooking(ctx, st)
	}

	appendSummary(st.sess, st.text)
	st.sess.OfferedScheduling = true
	st.trace.Action = "discovery_answer"
	return o.answerQuestion(ctx, st, st.text) + " " + schedulingOffer
}

// enterBooking runs the collector immediately after consent so values spoken
// in the consenting utterance are not lost.
func (o *Orchestrator) enterBooking(ctx context.Context, st *turnState) string {
	collector := NewCollector(st.lex, st.ex)
	res := collector.Step(st.sess, st.slots, st.text, st.exr)
	o.applyStep(ctx, st, &res)
	if res.ReadyToFinalize {
		return o.finalize(ctx, st)
	}
	return "Great, let's get you scheduled. " + res.Reply
}

func (o *Orchestrator) routeBooking(ctx context.Context, st *turnState) string {
	if len(st.slots) == 0 {
		return o.takeMessage(st)
	}

	if st.sess.PendingQuestion != "" {
		ic := NewInterruptClassifier(st.lex)
		if ic.IsInterrupt(st.text, st.exr) {
			st.trace.Interrupt = true
			st.trace.Action = "interrupt_answer"
			pending := st.sess.PendingQuestion
			return o.answerQuestion(ctx, st, st.text) + " " + pending
		}
	}

	collector := NewCollector(st.lex, st.ex)
	res := collector.Step(st.sess, st.slots, st.text, st.exr)
	o.applyStep(ctx, st, &res)
	if res.ReadyToFinalize {
		return o.finalize(ctx, st)
	}
	return res.Reply
}

func (o *Orchestrator) applyStep(ctx context.Context, st *turnState, res *StepResult) {
	st.trace.Action = string(res.Action)
	st.trace.ActiveSlotID = res.ActiveSlotID
	st.trace.StrikeLevel = res.StrikeLevel

	if res.Action == ActionEscalate {
		if err := o.notifier.NotifyEscalation(ctx, st.tenant, st.sess, res.ActiveSlotID); err != nil {
			utils.GetLogger().Warn("escalation push failed",
				zap.String("sessionId", st.sess.ID), zap.Error(err))
		}
	}
}

func (o *Orchestrator) finalize(ctx context.Context, st *turnState) string {
	st.trace.Action = "finalize"
	res := o.final.Finalize(ctx, st.sess, st.tenant, st.slots)
	if res.Persisted {
		o.pushBooking(ctx, st)
	}
	return res.Reply
}

func (o *Orchestrator) pushBooking(ctx context.Context, st *turnState) {
	record := o.final.buildRecord(st.sess, st.tenant, st.slots)
	if err := o.notifier.NotifyBooking(ctx, st.tenant, record); err != nil {
		utils.GetLogger().Warn("booking push failed",
			zap.String("caseId", st.sess.CaseID), zap.Error(err))
	}
}

// answerQuestion resolves a caller question: knowledge snippets first, the
// generative oracle only on a miss, a fixed apology when the oracle fails.
func (o *Orchestrator) answerQuestion(ctx context.Context, st *turnState, text string) string {
	if o.know != nil {
		hit, err := o.know.Search(ctx, st.tenant.ID, text)
		if err != nil {
			utils.GetLogger().Warn("knowledge search failed",
				zap.String("tenantId", st.tenant.ID), zap.Error(err))
		}
		if hit != nil && st.tenant.KnowledgeMinScore > 0 && hit.Score < st.tenant.KnowledgeMinScore {
			hit = nil
		}
		if hit != nil {
			st.trace.note("knowledge: " + hit.Category)
			return hit.Answer
		}
	}
	if o.oracle == nil {
		return oracleApology
	}

	st.trace.UsedOracle = true
	completion, err := o.oracle.Complete(ctx, oraclePrompt(st, text))
	if err != nil {
		utils.GetLogger().Warn("oracle call failed",
			zap.String("sessionId", st.sess.ID), zap.Error(err))
		st.trace.note(CodeOracleFailure)
		return oracleApology
	}
	st.trace.OracleTokens = completion.TokensUsed
	answer := strings.TrimSpace(completion.Text)
	if answer == "" {
		return oracleApology
	}
	return answer
}

// takeMessage is the degraded path when the tenant has no slot plan: never
// enter booking, just capture the caller's words for a human to read.
func (o *Orchestrator) takeMessage(st *turnState) string {
	st.trace.Action = "take_message"
	st.trace.note(CodeConfigurationMissing)
	appendSummary(st.sess, st.text)
	o.rec.Record(models.TurnRecord{
		TenantID:  st.sess.TenantID,
		SessionID: st.sess.ID,
		Turn:      st.sess.Turn,
		Channel:   st.sess.Channel,
		Action:    "take_message",
		Message:   st.text,
		Timestamp: nowUTC(),
	})
	return "I can take a message and have someone from the office call you back. What would you like me to pass along?"
}

func oraclePrompt(st *turnState, text string) string {
	var sb strings.Builder
	sb.WriteString("You are the phone receptionist for ")
	sb.WriteString(st.tenant.Name)
	sb.WriteString(", a home service company. Answer the caller's question briefly, in one or two sentences, then stop. ")
	if st.sess.DiscoverySummary != "" {
		sb.WriteString("Conversation so far: ")
		sb.WriteString(st.sess.DiscoverySummary)
		sb.WriteString(" ")
	}
	sb.WriteString("Caller: ")
	sb.WriteString(text)
	return sb.String()
}

func appendSummary(sess *models.Session, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if sess.DiscoverySummary != "" {
		sess.DiscoverySummary += " | "
	}
	sess.DiscoverySummary += text
}

func collectedView(sess *models.Session) map[string]string {
	out := make(map[string]string, len(sess.CollectedSlots))
	for id, val := range sess.CollectedSlots {
		if sess.SlotCollected(id) {
			out[id] = val
		}
	}
	return out
}
