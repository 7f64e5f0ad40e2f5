package dialog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "frontdesk/database/repository/booking"
	"frontdesk/models"
	"frontdesk/utils"
)

func nowUTC() time.Time { return time.Now().UTC() }

// FinalizeResult carries the closing script and whether the booking record
// actually landed in storage.
type FinalizeResult struct {
	Reply     string
	CaseID    string
	Persisted bool
}

// Finalizer assembles the booking record from collected slots, persists it,
// and produces the tenant's closing script. A persistence failure never
// surfaces to the caller; the session stays open and retries on the next
// turn.
type Finalizer struct {
	bookings bookingRepo.BookingRepository
}

func NewFinalizer(bookings bookingRepo.BookingRepository) *Finalizer {
	return &Finalizer{bookings: bookings}
}

// Finalize writes the booking and completes the session. On a storage error
// it returns a safe acknowledgement, marks the session for retry, and leaves
// the mode untouched.
func (f *Finalizer) Finalize(ctx context.Context, sess *models.Session, tenant *models.Tenant, slots []models.SlotDefinition) FinalizeResult {
	if sess.CaseID == "" {
		sess.CaseID = newCaseID()
	}
	record := f.buildRecord(sess, tenant, slots)

	if _, _, err := f.bookings.Create(ctx, record); err != nil {
		utils.GetLogger().Error("booking persist failed, will retry next turn",
			zap.String("sessionId", sess.ID), zap.Error(err))
		sess.FinalizePending = true
		return FinalizeResult{
			Reply:  "You're all set. We have your details and someone will be in touch shortly.",
			CaseID: sess.CaseID,
		}
	}

	sess.FinalizePending = false
	sess.Mode = models.ModeComplete
	now := nowUTC()
	sess.CompletedAt = &now
	return FinalizeResult{
		Reply:     f.closingScript(sess, tenant, record),
		CaseID:    sess.CaseID,
		Persisted: true,
	}
}

func (f *Finalizer) buildRecord(sess *models.Session, tenant *models.Tenant, slots []models.SlotDefinition) models.BookingRecord {
	record := models.BookingRecord{
		CaseID:           sess.CaseID,
		TenantID:         tenant.ID,
		SessionID:        sess.ID,
		Channel:          sess.Channel,
		Outcome:          tenant.OutcomeMode,
		Extra:            make(map[string]string),
		DiscoverySummary: sess.DiscoverySummary,
		CreatedAt:        nowUTC(),
	}
	if record.Outcome == "" {
		record.Outcome = models.OutcomePendingDispatch
	}
	for _, def := range slots {
		value, ok := sess.CollectedSlots[def.SlotID]
		if !ok {
			continue
		}
		switch def.Type {
		case models.SlotTypeName:
			record.Name = value
		case models.SlotTypePhone:
			record.Phone = value
		case models.SlotTypeAddress:
			record.Address = value
		case models.SlotTypeTime:
			record.TimeWindow = value
			record.ASAP = value == "asap"
		default:
			record.Extra[def.SlotID] = value
		}
	}
	return record
}

func (f *Finalizer) closingScript(sess *models.Session, tenant *models.Tenant, record models.BookingRecord) string {
	if tenant.FinalScriptTemplate != "" {
		return renderScript(tenant.FinalScriptTemplate, record, sess.CaseID)
	}
	switch record.Outcome {
	case models.OutcomeConfirmedOnCall:
		return "You're booked. Your confirmation number is " + sess.CaseID + ". We'll see you " + timePhrase(record) + "."
	case models.OutcomeCallbackRequired:
		return "Thanks, we have everything we need. A scheduler will call you back shortly to confirm a time. Your reference number is " + sess.CaseID + "."
	case models.OutcomeTransfer:
		return "Thanks, let me connect you with our dispatcher now. Your reference number is " + sess.CaseID + "."
	case models.OutcomeAfterHours:
		return "Thanks, we've logged your request. Our office opens in the morning and will reach out first thing. Your reference number is " + sess.CaseID + "."
	default:
		return "You're all set. Your reference number is " + sess.CaseID + ". Our dispatcher will confirm the exact arrival window " + timePhrase(record) + "."
	}
}

func timePhrase(record models.BookingRecord) string {
	if record.ASAP {
		return "as soon as possible"
	}
	if record.TimeWindow != "" {
		return record.TimeWindow
	}
	return "soon"
}

func renderScript(template string, record models.BookingRecord, caseID string) string {
	out := template
	out = strings.ReplaceAll(out, "{name}", record.Name)
	out = strings.ReplaceAll(out, "{phone}", record.Phone)
	out = strings.ReplaceAll(out, "{address}", record.Address)
	out = strings.ReplaceAll(out, "{time}", timePhrase(record))
	out = strings.ReplaceAll(out, "{caseId}", caseID)
	return out
}

func newCaseID() string {
	return "FD-" + strings.ToUpper(uuid.NewString()[:8])
}
