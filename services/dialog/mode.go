package dialog

import (
	"strings"

	"frontdesk/models"
)

// ModeController owns the session's coarse mode transitions. Modes only move
// forward within a booking; the single backward edge is an explicit new
// booking request against a completed session.
type ModeController struct {
	lex models.Lexicon
}

func NewModeController(lex models.Lexicon) *ModeController {
	return &ModeController{lex: lex}
}

// RestoreMode recomputes the mode for a freshly loaded session so a turn can
// resume safely after a crash or client timeout. Completion wins over
// consent, consent wins over discovery.
func (mc *ModeController) RestoreMode(sess *models.Session) {
	switch {
	case sess.CompletedAt != nil:
		sess.Mode = models.ModeComplete
	case sess.Consent.Given:
		sess.Mode = models.ModeBooking
	default:
		sess.Mode = models.ModeDiscovery
	}
}

// WantsNewBooking reports whether a caller on a completed session is asking
// to start over.
func (mc *ModeController) WantsNewBooking(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range mc.lex.NewBookingKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// ResetForNewBooking clears the booking-scoped state while keeping identity
// and ask-count history, then returns the session to discovery.
func (mc *ModeController) ResetForNewBooking(sess *models.Session) {
	sess.Mode = models.ModeDiscovery
	sess.CollectedSlots = make(map[string]string)
	sess.SlotMeta = make(map[string]models.SlotMeta)
	sess.Consent = models.Consent{}
	sess.ActiveSlotID = ""
	sess.PendingQuestion = ""
	sess.NameState = models.NameState{}
	sess.OfferedScheduling = false
	sess.DiscoverySummary = ""
	sess.FinalizePending = false
	sess.CaseID = ""
	sess.CompletedAt = nil
}

// GrantConsent records the consent decision and moves the session into
// booking. Consent is permanent for the life of the booking.
func (mc *ModeController) GrantConsent(sess *models.Session, res ConsentResult) {
	sess.Consent = models.Consent{
		Given:     true,
		Phrase:    res.MatchedPhrase,
		Turn:      sess.Turn,
		Timestamp: nowUTC(),
	}
	sess.Mode = models.ModeBooking
}
