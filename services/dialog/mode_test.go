package dialog

import (
	"testing"
	"time"

	"frontdesk/models"
	"frontdesk/services/extract"
)

func TestRestoreModePriority(t *testing.T) {
	mc := NewModeController(extract.DefaultLexicon())
	now := time.Now()

	sess := models.NewSession("s1", "t1", "voice")
	mc.RestoreMode(sess)
	if sess.Mode != models.ModeDiscovery {
		t.Fatalf("fresh session mode = %q", sess.Mode)
	}

	sess.Consent.Given = true
	mc.RestoreMode(sess)
	if sess.Mode != models.ModeBooking {
		t.Fatalf("consented session mode = %q", sess.Mode)
	}

	// Completion outranks consent.
	sess.CompletedAt = &now
	mc.RestoreMode(sess)
	if sess.Mode != models.ModeComplete {
		t.Fatalf("finalized session mode = %q", sess.Mode)
	}
}

func TestWantsNewBooking(t *testing.T) {
	mc := NewModeController(extract.DefaultLexicon())

	if !mc.WantsNewBooking("actually I'd like to book another visit") {
		t.Fatalf("expected new booking request")
	}
	if mc.WantsNewBooking("thanks, that's all") {
		t.Fatalf("plain goodbye should not reset")
	}
}

func TestResetForNewBookingKeepsAskCounts(t *testing.T) {
	mc := NewModeController(extract.DefaultLexicon())
	now := time.Now()

	sess := models.NewSession("s1", "t1", "voice")
	sess.Mode = models.ModeComplete
	sess.CollectedSlots["phone"] = "(555) 123-4567"
	sess.SlotMeta["phone"] = models.SlotMeta{Confirmed: true}
	sess.AskCounts["phone"] = 2
	sess.Consent = models.Consent{Given: true, Turn: 1}
	sess.CaseID = "FD-ABC12345"
	sess.CompletedAt = &now

	mc.ResetForNewBooking(sess)

	if sess.Mode != models.ModeDiscovery {
		t.Fatalf("mode = %q", sess.Mode)
	}
	if len(sess.CollectedSlots) != 0 || len(sess.SlotMeta) != 0 {
		t.Fatalf("booking state not cleared: %+v", sess)
	}
	if sess.Consent.Given || sess.CaseID != "" || sess.CompletedAt != nil {
		t.Fatalf("terminal state not cleared: %+v", sess)
	}
	if sess.AskCounts["phone"] != 2 {
		t.Fatalf("askCounts must survive the reset, got %d", sess.AskCounts["phone"])
	}
}
