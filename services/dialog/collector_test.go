package dialog

import (
	"testing"

	"frontdesk/models"
	"frontdesk/services/extract"
)

func intakeSlots(confirmBack bool) []models.SlotDefinition {
	return []models.SlotDefinition{
		{SlotID: "name", Question: "Can I get your name?", Required: true, Order: 0, Type: models.SlotTypeName, ConfirmBack: confirmBack},
		{SlotID: "phone", Question: "What's the best callback number?", Required: true, Order: 1, Type: models.SlotTypePhone, ConfirmBack: confirmBack},
		{SlotID: "address", Question: "What's the service address?", Required: true, Order: 2, Type: models.SlotTypeAddress, ConfirmBack: confirmBack},
		{SlotID: "time", Question: "When works best for you?", Required: true, Order: 3, Type: models.SlotTypeTime, ConfirmBack: confirmBack},
	}
}

func newTestCollector() (*Collector, *extract.Extractor) {
	lex := extract.DefaultLexicon()
	ex := extract.New(lex)
	return NewCollector(lex, ex), ex
}

func step(t *testing.T, c *Collector, ex *extract.Extractor, sess *models.Session, slots []models.SlotDefinition, text string) StepResult {
	t.Helper()
	return c.Step(sess, slots, text, ex.ExtractAll(text))
}

func TestCollectorActiveSlotStableWithoutNewValues(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := intakeSlots(false)

	step(t, c, ex, sess, slots, "Dana Lee")
	if sess.ActiveSlotID != "phone" {
		t.Fatalf("active slot = %q, want phone", sess.ActiveSlotID)
	}

	for i := 0; i < 2; i++ {
		step(t, c, ex, sess, slots, "hmm let me think")
		if sess.ActiveSlotID != "phone" {
			t.Fatalf("active slot changed to %q on a no-value turn", sess.ActiveSlotID)
		}
	}
}

func TestCollectorWalksSlotOrder(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := intakeSlots(false)

	res := step(t, c, ex, sess, slots, "My name is Dana Lee")
	if res.Action != ActionAdvance || sess.ActiveSlotID != "phone" {
		t.Fatalf("after name: %+v, active %q", res, sess.ActiveSlotID)
	}

	res = step(t, c, ex, sess, slots, "555-123-4567")
	if sess.CollectedSlots["phone"] != "(555) 123-4567" {
		t.Fatalf("phone = %q", sess.CollectedSlots["phone"])
	}
	if sess.ActiveSlotID != "address" {
		t.Fatalf("active slot = %q, want address", sess.ActiveSlotID)
	}

	step(t, c, ex, sess, slots, "42 Oak Street")
	res = step(t, c, ex, sess, slots, "tomorrow morning")
	if !res.ReadyToFinalize || res.Action != ActionFinalize {
		t.Fatalf("expected finalize signal, got %+v", res)
	}
	if sess.CollectedSlots["time"] != "tomorrow" {
		t.Fatalf("time = %q, want tomorrow", sess.CollectedSlots["time"])
	}
}

func TestCollectorMergesVolunteeredValues(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := intakeSlots(false)

	step(t, c, ex, sess, slots, "my name is Dana Lee and you can reach me at 555-123-4567")
	if sess.CollectedSlots["phone"] != "(555) 123-4567" {
		t.Fatalf("volunteered phone not merged: %q", sess.CollectedSlots["phone"])
	}
	if sess.ActiveSlotID != "address" {
		t.Fatalf("active slot = %q, want address", sess.ActiveSlotID)
	}
}

func TestCollectorConfirmBackLoop(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := []models.SlotDefinition{
		{SlotID: "phone", Question: "What's the best callback number?", Required: true, Order: 0,
			Type: models.SlotTypePhone, ConfirmBack: true,
			ConfirmPromptTemplate: "I have {value}, is that right?"},
	}

	res := step(t, c, ex, sess, slots, "555-123-4567")
	if res.Action != ActionConfirm {
		t.Fatalf("expected confirm question, got %+v", res)
	}
	if res.Reply != "I have (555) 123-4567, is that right?" {
		t.Fatalf("confirm prompt = %q", res.Reply)
	}
	if sess.SlotCollected("phone") {
		t.Fatalf("pending value must not count as collected")
	}

	res = step(t, c, ex, sess, slots, "yes")
	if !res.ReadyToFinalize {
		t.Fatalf("affirmative should collect and finish, got %+v", res)
	}
	if !sess.SlotMeta["phone"].Confirmed {
		t.Fatalf("meta = %+v", sess.SlotMeta["phone"])
	}
}

func TestCollectorVolunteeredConfirmBackStillAsks(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := []models.SlotDefinition{
		{SlotID: "name", Question: "Can I get your name?", Required: true, Order: 0, Type: models.SlotTypeName},
		{SlotID: "phone", Question: "What's the best callback number?", Required: true, Order: 1,
			Type: models.SlotTypePhone, ConfirmBack: true,
			ConfirmPromptTemplate: "I have {value}, is that right?"},
	}

	// The phone arrives in the same breath as the name; it must still be
	// read back before it counts.
	res := step(t, c, ex, sess, slots, "my name is Dana Lee and you can reach me at 555-123-4567")
	if res.Action != ActionConfirm {
		t.Fatalf("volunteered value skipped its read-back, got %+v", res)
	}
	if res.Reply != "I have (555) 123-4567, is that right?" {
		t.Fatalf("confirm prompt = %q", res.Reply)
	}
	if sess.SlotCollected("phone") {
		t.Fatalf("unconfirmed value must not count as collected")
	}

	res = step(t, c, ex, sess, slots, "yes")
	if !res.ReadyToFinalize {
		t.Fatalf("affirmative should finish, got %+v", res)
	}
}

func TestCollectorConfirmBackDenialThenFreshAnswer(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := intakeSlots(true)[1:2] // just the phone slot

	step(t, c, ex, sess, slots, "555-123-4567")
	res := step(t, c, ex, sess, slots, "no")
	if res.ReadyToFinalize {
		t.Fatalf("denial must not collect")
	}
	if _, exists := sess.CollectedSlots["phone"]; exists {
		t.Fatalf("denied value should be cleared")
	}
	if !sess.SlotMeta["phone"].DeniedOnce {
		t.Fatalf("meta = %+v", sess.SlotMeta["phone"])
	}

	// After one denial the fresh answer is accepted without another loop.
	res = step(t, c, ex, sess, slots, "555-987-6543")
	if !res.ReadyToFinalize {
		t.Fatalf("post-denial answer should be accepted, got %+v", res)
	}
	if sess.CollectedSlots["phone"] != "(555) 987-6543" {
		t.Fatalf("phone = %q", sess.CollectedSlots["phone"])
	}
}

func TestCollectorConfirmBackOverrideValue(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := intakeSlots(true)[1:2]

	step(t, c, ex, sess, slots, "555-123-4567")
	res := step(t, c, ex, sess, slots, "actually it's 555-987-6543")
	if !res.ReadyToFinalize {
		t.Fatalf("override value should be accepted silently, got %+v", res)
	}
	if sess.CollectedSlots["phone"] != "(555) 987-6543" {
		t.Fatalf("phone = %q", sess.CollectedSlots["phone"])
	}
}

func TestCollectorStrikeLadder(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := intakeSlots(false)

	step(t, c, ex, sess, slots, "Dana Lee") // collects name, asks phone (count 1)
	if sess.AskCounts["phone"] != 1 {
		t.Fatalf("askCounts[phone] = %d", sess.AskCounts["phone"])
	}

	res := step(t, c, ex, sess, slots, "I don't remember")
	if res.Action != ActionClarify || res.StrikeLevel != StrikeClarify {
		t.Fatalf("second ask should clarify, got %+v", res)
	}

	res = step(t, c, ex, sess, slots, "still no idea")
	if res.Action != ActionEscalate || res.StrikeLevel != StrikeEscalate {
		t.Fatalf("third ask should escalate, got %+v", res)
	}
	if sess.AskCounts["phone"] != 3 {
		t.Fatalf("askCounts[phone] = %d", sess.AskCounts["phone"])
	}
}

func TestCollectorAskCountsMonotonic(t *testing.T) {
	c, ex := newTestCollector()
	sess := models.NewSession("s1", "t1", "voice")
	slots := intakeSlots(false)

	prev := 0
	for i := 0; i < 5; i++ {
		step(t, c, ex, sess, slots, "uh let me see here")
		count := sess.AskCounts["name"]
		if count < prev {
			t.Fatalf("askCounts decreased: %d -> %d", prev, count)
		}
		prev = count
	}
}
