package dialog

import (
	"testing"

	"frontdesk/models"
	"frontdesk/services/extract"
)

func newNameResolver() *NameResolver {
	lex := extract.DefaultLexicon()
	return NewNameResolver(lex, extract.New(lex))
}

func nameSlot(askFullName, confirmBack bool) models.SlotDefinition {
	return models.SlotDefinition{
		SlotID:      "name",
		Question:    "Can I get your name?",
		Required:    true,
		Type:        models.SlotTypeName,
		ConfirmBack: confirmBack,
		AskFullName: askFullName,
	}
}

func TestNameSingleTokenWithoutFullNameOption(t *testing.T) {
	r := newNameResolver()
	st := &models.NameState{}

	res := r.Step(st, nameSlot(false, true), "Mark")
	if !res.Done || res.FullName != "Mark" {
		t.Fatalf("expected COMPLETE with %q, got %+v", "Mark", res)
	}
	if st.Stage != models.NameComplete {
		t.Fatalf("stage = %q", st.Stage)
	}
}

func TestNameMultiTokenCompletesDirectly(t *testing.T) {
	r := newNameResolver()
	st := &models.NameState{}

	res := r.Step(st, nameSlot(true, true), "my name is Dana Lee")
	if !res.Done || res.FullName != "Dana Lee" {
		t.Fatalf("expected COMPLETE with %q, got %+v", "Dana Lee", res)
	}
}

func TestNameSingleTokenDisambiguation(t *testing.T) {
	r := newNameResolver()
	st := &models.NameState{}
	def := nameSlot(true, true)

	// A lone uncommon token is taken as a last name and confirmed back.
	res := r.Step(st, def, "Subach")
	if res.Done {
		t.Fatalf("should not complete on a lone token, got %+v", res)
	}
	if st.Stage != models.NamePartialUnconfirmed {
		t.Fatalf("stage = %q", st.Stage)
	}

	// Affirmation moves to the missing counterpart, asked exactly once.
	res = r.Step(st, def, "yes")
	if res.Done || res.Question != "And your first name?" {
		t.Fatalf("expected first-name question, got %+v", res)
	}
	if !st.AskedMissingPartOnce {
		t.Fatalf("askedMissingPartOnce not set")
	}

	// The counterpart combines into the full name.
	res = r.Step(st, def, "Mark")
	if !res.Done || res.FullName != "Mark Subach" {
		t.Fatalf("expected %q, got %+v", "Mark Subach", res)
	}
}

func TestNameCommonFirstNameAsksForLast(t *testing.T) {
	r := newNameResolver()
	st := &models.NameState{}
	def := nameSlot(true, true)

	r.Step(st, def, "Dana")
	res := r.Step(st, def, "yes")
	if res.Question != "And your last name?" {
		t.Fatalf("expected last-name question, got %+v", res)
	}

	res = r.Step(st, def, "Lee")
	if !res.Done || res.FullName != "Dana Lee" {
		t.Fatalf("expected %q, got %+v", "Dana Lee", res)
	}
}

func TestNameDenialResetsOnce(t *testing.T) {
	r := newNameResolver()
	st := &models.NameState{}
	def := nameSlot(true, true)

	r.Step(st, def, "Subach")
	res := r.Step(st, def, "no that's wrong")
	if res.Done || res.Question != def.Question {
		t.Fatalf("denial should re-ask the original question, got %+v", res)
	}
	if st.Stage != models.NameEmpty || !st.DeniedOnce {
		t.Fatalf("state after denial = %+v", st)
	}

	// The next answer is accepted without another confirmation loop.
	res = r.Step(st, def, "Subich")
	if !res.Done || res.FullName != "Subich" {
		t.Fatalf("post-denial answer should be accepted as given, got %+v", res)
	}
}

func TestNameOverrideDuringConfirm(t *testing.T) {
	r := newNameResolver()
	st := &models.NameState{}
	def := nameSlot(true, true)

	r.Step(st, def, "Subach")
	res := r.Step(st, def, "my name is Dana Lee")
	if !res.Done || res.FullName != "Dana Lee" {
		t.Fatalf("replacement value should be accepted silently, got %+v", res)
	}
}

func TestNameNoCandidateIsNoProgress(t *testing.T) {
	r := newNameResolver()
	st := &models.NameState{}
	def := nameSlot(true, true)

	res := r.Step(st, def, "the furnace is making a weird noise")
	if res.Done || res.Progress {
		t.Fatalf("unparseable utterance should be a no-progress step, got %+v", res)
	}
	if res.Question != def.Question {
		t.Fatalf("should repeat the slot question, got %q", res.Question)
	}
}
