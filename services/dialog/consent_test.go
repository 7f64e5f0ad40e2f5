package dialog

import (
	"testing"

	"frontdesk/services/extract"
)

func TestConsentExactPhrase(t *testing.T) {
	c := NewConsentClassifier(extract.DefaultLexicon(), true)

	res := c.Classify("I'd like to book an appointment please", false)
	if !res.Given {
		t.Fatalf("expected consent, got %+v", res)
	}
	if res.Reason != ConsentExplicitPhrase {
		t.Fatalf("reason = %q, want %q", res.Reason, ConsentExplicitPhrase)
	}
	if res.MatchedPhrase != "book an appointment" {
		t.Fatalf("matched phrase = %q", res.MatchedPhrase)
	}
}

func TestConsentAffirmativeNeedsOffer(t *testing.T) {
	c := NewConsentClassifier(extract.DefaultLexicon(), true)

	if res := c.Classify("yes please", false); res.Given {
		t.Fatalf("affirmative without a prior offer granted consent: %+v", res)
	}
	res := c.Classify("yes please", true)
	if !res.Given || res.Reason != ConsentAffirmedOffer {
		t.Fatalf("affirmative after offer should grant consent, got %+v", res)
	}
}

func TestConsentNegationBlocksAffirmative(t *testing.T) {
	c := NewConsentClassifier(extract.DefaultLexicon(), true)

	if res := c.Classify("yeah no, not today", true); res.Given {
		t.Fatalf("negated utterance granted consent: %+v", res)
	}
}

func TestConsentUrgencyImpliesRequest(t *testing.T) {
	c := NewConsentClassifier(extract.DefaultLexicon(), true)

	res := c.Classify("I need someone out here right away", false)
	if !res.Given || res.Reason != ConsentUrgency {
		t.Fatalf("urgency should grant consent, got %+v", res)
	}
}

func TestConsentKillswitch(t *testing.T) {
	c := NewConsentClassifier(extract.DefaultLexicon(), false)

	res := c.Classify("just browsing", false)
	if !res.Given || res.Reason != ConsentNotRequired {
		t.Fatalf("disabled killswitch should short-circuit, got %+v", res)
	}
}

func TestConsentPrecedenceOrder(t *testing.T) {
	c := NewConsentClassifier(extract.DefaultLexicon(), true)

	// Both a consent phrase and an urgency phrase: the phrase wins.
	res := c.Classify("book an appointment asap", false)
	if res.Reason != ConsentExplicitPhrase {
		t.Fatalf("reason = %q, want %q", res.Reason, ConsentExplicitPhrase)
	}
}
