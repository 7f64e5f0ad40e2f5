package dialog

import "frontdesk/models"

// ConsentResult is the classifier verdict for one utterance.
type ConsentResult struct {
	Given         bool   `json:"given"`
	MatchedPhrase string `json:"matchedPhrase,omitempty"`
	Reason        string `json:"reason"`
}

// Consent reasons, in precedence order.
const (
	ConsentNotRequired    = "consent_not_required"
	ConsentExplicitPhrase = "consent_phrase"
	ConsentAffirmedOffer  = "affirmative_after_offer"
	ConsentUrgency        = "urgency_request"
	ConsentNone           = "no_consent"
)

// ConsentClassifier decides whether an utterance is explicit booking consent.
type ConsentClassifier struct {
	lex models.Lexicon
	// required mirrors the killswitch after tenant override; when false the
	// classifier short-circuits to always-given.
	required bool
}

func NewConsentClassifier(lex models.Lexicon, required bool) *ConsentClassifier {
	return &ConsentClassifier{lex: lex, required: required}
}

// Classify applies the precedence rules, first match wins: an exact configured
// consent phrase; an affirmative word when the prior turn offered scheduling
// and no negation token is present; an urgency phrase implying an immediate
// request.
func (c *ConsentClassifier) Classify(text string, offeredScheduling bool) ConsentResult {
	if !c.required {
		return ConsentResult{Given: true, Reason: ConsentNotRequired}
	}

	if phrase, ok := containsAnyPhrase(text, c.lex.ConsentPhrases); ok {
		return ConsentResult{Given: true, MatchedPhrase: phrase, Reason: ConsentExplicitPhrase}
	}

	if offeredScheduling && isAffirmative(c.lex, text) {
		return ConsentResult{Given: true, Reason: ConsentAffirmedOffer}
	}

	if phrase, ok := containsAnyPhrase(text, c.lex.UrgencyPhrases); ok {
		return ConsentResult{Given: true, MatchedPhrase: phrase, Reason: ConsentUrgency}
	}

	return ConsentResult{Reason: ConsentNone}
}
