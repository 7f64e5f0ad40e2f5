package dialog

import (
	"regexp"
	"strings"

	"frontdesk/models"
)

var (
	bareDigitsRe = regexp.MustCompile(`^[\d\s().+-]+$`)
	leadDigitRe  = regexp.MustCompile(`^\d+\s+\w+`)
)

// InterruptClassifier decides whether an utterance arriving against a pending
// slot question is an off-script question. It never mutates the session; the
// orchestrator answers the interrupt and repeats the pending question.
type InterruptClassifier struct {
	lex models.Lexicon
}

func NewInterruptClassifier(lex models.Lexicon) *InterruptClassifier {
	return &InterruptClassifier{lex: lex}
}

// IsInterrupt reports whether text is a question that should be answered
// before resuming slot collection. An utterance shaped like a slot answer that
// produced no extracted value this turn is never an interrupt; the collector
// handles it through the strike ladder instead.
func (ic *InterruptClassifier) IsInterrupt(text string, exr models.ExtractionResult) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if !ic.triggered(trimmed) {
		return false
	}
	if ic.answerShaped(trimmed) && !exr.AnyThisTurn() {
		return false
	}
	return true
}

func (ic *InterruptClassifier) triggered(text string) bool {
	if strings.HasSuffix(text, "?") {
		return true
	}
	lowered := strings.ToLower(text)
	ws := strings.Fields(lowered)
	if len(ws) > 0 {
		lead := strings.Trim(ws[0], ",.!?'")
		for _, q := range ic.lex.Interrogatives {
			if lead == q {
				return true
			}
		}
	}
	for _, kw := range ic.lex.InterruptKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// answerShaped matches the lead-ins and bare shapes a direct slot answer
// takes: "my name", "it's", yes/no openers, a bare phone shape, or a
// number-then-word address shape.
func (ic *InterruptClassifier) answerShaped(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, prefix := range []string{"my name", "it's ", "its ", "i'm ", "i am "} {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	ws := strings.Fields(lowered)
	if len(ws) > 0 {
		lead := strings.Trim(ws[0], ",.!?'")
		for _, a := range ic.lex.AffirmativeWords {
			if lead == a {
				return true
			}
		}
		for _, n := range ic.lex.NegationWords {
			if lead == n {
				return true
			}
		}
	}
	if bareDigitsRe.MatchString(lowered) {
		return true
	}
	return leadDigitRe.MatchString(lowered)
}
