package dialog

import (
	"regexp"
	"strings"

	"frontdesk/models"
)

var wordSplitRe = regexp.MustCompile(`[^a-z0-9']+`)

func words(text string) []string {
	parts := wordSplitRe.Split(strings.ToLower(strings.TrimSpace(text)), -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isAffirmative reports a yes-shaped utterance: a leading affirmative word
// with no negation token anywhere.
func isAffirmative(lex models.Lexicon, text string) bool {
	toks := words(text)
	if len(toks) == 0 {
		return false
	}
	if containsToken(lex.NegationWords, toks) {
		return false
	}
	for _, a := range lex.AffirmativeWords {
		a = strings.ToLower(a)
		if toks[0] == a {
			return true
		}
		// Multi-word affirmatives ("sounds good") match the whole utterance.
		if strings.Contains(a, " ") && strings.Join(toks, " ") == a {
			return true
		}
	}
	return false
}

// isNegative reports a no-shaped utterance: a leading negation token.
func isNegative(lex models.Lexicon, text string) bool {
	toks := words(text)
	if len(toks) == 0 {
		return false
	}
	for _, n := range lex.NegationWords {
		if toks[0] == strings.ToLower(n) {
			return true
		}
	}
	return false
}

func containsToken(list []string, toks []string) bool {
	for _, item := range list {
		item = strings.ToLower(item)
		for _, t := range toks {
			if t == item {
				return true
			}
		}
	}
	return false
}

func containsAnyPhrase(text string, phrases []string) (string, bool) {
	norm := " " + strings.Join(words(text), " ") + " "
	for _, p := range phrases {
		if strings.Contains(norm, " "+strings.ToLower(strings.TrimSpace(p))+" ") {
			return p, true
		}
	}
	return "", false
}
