// File: services/extract/extractor.go
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"frontdesk/models"
)

// Extractor maps raw utterance text to candidate slot values. All methods are
// stateless and total: they never panic and return the empty string when the
// text is ambiguous or yields nothing.
type Extractor struct {
	lex models.Lexicon
	// clockBare matches a bare hour after one of the lexicon's time
	// prepositions ("around 3", "by 10:30"). Nil when the tenant configured
	// no prepositions.
	clockBare *regexp.Regexp
}

// New builds an Extractor over a merged lexicon.
func New(lex models.Lexicon) *Extractor {
	e := &Extractor{lex: lex}
	if len(lex.TimePrepositions) > 0 {
		preps := make([]string, 0, len(lex.TimePrepositions))
		for _, p := range lex.TimePrepositions {
			preps = append(preps, regexp.QuoteMeta(strings.ToLower(p)))
		}
		e.clockBare = regexp.MustCompile(
			`(?i)\b(` + strings.Join(preps, "|") + `)\s+(1[0-2]|[1-9])(:[0-5][0-9])?\b`)
	}
	return e
}

var (
	phoneShapeRe = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	digitRe      = regexp.MustCompile(`\d`)
	clockRe      = regexp.MustCompile(`(?i)\b(1[0-2]|[1-9])(:[0-5][0-9])?\s*(am|pm|a\.m\.|p\.m\.)`)
	tokenSplitRe = regexp.MustCompile(`[^a-zA-Z0-9']+`)
)

// NameCandidate carries an extracted name plus whether the caller stated it
// explicitly ("my name is ..."), which is allowed to override a previously
// accepted value.
type NameCandidate struct {
	Value    string
	Explicit bool
}

// ExtractAll runs every field extractor over one utterance.
func (e *Extractor) ExtractAll(text string) models.ExtractionResult {
	var res models.ExtractionResult
	if nc := e.Name(text); nc.Value != "" {
		res.Name = &models.FieldCandidate{Value: nc.Value, ThisTurn: true}
	}
	if v := e.Phone(text); v != "" {
		res.Phone = &models.FieldCandidate{Value: v, ThisTurn: true}
	}
	if v := e.Address(text); v != "" {
		res.Address = &models.FieldCandidate{Value: v, ThisTurn: true}
	}
	if v := e.Time(text); v != "" {
		res.Time = &models.FieldCandidate{Value: v, ThisTurn: true}
	}
	return res
}

// Name extracts a caller name. Patterns are tried in confidence order:
// "my name is X", "this is X" on short utterances, a trailing "I'm X", then a
// bare two-token short utterance. Candidates are filtered against the deny
// list both as a whole phrase and token by token.
func (e *Extractor) Name(text string) NameCandidate {
	norm := normalize(text)

	if idx := strings.Index(norm, "my name is "); idx >= 0 {
		if v := e.nameTail(norm[idx+len("my name is "):]); v != "" {
			return NameCandidate{Value: v, Explicit: true}
		}
	}

	tokens := tokenize(norm)
	short := len(tokens) <= 6

	if short {
		if idx := strings.Index(norm, "this is "); idx >= 0 {
			if v := e.nameTail(norm[idx+len("this is "):]); v != "" {
				return NameCandidate{Value: v}
			}
		}
	}

	for _, marker := range []string{"i'm ", "i am "} {
		if idx := strings.LastIndex(norm, marker); idx >= 0 {
			if v := e.nameTail(norm[idx+len(marker):]); v != "" {
				return NameCandidate{Value: v}
			}
		}
	}

	if len(tokens) == 2 && digitRe.FindString(norm) == "" {
		if v := e.cleanCandidate(tokens); v != "" {
			return NameCandidate{Value: v}
		}
	}

	return NameCandidate{}
}

// nameTail takes the text after a name marker and returns up to three leading
// tokens that survive the deny list. The tail stops at punctuation or a
// conjunction so "my name is dana lee and my phone..." yields just the name.
func (e *Extractor) nameTail(tail string) string {
	if idx := strings.IndexAny(tail, ",.;!?"); idx >= 0 {
		tail = tail[:idx]
	}
	for _, cut := range []string{" and ", " but ", " so "} {
		if idx := strings.Index(tail, cut); idx >= 0 {
			tail = tail[:idx]
		}
	}
	tokens := tokenize(tail)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return e.cleanCandidate(tokens)
}

// BareNameToken returns a lone token usable as a name part when the caller
// answers a name prompt with a single word.
func (e *Extractor) BareNameToken(text string) string {
	tokens := tokenize(normalize(text))
	if len(tokens) != 1 {
		return ""
	}
	return e.cleanCandidate(tokens)
}

// cleanCandidate applies the deny list and title-cases surviving tokens.
func (e *Extractor) cleanCandidate(tokens []string) string {
	deny := e.nameDenySet()
	if _, bad := deny[strings.Join(tokens, " ")]; bad {
		return ""
	}
	for _, tok := range tokens {
		if _, bad := deny[tok]; bad {
			return ""
		}
		if digitRe.FindString(tok) != "" {
			return ""
		}
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = capitalize(tok)
	}
	return strings.Join(out, " ")
}

func (e *Extractor) nameDenySet() map[string]struct{} {
	deny := make(map[string]struct{})
	for _, list := range [][]string{
		e.lex.Greetings, e.lex.DomainNouns, e.lex.AuxiliaryVerbs, e.lex.UrgencyPhrases,
	} {
		for _, w := range list {
			deny[strings.ToLower(w)] = struct{}{}
		}
	}
	return deny
}

// Phone strips filler words, pulls the digit run and accepts exactly 10
// digits, or 11 with a leading country-code digit, reformatted for display.
func (e *Extractor) Phone(text string) string {
	norm := normalize(text)
	for _, filler := range e.lex.FillerWords {
		norm = strings.ReplaceAll(norm, " "+filler+" ", " ")
	}

	var digits strings.Builder
	for _, r := range norm {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return ""
	}
	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
}

// Address requires a leading street-number token followed within a few tokens
// by a recognized street type, and rejects spans overlapping complaint
// phrases so numeric complaint text never reads as an address.
func (e *Extractor) Address(text string) string {
	norm := normalize(text)
	tokens := tokenize(norm)

	streetTypes := make(map[string]struct{}, len(e.lex.StreetTypes))
	for _, t := range e.lex.StreetTypes {
		streetTypes[strings.ToLower(t)] = struct{}{}
	}

	for i, tok := range tokens {
		if !allDigits(tok) {
			continue
		}
		// Street type must appear within the next four tokens.
		end := -1
		limit := i + 4
		if limit >= len(tokens) {
			limit = len(tokens) - 1
		}
		for j := i + 1; j <= limit; j++ {
			if _, ok := streetTypes[tokens[j]]; ok {
				end = j
				break
			}
		}
		if end < 0 {
			continue
		}

		span := strings.Join(tokens[i:end+1], " ")
		if e.overlapsComplaint(norm, span) {
			continue
		}
		out := make([]string, 0, end-i+1)
		for k := i; k <= end; k++ {
			out = append(out, capitalize(tokens[k]))
		}
		return strings.Join(out, " ")
	}
	return ""
}

func (e *Extractor) overlapsComplaint(norm, span string) bool {
	spanStart := strings.Index(norm, span)
	if spanStart < 0 {
		return false
	}
	spanEnd := spanStart + len(span)
	for _, phrase := range e.lex.ComplaintPhrases {
		p := strings.ToLower(phrase)
		idx := strings.Index(norm, p)
		if idx < 0 {
			continue
		}
		if idx < spanEnd && idx+len(p) > spanStart {
			return true
		}
	}
	return false
}

// Time classifies a scheduling preference: an urgency phrase becomes the ASAP
// marker (questions about timing are excluded), then relative-day words,
// time-of-day words outside greetings, clock times and weekday names. Text
// containing a phone-number-shaped substring always yields nothing.
func (e *Extractor) Time(text string) string {
	norm := normalize(text)

	if phoneShapeRe.MatchString(norm) {
		return ""
	}

	if !e.isQuestion(norm) {
		for _, phrase := range e.lex.UrgencyPhrases {
			if containsPhrase(norm, strings.ToLower(phrase)) {
				return "asap"
			}
		}
	}

	tokens := tokenize(norm)

	for _, day := range e.lex.RelativeDayWords {
		if hasToken(tokens, strings.ToLower(day)) {
			return strings.ToLower(day)
		}
	}

	for _, word := range e.lex.TimeOfDayWords {
		w := strings.ToLower(word)
		for i, tok := range tokens {
			if tok != w {
				continue
			}
			// "good morning" is a greeting, not a preference.
			if i > 0 && tokens[i-1] == "good" {
				continue
			}
			return w
		}
	}

	if m := clockRe.FindStringSubmatch(norm); m != nil {
		suffix := strings.ReplaceAll(strings.ToLower(m[3]), ".", "")
		return strings.TrimSpace(m[1]+m[2]) + " " + suffix
	}
	if e.clockBare != nil {
		if m := e.clockBare.FindStringSubmatch(norm); m != nil {
			return strings.TrimSpace(m[2] + m[3])
		}
	}

	for _, day := range e.lex.WeekdayNames {
		if hasToken(tokens, strings.ToLower(day)) {
			return strings.ToLower(day)
		}
	}

	return ""
}

func (e *Extractor) isQuestion(norm string) bool {
	if strings.HasSuffix(strings.TrimSpace(norm), "?") {
		return true
	}
	tokens := tokenize(norm)
	if len(tokens) == 0 {
		return false
	}
	for _, q := range e.lex.Interrogatives {
		if tokens[0] == strings.ToLower(q) {
			return true
		}
	}
	return false
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func tokenize(text string) []string {
	parts := tokenSplitRe.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func allDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

func containsPhrase(norm, phrase string) bool {
	idx := strings.Index(norm, phrase)
	if idx < 0 {
		return false
	}
	// Whole-word boundaries on both sides.
	if idx > 0 && isWordChar(rune(norm[idx-1])) {
		return false
	}
	end := idx + len(phrase)
	if end < len(norm) && isWordChar(rune(norm[end])) {
		return false
	}
	return true
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func capitalize(tok string) string {
	if tok == "" {
		return tok
	}
	r := []rune(tok)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
