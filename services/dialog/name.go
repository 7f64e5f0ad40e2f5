package dialog

import (
	"strings"

	"frontdesk/models"
	"frontdesk/services/extract"
)

// NameStepResult is the outcome of one resolver step. When Done is false,
// Question is the next thing to say; Progress reports whether the utterance
// moved the sub-machine forward (a no-progress step counts as a strike).
type NameStepResult struct {
	Done     bool
	FullName string
	Question string
	Progress bool
}

// NameResolver is the nested state machine disambiguating first/last names
// for the name slot. It mutates the session's NameState and never touches
// any other slot.
type NameResolver struct {
	lex models.Lexicon
	ex  *extract.Extractor
}

func NewNameResolver(lex models.Lexicon, ex *extract.Extractor) *NameResolver {
	return &NameResolver{lex: lex, ex: ex}
}

// Step advances the resolver with one utterance. def supplies the original
// slot question, the confirm-back flag and its prompt template, and the
// ask-full-name option.
func (r *NameResolver) Step(st *models.NameState, def models.SlotDefinition, utterance string) NameStepResult {
	switch st.Stage {
	case models.NamePartialUnconfirmed:
		return r.stepUnconfirmed(st, def, utterance)
	case models.NameAwaitingMissing:
		return r.stepAwaitingMissing(st, def, utterance)
	case models.NameComplete:
		return NameStepResult{Done: true, FullName: r.fullName(st), Progress: true}
	default:
		return r.stepEmpty(st, def, utterance)
	}
}

func (r *NameResolver) stepEmpty(st *models.NameState, def models.SlotDefinition, utterance string) NameStepResult {
	candidate := r.ex.Name(utterance).Value
	if candidate == "" {
		candidate = r.ex.BareNameToken(utterance)
	}
	if candidate == "" {
		return NameStepResult{Question: def.Question}
	}

	// After a denial the original question was already re-asked once; the
	// fresh answer is accepted as given so the loop terminates.
	if st.DeniedOnce {
		r.complete(st, candidate)
		return NameStepResult{Done: true, FullName: candidate, Progress: true}
	}

	parts := strings.Fields(candidate)
	if len(parts) > 1 {
		r.complete(st, candidate)
		return NameStepResult{Done: true, FullName: candidate, Progress: true}
	}

	token := parts[0]
	if !def.AskFullName {
		r.complete(st, token)
		return NameStepResult{Done: true, FullName: token, Progress: true}
	}

	r.storeSingleToken(st, token)

	if def.ConfirmBack {
		st.Stage = models.NamePartialUnconfirmed
		return NameStepResult{Question: confirmPrompt(def, token), Progress: true}
	}

	// Full name wanted but no confirm-back: skip straight to the missing part.
	st.Confirmed = true
	st.Stage = models.NameAwaitingMissing
	st.AskedMissingPartOnce = true
	return NameStepResult{Question: r.missingPartQuestion(st), Progress: true}
}

func (r *NameResolver) stepUnconfirmed(st *models.NameState, def models.SlotDefinition, utterance string) NameStepResult {
	if isNegative(r.lex, utterance) {
		r.reset(st)
		return NameStepResult{Question: def.Question, Progress: true}
	}

	if isAffirmative(r.lex, utterance) {
		st.Confirmed = true
		if st.AskedMissingPartOnce {
			// Asked for the counterpart once already; settle for what we have.
			name := r.fullName(st)
			r.complete(st, name)
			return NameStepResult{Done: true, FullName: name, Progress: true}
		}
		st.Stage = models.NameAwaitingMissing
		st.AskedMissingPartOnce = true
		return NameStepResult{Question: r.missingPartQuestion(st), Progress: true}
	}

	// Neither yes nor no: a structurally valid replacement overrides the
	// stored token silently.
	candidate := r.ex.Name(utterance).Value
	if candidate == "" {
		candidate = r.ex.BareNameToken(utterance)
	}
	if candidate != "" {
		parts := strings.Fields(candidate)
		if len(parts) > 1 {
			r.complete(st, candidate)
			return NameStepResult{Done: true, FullName: candidate, Progress: true}
		}
		r.storeSingleToken(st, parts[0])
		return NameStepResult{Question: confirmPrompt(def, parts[0]), Progress: true}
	}

	return NameStepResult{Question: confirmPrompt(def, r.storedToken(st))}
}

func (r *NameResolver) stepAwaitingMissing(st *models.NameState, def models.SlotDefinition, utterance string) NameStepResult {
	if isNegative(r.lex, utterance) {
		r.reset(st)
		return NameStepResult{Question: def.Question, Progress: true}
	}

	counterpart := r.ex.BareNameToken(utterance)
	if counterpart == "" {
		if nc := r.ex.Name(utterance); nc.Value != "" {
			// A full name volunteered here replaces everything.
			if parts := strings.Fields(nc.Value); len(parts) > 1 {
				r.complete(st, nc.Value)
				return NameStepResult{Done: true, FullName: nc.Value, Progress: true}
			}
			counterpart = nc.Value
		}
	}
	if counterpart == "" {
		return NameStepResult{Question: r.missingPartQuestion(st)}
	}

	if st.AssumedSingleTokenAs == models.NamePartFirst {
		st.Last = counterpart
	} else {
		st.First = counterpart
	}
	name := r.fullName(st)
	r.complete(st, name)
	return NameStepResult{Done: true, FullName: name, Progress: true}
}

// storeSingleToken decides which half a lone token most likely is, using the
// configured common-first-names list.
func (r *NameResolver) storeSingleToken(st *models.NameState, token string) {
	if r.isCommonFirstName(token) {
		st.First = token
		st.Last = ""
		st.AssumedSingleTokenAs = models.NamePartFirst
	} else {
		st.Last = token
		st.First = ""
		st.AssumedSingleTokenAs = models.NamePartLast
	}
}

func (r *NameResolver) isCommonFirstName(token string) bool {
	t := strings.ToLower(token)
	for _, n := range r.lex.CommonFirstNames {
		if t == strings.ToLower(n) {
			return true
		}
	}
	return false
}

func (r *NameResolver) missingPartQuestion(st *models.NameState) string {
	if st.AssumedSingleTokenAs == models.NamePartFirst {
		return "And your last name?"
	}
	return "And your first name?"
}

func (r *NameResolver) storedToken(st *models.NameState) string {
	if st.First != "" {
		return st.First
	}
	return st.Last
}

func (r *NameResolver) fullName(st *models.NameState) string {
	switch {
	case st.First != "" && st.Last != "":
		return st.First + " " + st.Last
	case st.First != "":
		return st.First
	default:
		return st.Last
	}
}

func (r *NameResolver) complete(st *models.NameState, name string) {
	parts := strings.Fields(name)
	if len(parts) > 1 {
		st.First = parts[0]
		st.Last = strings.Join(parts[1:], " ")
	} else if st.First == "" && st.Last == "" {
		st.First = name
	}
	st.Confirmed = true
	st.Stage = models.NameComplete
}

func (r *NameResolver) reset(st *models.NameState) {
	*st = models.NameState{
		Stage:                models.NameEmpty,
		AssumedSingleTokenAs: models.NamePartNone,
		DeniedOnce:           true,
	}
}

func confirmPrompt(def models.SlotDefinition, value string) string {
	if def.ConfirmPromptTemplate != "" {
		return strings.ReplaceAll(def.ConfirmPromptTemplate, "{value}", value)
	}
	return "I heard " + value + ", did I get that right?"
}
