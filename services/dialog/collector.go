package dialog

import (
	"sort"
	"strings"

	"frontdesk/models"
	"frontdesk/services/extract"
)

// StepAction labels what the collector decided to do with a turn.
type StepAction string

const (
	ActionAsk      StepAction = "ask"
	ActionConfirm  StepAction = "confirm"
	ActionClarify  StepAction = "clarify"
	ActionEscalate StepAction = "escalate"
	ActionAdvance  StepAction = "advance"
	ActionFinalize StepAction = "finalize"
)

// Strike levels derived from askCounts.
const (
	StrikeClarify  = "clarify"
	StrikeEscalate = "escalate"
)

// StepResult is the collector's verdict for one turn.
type StepResult struct {
	Reply           string
	Action          StepAction
	ReadyToFinalize bool
	StrikeLevel     string
	ActiveSlotID    string
}

// Collector walks the ordered required slots, merging extracted values,
// driving confirm-back loops and the strike ladder. It owns all slot mutation
// on the session; the orchestrator wraps it with logging and telemetry.
type Collector struct {
	lex   models.Lexicon
	ex    *extract.Extractor
	names *NameResolver
}

func NewCollector(lex models.Lexicon, ex *extract.Extractor) *Collector {
	return &Collector{lex: lex, ex: ex, names: NewNameResolver(lex, ex)}
}

// Step processes one utterance against the slot plan. slots are sorted by
// Order before walking.
func (c *Collector) Step(sess *models.Session, slots []models.SlotDefinition, utterance string, exr models.ExtractionResult) StepResult {
	ordered := make([]models.SlotDefinition, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	next := c.activeSlot(sess, ordered)
	c.mergeExtractions(sess, ordered, exr, next)

	active := c.activeSlot(sess, ordered)
	if active == nil {
		sess.ActiveSlotID = ""
		sess.PendingQuestion = ""
		return StepResult{Action: ActionFinalize, ReadyToFinalize: true}
	}

	if active.Type == models.SlotTypeName {
		return c.stepName(sess, ordered, *active, utterance)
	}

	meta := sess.SlotMeta[active.SlotID]
	if meta.PendingConfirm {
		return c.stepPendingConfirm(sess, ordered, *active, utterance, exr)
	}

	value := c.valueFor(*active, utterance, exr)
	if value == "" {
		return c.reask(sess, *active, active.Question)
	}

	if active.ConfirmBack && !meta.DeniedOnce {
		sess.CollectedSlots[active.SlotID] = value
		sess.SlotMeta[active.SlotID] = models.SlotMeta{PendingConfirm: true}
		question := confirmPrompt(*active, value)
		sess.ActiveSlotID = active.SlotID
		sess.PendingQuestion = question
		return StepResult{Reply: question, Action: ActionConfirm, ActiveSlotID: active.SlotID}
	}

	// A fresh answer after a denial is accepted unconditionally.
	c.accept(sess, active.SlotID, value)
	return c.advance(sess, ordered)
}

// mergeExtractions folds this turn's candidates into slots other than the one
// being asked about; the active-slot path in Step owns that one so its
// confirm-back question is never skipped. A confirmed value is never silently
// overwritten; only an explicit name statement corrects an accepted name.
func (c *Collector) mergeExtractions(sess *models.Session, ordered []models.SlotDefinition, exr models.ExtractionResult, next *models.SlotDefinition) {
	for _, def := range ordered {
		if def.Type == models.SlotTypeName || def.Type == models.SlotTypeText {
			continue
		}
		if next != nil && def.SlotID == next.SlotID {
			continue
		}
		cand := exr.Field(def.Type)
		if cand == nil || !cand.ThisTurn || cand.Value == "" {
			continue
		}
		if _, exists := sess.CollectedSlots[def.SlotID]; exists {
			continue
		}
		sess.CollectedSlots[def.SlotID] = cand.Value
		if def.ConfirmBack {
			sess.SlotMeta[def.SlotID] = models.SlotMeta{PendingConfirm: true}
		} else {
			sess.SlotMeta[def.SlotID] = models.SlotMeta{Confirmed: true}
		}
	}

	// A name volunteered while another slot is up fills an empty name slot;
	// the name resolver owns it whenever the name slot is the one being asked.
	if exr.Name != nil && exr.Name.ThisTurn && exr.Name.Value != "" {
		for _, def := range ordered {
			if def.Type != models.SlotTypeName {
				continue
			}
			if next != nil && def.SlotID == next.SlotID {
				break
			}
			if _, exists := sess.CollectedSlots[def.SlotID]; exists {
				break
			}
			parts := strings.Fields(exr.Name.Value)
			if len(parts) < 2 {
				break // a lone token waits for the resolver's disambiguation
			}
			sess.CollectedSlots[def.SlotID] = exr.Name.Value
			sess.SlotMeta[def.SlotID] = models.SlotMeta{Confirmed: true}
			sess.NameState = models.NameState{
				Stage:     models.NameComplete,
				First:     parts[0],
				Last:      strings.Join(parts[1:], " "),
				Confirmed: true,
			}
			break
		}
	}
}

func (c *Collector) activeSlot(sess *models.Session, ordered []models.SlotDefinition) *models.SlotDefinition {
	if sess.ActiveSlotID != "" {
		for i, def := range ordered {
			if def.SlotID == sess.ActiveSlotID && !sess.SlotCollected(def.SlotID) {
				return &ordered[i]
			}
		}
	}
	for i, def := range ordered {
		if def.Required && !sess.SlotCollected(def.SlotID) {
			return &ordered[i]
		}
	}
	return nil
}

func (c *Collector) stepName(sess *models.Session, ordered []models.SlotDefinition, def models.SlotDefinition, utterance string) StepResult {
	res := c.names.Step(&sess.NameState, def, utterance)
	if res.Done {
		c.accept(sess, def.SlotID, res.FullName)
		return c.advance(sess, ordered)
	}
	if !res.Progress {
		return c.reask(sess, def, res.Question)
	}
	sess.ActiveSlotID = def.SlotID
	sess.PendingQuestion = res.Question
	return StepResult{Reply: res.Question, Action: ActionConfirm, ActiveSlotID: def.SlotID}
}

// stepPendingConfirm interprets an utterance while a confirm-back is open:
// affirmative advances, negative clears and re-asks, and a structurally valid
// replacement value is accepted silently.
func (c *Collector) stepPendingConfirm(sess *models.Session, ordered []models.SlotDefinition, def models.SlotDefinition, utterance string, exr models.ExtractionResult) StepResult {
	meta := sess.SlotMeta[def.SlotID]

	if isAffirmative(c.lex, utterance) {
		meta.PendingConfirm = false
		meta.Confirmed = true
		sess.SlotMeta[def.SlotID] = meta
		return c.advance(sess, ordered)
	}

	if isNegative(c.lex, utterance) {
		delete(sess.CollectedSlots, def.SlotID)
		sess.SlotMeta[def.SlotID] = models.SlotMeta{DeniedOnce: true}
		return c.reask(sess, def, def.Question)
	}

	if cand := exr.Field(def.Type); cand != nil && cand.ThisTurn && cand.Value != "" {
		c.accept(sess, def.SlotID, cand.Value)
		return c.advance(sess, ordered)
	}

	question := confirmPrompt(def, sess.CollectedSlots[def.SlotID])
	return c.reask(sess, def, question)
}

func (c *Collector) valueFor(def models.SlotDefinition, utterance string, exr models.ExtractionResult) string {
	if def.Type == models.SlotTypeText {
		return strings.TrimSpace(utterance)
	}
	if cand := exr.Field(def.Type); cand != nil && cand.ThisTurn {
		return cand.Value
	}
	return ""
}

func (c *Collector) accept(sess *models.Session, slotID, value string) {
	sess.CollectedSlots[slotID] = value
	sess.SlotMeta[slotID] = models.SlotMeta{Confirmed: true}
}

// advance moves to the next unfilled required slot, or signals completion.
func (c *Collector) advance(sess *models.Session, ordered []models.SlotDefinition) StepResult {
	for _, def := range ordered {
		if !def.Required || sess.SlotCollected(def.SlotID) {
			continue
		}
		if def.ConfirmBack && sess.SlotMeta[def.SlotID].PendingConfirm {
			// A merged value waits for its confirm-back.
			question := confirmPrompt(def, sess.CollectedSlots[def.SlotID])
			sess.ActiveSlotID = def.SlotID
			sess.PendingQuestion = question
			return StepResult{Reply: question, Action: ActionConfirm, ActiveSlotID: def.SlotID}
		}
		sess.ActiveSlotID = def.SlotID
		sess.AskCounts[def.SlotID]++
		return c.ladder(sess, def, def.Question, ActionAdvance)
	}
	sess.ActiveSlotID = ""
	sess.PendingQuestion = ""
	return StepResult{Action: ActionFinalize, ReadyToFinalize: true}
}

// reask repeats a question for the active slot, climbing the strike ladder.
func (c *Collector) reask(sess *models.Session, def models.SlotDefinition, question string) StepResult {
	sess.ActiveSlotID = def.SlotID
	sess.AskCounts[def.SlotID]++
	return c.ladder(sess, def, question, ActionAsk)
}

// ladder maps the slot's ask count onto ASK, CLARIFY or ESCALATE.
func (c *Collector) ladder(sess *models.Session, def models.SlotDefinition, question string, normal StepAction) StepResult {
	count := sess.AskCounts[def.SlotID]
	switch {
	case count >= 3:
		sess.PendingQuestion = ""
		return StepResult{
			Reply:        "I'm having trouble getting that, so let me have a team member follow up with you directly.",
			Action:       ActionEscalate,
			StrikeLevel:  StrikeEscalate,
			ActiveSlotID: def.SlotID,
		}
	case count == 2:
		reply := "Sorry, let me try that again. " + question
		sess.PendingQuestion = question
		return StepResult{Reply: reply, Action: ActionClarify, StrikeLevel: StrikeClarify, ActiveSlotID: def.SlotID}
	default:
		sess.PendingQuestion = question
		return StepResult{Reply: question, Action: normal, ActiveSlotID: def.SlotID}
	}
}
