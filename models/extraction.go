package models

// FieldCandidate is a single extracted value. ThisTurn distinguishes a value
// pulled out of the current utterance from one previously stored and
// validated.
type FieldCandidate struct {
	Value    string `json:"value"`
	ThisTurn bool   `json:"thisTurn"`
}

// ExtractionResult carries the per-field candidates for one utterance. A nil
// field means the extractor found nothing unambiguous.
type ExtractionResult struct {
	Name    *FieldCandidate `json:"name,omitempty"`
	Phone   *FieldCandidate `json:"phone,omitempty"`
	Address *FieldCandidate `json:"address,omitempty"`
	Time    *FieldCandidate `json:"time,omitempty"`
}

// Field returns the candidate matching a slot type, nil for text slots.
func (r ExtractionResult) Field(t SlotType) *FieldCandidate {
	switch t {
	case SlotTypeName:
		return r.Name
	case SlotTypePhone:
		return r.Phone
	case SlotTypeAddress:
		return r.Address
	case SlotTypeTime:
		return r.Time
	}
	return nil
}

// AnyThisTurn reports whether any field was extracted from this utterance.
func (r ExtractionResult) AnyThisTurn() bool {
	for _, c := range []*FieldCandidate{r.Name, r.Phone, r.Address, r.Time} {
		if c != nil && c.ThisTurn {
			return true
		}
	}
	return false
}
