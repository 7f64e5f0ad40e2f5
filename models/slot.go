package models

// SlotType drives which extractor feeds a slot.
type SlotType string

const (
	SlotTypeName    SlotType = "name"
	SlotTypePhone   SlotType = "phone"
	SlotTypeAddress SlotType = "address"
	SlotTypeTime    SlotType = "time"
	SlotTypeText    SlotType = "text"
)

// SlotDefinition describes one piece of intake information. Immutable per
// tenant; resolved once per turn.
type SlotDefinition struct {
	SlotID   string   `bson:"slotId" json:"slotId"`
	Question string   `bson:"question" json:"question"`
	Required bool     `bson:"required" json:"required"`
	Order    int      `bson:"order" json:"order"`
	Type     SlotType `bson:"type" json:"type"`

	ConfirmBack bool `bson:"confirmBack" json:"confirmBack"`
	// ConfirmPromptTemplate contains a {value} placeholder, e.g.
	// "I have {value}, is that right?".
	ConfirmPromptTemplate string `bson:"confirmPromptTemplate,omitempty" json:"confirmPromptTemplate,omitempty"`

	// AskFullName applies to name slots: when set, a single-token answer
	// triggers the first/last disambiguation sub-flow.
	AskFullName bool `bson:"askFullName,omitempty" json:"askFullName,omitempty"`
}

// LegacySlot is the older tenant config shape still found on existing tenant
// documents. It carries no type information; the resolver infers it.
type LegacySlot struct {
	Key      string `bson:"key" json:"key"`
	Prompt   string `bson:"prompt" json:"prompt"`
	Optional bool   `bson:"optional" json:"optional"`
}

// ConfigSource labels where a resolved slot configuration came from.
type ConfigSource string

const (
	SourceCurrent       ConfigSource = "current"
	SourceLegacy        ConfigSource = "legacy"
	SourceLegacyPrompts ConfigSource = "legacy-prompts"
	SourceNone          ConfigSource = "none"
)
