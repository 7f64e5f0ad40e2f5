package models

// Lexicon holds the tenant-scoped word lists consumed by the extractor and
// classifiers. Empty lists fall back to the shipped defaults at resolve time;
// nothing in the classifiers is compiled in.
type Lexicon struct {
	// Consent classification.
	ConsentPhrases   []string `bson:"consentPhrases,omitempty" json:"consentPhrases,omitempty"`
	AffirmativeWords []string `bson:"affirmativeWords,omitempty" json:"affirmativeWords,omitempty"`
	NegationWords    []string `bson:"negationWords,omitempty" json:"negationWords,omitempty"`
	UrgencyPhrases   []string `bson:"urgencyPhrases,omitempty" json:"urgencyPhrases,omitempty"`

	// Name extraction deny-list categories.
	Greetings      []string `bson:"greetings,omitempty" json:"greetings,omitempty"`
	DomainNouns    []string `bson:"domainNouns,omitempty" json:"domainNouns,omitempty"`
	AuxiliaryVerbs []string `bson:"auxiliaryVerbs,omitempty" json:"auxiliaryVerbs,omitempty"`

	// Address extraction.
	StreetTypes      []string `bson:"streetTypes,omitempty" json:"streetTypes,omitempty"`
	ComplaintPhrases []string `bson:"complaintPhrases,omitempty" json:"complaintPhrases,omitempty"`

	// Phone extraction.
	FillerWords []string `bson:"fillerWords,omitempty" json:"fillerWords,omitempty"`

	// Time extraction.
	TimeOfDayWords   []string `bson:"timeOfDayWords,omitempty" json:"timeOfDayWords,omitempty"`
	RelativeDayWords []string `bson:"relativeDayWords,omitempty" json:"relativeDayWords,omitempty"`
	WeekdayNames     []string `bson:"weekdayNames,omitempty" json:"weekdayNames,omitempty"`
	TimePrepositions []string `bson:"timePrepositions,omitempty" json:"timePrepositions,omitempty"`

	// Interrupt classification.
	Interrogatives    []string `bson:"interrogatives,omitempty" json:"interrogatives,omitempty"`
	InterruptKeywords []string `bson:"interruptKeywords,omitempty" json:"interruptKeywords,omitempty"`

	// Name disambiguation.
	CommonFirstNames []string `bson:"commonFirstNames,omitempty" json:"commonFirstNames,omitempty"`

	// Mode control.
	NewBookingKeywords []string `bson:"newBookingKeywords,omitempty" json:"newBookingKeywords,omitempty"`
}

// OutcomeMode is the tenant-configured disposition for a finalized booking.
type OutcomeMode string

const (
	OutcomeConfirmedOnCall  OutcomeMode = "confirmed_on_call"
	OutcomePendingDispatch  OutcomeMode = "pending_dispatch"
	OutcomeCallbackRequired OutcomeMode = "callback_required"
	OutcomeTransfer         OutcomeMode = "transfer"
	OutcomeAfterHours       OutcomeMode = "after_hours"
)

// Tenant is a configured business account.
type Tenant struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`

	// ConsentRequired overrides the global killswitch when set.
	ConsentRequired *bool `bson:"consentRequired,omitempty" json:"consentRequired,omitempty"`

	OutcomeMode OutcomeMode `bson:"outcomeMode" json:"outcomeMode"`

	// KnowledgeMinScore is the minimum snippet score trusted over the
	// generative fallback; zero means use the server default.
	KnowledgeMinScore float64 `bson:"knowledgeMinScore,omitempty" json:"knowledgeMinScore,omitempty"`

	// FinalScriptTemplate supports {name}, {phone}, {address}, {time} and
	// {caseId} placeholders. Empty means the built-in script.
	FinalScriptTemplate string `bson:"finalScriptTemplate,omitempty" json:"finalScriptTemplate,omitempty"`

	DispatcherFCMToken string `bson:"dispatcherFcmToken,omitempty" json:"-"`
	AdminKeyHash       string `bson:"adminKeyHash,omitempty" json:"-"`

	Lexicon Lexicon `bson:"lexicon,omitempty" json:"lexicon,omitempty"`

	// Slot configuration sources, in resolution precedence order.
	SlotConfig       []SlotDefinition  `bson:"slotConfig,omitempty" json:"slotConfig,omitempty"`
	LegacySlotConfig []LegacySlot      `bson:"legacySlotConfig,omitempty" json:"legacySlotConfig,omitempty"`
	LegacyPrompts    map[string]string `bson:"legacyPrompts,omitempty" json:"legacyPrompts,omitempty"`
}
