package models

import "time"

// Mode is the top-level session mode. Transitions are monotonic forward
// (DISCOVERY -> BOOKING -> COMPLETE) except an explicit new-booking reset.
type Mode string

const (
	ModeDiscovery Mode = "DISCOVERY"
	ModeBooking   Mode = "BOOKING"
	ModeComplete  Mode = "COMPLETE"
)

// Consent records the caller's explicit agreement to enter the booking flow.
// Once Given is true it stays true for the life of the session.
type Consent struct {
	Given     bool      `json:"given"`
	Phrase    string    `json:"phrase,omitempty"`
	Turn      int       `json:"turn,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// NameStage is the nested name-resolution state for the name slot.
type NameStage string

const (
	NameEmpty              NameStage = "EMPTY"
	NamePartialUnconfirmed NameStage = "PARTIAL_UNCONFIRMED"
	NameAwaitingMissing    NameStage = "PARTIAL_CONFIRMED_AWAITING_MISSING"
	NameComplete           NameStage = "COMPLETE"
)

// NamePart identifies which half of a name a single token was assumed to be.
type NamePart string

const (
	NamePartFirst NamePart = "first"
	NamePartLast  NamePart = "last"
	NamePartNone  NamePart = "none"
)

// NameState tracks first/last-name disambiguation for the name slot.
type NameState struct {
	Stage                NameStage `json:"stage"`
	First                string    `json:"first,omitempty"`
	Last                 string    `json:"last,omitempty"`
	Confirmed            bool      `json:"confirmed"`
	AskedMissingPartOnce bool      `json:"askedMissingPartOnce"`
	AssumedSingleTokenAs NamePart  `json:"assumedSingleTokenAs"`
	// DeniedOnce marks that a confirm-back was already denied once; the next
	// answer is accepted without another denial check so the loop terminates.
	DeniedOnce bool `json:"deniedOnce"`
}

// SlotMeta is the per-slot confirmation sub-state. A slot counts as collected
// only when a value exists and PendingConfirm is false.
type SlotMeta struct {
	PendingConfirm bool `json:"pendingConfirm"`
	Confirmed      bool `json:"confirmed"`
	DeniedOnce     bool `json:"deniedOnce"`
}

// Session is the per-conversation dialogue state, checked out for the
// duration of a turn and written back atomically by the orchestrator.
type Session struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
	Channel  string `json:"channel"`

	Mode           Mode                `json:"mode"`
	CollectedSlots map[string]string   `json:"collectedSlots"`
	SlotMeta       map[string]SlotMeta `json:"slotMeta"`
	// AskCounts are monotonic non-decreasing and never reset within a session.
	AskCounts map[string]int `json:"askCounts"`
	Consent   Consent        `json:"consent"`

	ActiveSlotID string `json:"activeSlotId,omitempty"`
	// PendingQuestion is the exact slot question awaiting an answer; interrupts
	// repeat it verbatim after their answer.
	PendingQuestion string    `json:"pendingQuestion,omitempty"`
	NameState       NameState `json:"nameState"`

	// OfferedScheduling marks that the previous reply offered to schedule,
	// which lets a bare affirmative count as consent on the next turn.
	OfferedScheduling bool   `json:"offeredScheduling"`
	DiscoverySummary  string `json:"discoverySummary,omitempty"`

	// FinalizePending is set when all slots are collected but the booking
	// record has not been persisted yet (e.g. after a store failure).
	FinalizePending bool       `json:"finalizePending"`
	CaseID          string     `json:"caseId,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`

	Turn      int       `json:"turn"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession returns a session in DISCOVERY with all maps allocated.
func NewSession(id, tenantID, channel string) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		TenantID:       tenantID,
		Channel:        channel,
		Mode:           ModeDiscovery,
		CollectedSlots: make(map[string]string),
		SlotMeta:       make(map[string]SlotMeta),
		AskCounts:      make(map[string]int),
		NameState:      NameState{Stage: NameEmpty, AssumedSingleTokenAs: NamePartNone},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SlotCollected reports whether a slot holds a value that is not pending
// confirmation.
func (s *Session) SlotCollected(slotID string) bool {
	v, ok := s.CollectedSlots[slotID]
	if !ok || v == "" {
		return false
	}
	return !s.SlotMeta[slotID].PendingConfirm
}
