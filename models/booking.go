package models

import "time"

// BookingRecord is the persisted outcome of a completed intake.
type BookingRecord struct {
	ID        string `bson:"id" json:"id"`
	CaseID    string `bson:"caseId" json:"caseId"`
	TenantID  string `bson:"tenantId" json:"tenantId"`
	SessionID string `bson:"sessionId" json:"sessionId"`
	Channel   string `bson:"channel" json:"channel"`

	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	// TimeWindow is the caller's stated preference ("tomorrow", "3 pm", ...).
	TimeWindow string `bson:"timeWindow" json:"timeWindow"`
	ASAP       bool   `bson:"asap" json:"asap"`

	Outcome OutcomeMode `bson:"outcome" json:"outcome"`
	// Extra carries non-core slots collected beyond the standard four.
	Extra map[string]string `bson:"extra,omitempty" json:"extra,omitempty"`

	DiscoverySummary string    `bson:"discoverySummary,omitempty" json:"discoverySummary,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}
