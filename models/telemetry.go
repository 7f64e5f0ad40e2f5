package models

import "time"

// TurnRecord is the compact per-turn telemetry row archived by the background
// worker. Writes are best-effort and never affect the turn reply.
type TurnRecord struct {
	TenantID  string `bson:"tenantId" json:"tenantId"`
	SessionID string `bson:"sessionId" json:"sessionId"`
	Turn      int    `bson:"turn" json:"turn"`
	Channel   string `bson:"channel" json:"channel"`

	ModeBefore Mode   `bson:"modeBefore" json:"modeBefore"`
	ModeAfter  Mode   `bson:"modeAfter" json:"modeAfter"`
	Action     string `bson:"action" json:"action"`

	ActiveSlotID string `bson:"activeSlotId,omitempty" json:"activeSlotId,omitempty"`
	StrikeLevel  string `bson:"strikeLevel,omitempty" json:"strikeLevel,omitempty"`
	Interrupt    bool   `bson:"interrupt" json:"interrupt"`

	UsedOracle   bool `bson:"usedOracle" json:"usedOracle"`
	OracleTokens int  `bson:"oracleTokens,omitempty" json:"oracleTokens,omitempty"`

	// Message holds caller free text captured in degraded take-a-message mode.
	Message string `bson:"message,omitempty" json:"message,omitempty"`

	TookMS    int64     `bson:"tookMs" json:"tookMs"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
