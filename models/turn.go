package models

// TurnRequest is one inbound utterance from a channel adapter.
type TurnRequest struct {
	SessionID      string `json:"sessionId,omitempty"`
	Channel        string `json:"channel"` // voice, sms, chat
	Text           string `json:"text"`
	CallerIdentity string `json:"callerIdentity,omitempty"`
}

// TurnResponse is the single reply for a turn.
type TurnResponse struct {
	Reply          string            `json:"reply"`
	SessionID      string            `json:"sessionId"`
	Mode           Mode              `json:"mode"`
	SlotsCollected map[string]string `json:"slotsCollected"`
	ConsentGiven   bool              `json:"consentGiven"`
	DebugTrace     *DebugTrace       `json:"debugTrace,omitempty"`
}

// DebugTrace exposes per-turn routing decisions when the adapter asks for it.
type DebugTrace struct {
	ConfigSource ConfigSource `json:"configSource"`
	Action       string       `json:"action"`
	ActiveSlotID string       `json:"activeSlotId,omitempty"`
	StrikeLevel  string       `json:"strikeLevel,omitempty"`
	Interrupt    bool         `json:"interrupt"`
	UsedOracle   bool         `json:"usedOracle"`
	OracleTokens int          `json:"oracleTokens,omitempty"`
	Notes        []string     `json:"notes,omitempty"`
}
