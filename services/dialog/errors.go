package dialog

import "fmt"

// TurnError carries the error taxonomy for a turn. Code is stable and
// machine-readable; Message is operator-facing.
type TurnError struct {
	Code    string
	Message string
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	// CodeConfigurationMissing: no slots configured for the tenant; BOOKING
	// mode is refused and the caller gets the take-a-message reply.
	CodeConfigurationMissing = "configurationMissing"
	// CodePersistenceFailure: a booking or session write failed. Non-fatal to
	// the turn reply, but mode must not advance to COMPLETE on it.
	CodePersistenceFailure = "persistenceFailure"
	// CodeOracleFailure: the generative oracle errored or timed out; callers
	// get the fixed apology reply instead.
	CodeOracleFailure = "oracleFailure"
	// CodeUnknownTenant surfaces as a request-level failure.
	CodeUnknownTenant = "unknownTenant"
	// CodeMalformedSession surfaces as a request-level failure.
	CodeMalformedSession = "malformedSession"
)

func NewTurnError(code, message string) *TurnError {
	return &TurnError{Code: code, Message: message}
}
