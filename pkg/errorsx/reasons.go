package errorsx

// ReasonCode is a short machine-readable error reason. Turn outcomes carry
// the reason of whichever degraded path fired, so callers and tests can tell
// a classify failure from an empty completion.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonClassifyCall    ReasonCode = "classify_call"
	ReasonClassifyInvalid ReasonCode = "classify_invalid"

	ReasonCompleteCall    ReasonCode = "complete_call"
	ReasonEmptyCompletion ReasonCode = "empty_completion"
	ReasonCircuitOpen     ReasonCode = "circuit_open"
	ReasonRateLimit       ReasonCode = "rate_limit"

	ReasonStoreLoad  ReasonCode = "store_load"
	ReasonStoreSave  ReasonCode = "store_save"
	ReasonStoreClear ReasonCode = "store_clear"

	ReasonTurnPanic ReasonCode = "turn_panic"
)
