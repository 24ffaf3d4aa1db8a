package engine

// Rule violations are expected outcomes, not faults: every validating
// operation returns a *RuleError with a stable code and a human-readable
// message instead of panicking or half-mutating.
const (
	CodeNoPieces        = "NO_PIECES"
	CodeInvalidHex      = "INVALID_HEX"
	CodeHexOccupied     = "HEX_OCCUPIED"
	CodeInvalidTerrain  = "INVALID_TERRAIN"
	CodeAdjacentToCity  = "ADJACENT_TO_CITY"
	CodeInvalidMove     = "INVALID_MOVE"
	CodeNoResources     = "INSUFFICIENT_RESOURCES"
	CodeNotBorder       = "NOT_BORDER_HEX"
	CodeMaxTitle        = "MAX_TITLE"
	CodeInvalidArgument = "INVALID_ARGUMENT"
)

type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string { return e.Message }

func ruleErr(code, msg string) *RuleError { return &RuleError{Code: code, Message: msg} }
