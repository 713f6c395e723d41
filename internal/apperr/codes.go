// Package apperr provides coded errors shared by the decoder, the optimistic
// synthesizer and the API layer.
package apperr

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that carries no code.
	CodeUnknown Code = "UNKNOWN"

	// Classification
	CodeUnrecognizedEvent Code = "UNRECOGNIZED_EVENT"
	CodeSessionMismatch   Code = "SESSION_MISMATCH"
	CodeUnknownEventKind  Code = "UNKNOWN_EVENT_KIND"

	// Wire decoding
	CodeCursorUnderflow  Code = "CURSOR_UNDERFLOW"
	CodeTrailingValues   Code = "TRAILING_VALUES"
	CodeInvalidScalar    Code = "INVALID_SCALAR"
	CodeUnknownEnumIndex Code = "UNKNOWN_ENUM_INDEX"
	CodeUnknownComponent Code = "UNKNOWN_COMPONENT"
	CodeSchemaBinding    Code = "SCHEMA_BINDING"

	// Feed / storage
	CodeNotFound          Code = "NOT_FOUND"
	CodePredictionPending Code = "PREDICTION_PENDING"
)

// Skippable reports whether an error with this code means "not applicable"
// rather than a failure.
func (c Code) Skippable() bool {
	return c == CodeUnrecognizedEvent
}
