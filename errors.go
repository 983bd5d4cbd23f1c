package gdao

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a structural validation failure.
// It implements error so callers can match with errors.Is.
type ErrorKind int

const (
	ErrLeadingOr ErrorKind = iota + 1
	ErrEmptyGroup
	ErrNonTextColumn
	ErrUnknownOperator
	ErrInvalidValueForOperator
	ErrValueWithoutColOrOp
	ErrColOrOpWithoutRequiredPeer
	ErrForbiddenExtraKey
	ErrKeyOutOfRange
	ErrMaxDepthExceeded
	ErrInvalidGroupEntry
	ErrUnknownColumn
)

var kindMessages = map[ErrorKind]string{
	ErrLeadingOr:                  "first entry of a group cannot join with OR",
	ErrEmptyGroup:                 "group has no entries",
	ErrNonTextColumn:              "column must be non-empty text",
	ErrUnknownOperator:            "unknown operator",
	ErrInvalidValueForOperator:    "value is not valid for operator",
	ErrValueWithoutColOrOp:        "value given without column or operator",
	ErrColOrOpWithoutRequiredPeer: "column or operator given without its required peer",
	ErrForbiddenExtraKey:          "leaf keys mixed with group keys",
	ErrKeyOutOfRange:              "key is not recognized",
	ErrMaxDepthExceeded:           "maximum nesting depth exceeded",
	ErrInvalidGroupEntry:          "group entry must be a nested description",
	ErrUnknownColumn:              "column not found in schema",
}

func (k ErrorKind) Error() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("validation error %d", int(k))
}

// ValidationError reports the first violation found in a description.
type ValidationError struct {
	Value  string   // textual form of the offending value, if any
	Detail string   // extra context, e.g. the operator's accepted shape
	Path   []string // keys from the root to the offending entry
	Kind   ErrorKind
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.PathString())
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Value != "" {
		b.WriteString(" (got ")
		b.WriteString(e.Value)
		b.WriteString(")")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap exposes the kind to errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// PathString renders the key path as [k1][k2]...
func (e *ValidationError) PathString() string {
	if len(e.Path) == 0 {
		return "(root)"
	}
	var b strings.Builder
	for _, key := range e.Path {
		b.WriteByte('[')
		b.WriteString(key)
		b.WriteByte(']')
	}
	return b.String()
}

func newValidationError(kind ErrorKind, path []string, value, detail string) *ValidationError {
	p := make([]string, len(path))
	copy(p, path)
	return &ValidationError{Kind: kind, Path: p, Value: value, Detail: detail}
}
