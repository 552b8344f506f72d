package types

import (
	"fmt"
)

// ContractError captures all errors a contract call can produce.
// Exactly one of the fields should be set.
type ContractError struct {
	GenericErr   *MsgErr      `json:"generic_err,omitempty"`
	NotFound     *NotFoundErr `json:"not_found,omitempty"`
	ParseErr     *ParseErr    `json:"parse_err,omitempty"`
	Unauthorized *struct{}    `json:"unauthorized,omitempty"`
}

var _ error = (*ContractError)(nil)

func (e *ContractError) Error() string {
	if e == nil {
		return "(nil)"
	}
	switch {
	case e.GenericErr != nil:
		return fmt.Sprintf("generic: %s", e.GenericErr.Msg)
	case e.NotFound != nil:
		return fmt.Sprintf("not_found: %s", e.NotFound.Kind)
	case e.ParseErr != nil:
		return fmt.Sprintf("parse: target %s: %s", e.ParseErr.Target, e.ParseErr.Msg)
	case e.Unauthorized != nil:
		return "unauthorized"
	default:
		return "unknown error variant"
	}
}

// ErrGeneric creates a ContractError with a free-form message.
func ErrGeneric(msg string) *ContractError {
	return &ContractError{GenericErr: &MsgErr{Msg: msg}}
}

// ErrNotFound creates a ContractError for a missing entity of the given kind.
func ErrNotFound(kind string) *ContractError {
	return &ContractError{NotFound: &NotFoundErr{Kind: kind}}
}

// ErrParse creates a ContractError for a message that failed to deserialize.
func ErrParse(target string, err error) *ContractError {
	return &ContractError{ParseErr: &ParseErr{Target: target, Msg: err.Error()}}
}

// ErrUnauthorized creates a ContractError for a caller lacking permission.
func ErrUnauthorized() *ContractError {
	return &ContractError{Unauthorized: &struct{}{}}
}

// IsUnauthorized reports whether err is a ContractError with the
// unauthorized variant set.
func IsUnauthorized(err error) bool {
	cerr, ok := err.(*ContractError)
	return ok && cerr != nil && cerr.Unauthorized != nil
}

type NotFoundErr struct {
	Kind string `json:"kind,omitempty"`
}

type ParseErr struct {
	Target string `json:"target,omitempty"`
	Msg    string `json:"msg,omitempty"`
}

// MsgErr is a generic type for errors that only have Msg field
type MsgErr struct {
	Msg string `json:"msg,omitempty"`
}
