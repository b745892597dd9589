package errors

import (
	"encoding/json"
	"fmt"
)

type errorBody struct {
	Error string `json:"error"`
}

// DuplicateEmailErr is raised when contact email is already taken
type DuplicateEmailErr struct {
	email string
}

// NewDuplicateEmailErr builds DuplicateEmailErr
func NewDuplicateEmailErr(email string) *DuplicateEmailErr {
	return &DuplicateEmailErr{email: email}
}

func (e *DuplicateEmailErr) Error() string {
	return "This email already exists."
}

// Email returns conflicting email
func (e *DuplicateEmailErr) Email() string {
	return e.email
}

// MarshalJSON implements json.Marshaler
func (e *DuplicateEmailErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&errorBody{Error: e.Error()})
}

// EntryNotFoundErr is raised when requested entry doesn't exist
type EntryNotFoundErr struct {
	message string
}

// NewEntryNotFoundErr builds EntryNotFoundErr
func NewEntryNotFoundErr(msg string) *EntryNotFoundErr {
	return &EntryNotFoundErr{message: msg}
}

func (e *EntryNotFoundErr) Error() string {
	return e.message
}

// MarshalJSON implements json.Marshaler
func (e *EntryNotFoundErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&errorBody{Error: e.message})
}

// StoreUnavailableErr is raised when storage failed to serve request.
// Message is safe to expose, cause is not.
type StoreUnavailableErr struct {
	message string
	cause   error
}

// NewStoreUnavailableErr builds StoreUnavailableErr
func NewStoreUnavailableErr(msg string, cause error) *StoreUnavailableErr {
	return &StoreUnavailableErr{message: msg, cause: cause}
}

func (e *StoreUnavailableErr) Error() string {
	if e.cause == nil {
		return e.message
	}
	return fmt.Sprintf("%s - %v", e.message, e.cause)
}

// Message returns public error message
func (e *StoreUnavailableErr) Message() string {
	return e.message
}

func (e *StoreUnavailableErr) Unwrap() error {
	return e.cause
}

// MarshalJSON implements json.Marshaler
func (e *StoreUnavailableErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&errorBody{Error: e.message})
}
