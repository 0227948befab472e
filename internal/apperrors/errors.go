package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates a write was attempted with a stale version token.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrAccountUnavailable indicates the external account lookup did not yield
// an account. Absence and transport failure are deliberately conflated; the
// caller cannot tell "account does not exist" from "account service down".
var ErrAccountUnavailable = errors.New("account unavailable")
