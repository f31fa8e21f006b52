package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure (storage, processing).
var ErrInternal = errors.New("internal error")

// Business-rule errors. These map to 400-level responses: the request was
// well-formed but violates a ledger or inventory rule.
var (
	// ErrInsufficientStock is returned when a forward stock issue would drive
	// stock below zero. Reversal paths bypass this check.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInsufficientBalance is returned when a debit would make an account
	// balance negative and the caller did not explicitly allow it.
	ErrInsufficientBalance = errors.New("insufficient account balance")

	// ErrExceedsDue is returned when a due payment exceeds the outstanding due.
	ErrExceedsDue = errors.New("payment exceeds due amount")

	// ErrAmbiguousAccount is returned when a legacy payment-type string
	// matches more than one account. Callers must use an explicit account ID.
	ErrAmbiguousAccount = errors.New("ambiguous account reference")
)
