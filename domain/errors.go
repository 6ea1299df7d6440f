package domain

import "errors"

// Local validation errors, raised before any network call
var (
	ErrInvalidPhoneNumber = errors.New("please enter a valid phone number")
	ErrIncompleteOTP      = errors.New("please enter the complete 4-digit OTP")
	ErrEmptyName          = errors.New("please enter your name")
	ErrEmptyReason        = errors.New("please provide a reason for rejection")
)

// Auth flow errors
var (
	ErrInvalidTransition = errors.New("invalid flow transition")
	ErrFlowClosed        = errors.New("flow has been closed")
	ErrResendNotReady    = errors.New("resend is not available until the countdown expires")
	ErrRequestInFlight   = errors.New("a request is already in flight")
)

// Session errors
var (
	ErrNotAuthenticated = errors.New("no session found, please log in")
)

// Review errors
var (
	ErrVerificationNotFound = errors.New("verification not found in pending list")
)
