package apperrors

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")

	ErrInvalidState     = errors.New("payment not confirmed")
	ErrAlreadyCheckedIn = errors.New("ticket already checked in")
	ErrSignatureInvalid = errors.New("payment signature invalid")
	ErrPaymentProvider  = errors.New("payment provider error")

	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
