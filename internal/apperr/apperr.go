package apperr

import (
	"errors"
	"net/http"
)

// Error is a typed application error with a stable code and the HTTP status
// the handler layer should translate it to. Business code raises these;
// handlers never invent their own statuses for known failures.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

// Is matches on code so wrapped errors still compare with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	// ErrMissingFields is raised when a required field is blank or absent.
	ErrMissingFields = &Error{Code: "missing_fields", Message: "Missing fields", Status: http.StatusBadRequest}

	// ErrInvalidFields covers malformed values that are present but unusable.
	ErrInvalidFields = &Error{Code: "invalid_fields", Message: "Invalid fields", Status: http.StatusBadRequest}

	// ErrEmailExists and ErrLoginExists signal uniqueness violations on user
	// natural keys, for both create and update paths.
	ErrEmailExists = &Error{Code: "email_exists", Message: "Email already exists", Status: http.StatusConflict}
	ErrLoginExists = &Error{Code: "login_exists", Message: "Login already exists", Status: http.StatusConflict}

	// ErrLicensePlateConflict is raised when a car update references a plate
	// registered to another user. The system this API descends from collapsed
	// this case into "Missing fields"; it is kept as a distinct conflict kind
	// here so callers can tell the two apart.
	ErrLicensePlateConflict = &Error{Code: "license_plate_conflict", Message: "License plate already exists", Status: http.StatusConflict}

	// ErrInvalidLoginOrPassword is returned on failed sign-in attempts.
	ErrInvalidLoginOrPassword = &Error{Code: "invalid_login_or_password", Message: "Invalid login or password", Status: http.StatusBadRequest}

	// ErrUnauthorized is returned when an operation needs a resolved identity
	// and the request carries none.
	ErrUnauthorized = &Error{Code: "unauthorized", Message: "Unauthorized", Status: http.StatusUnauthorized}

	// ErrNotFound is returned when a required lookup matched nothing.
	ErrNotFound = &Error{Code: "not_found", Message: "Resource not found", Status: http.StatusNotFound}

	// ErrTokenCreation signals a signing failure. This is a configuration
	// fault, not a user error.
	ErrTokenCreation = &Error{Code: "token_creation", Message: "Error while generating token", Status: http.StatusInternalServerError}

	// ErrInvalidPhoto signals a failed photo write.
	ErrInvalidPhoto = &Error{Code: "invalid_photo", Message: "Failed to upload photo", Status: http.StatusBadRequest}
)

// StatusOf returns the HTTP status for err, or 500 for unknown errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the stable caller-facing message for err, or a generic
// one for unknown errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
