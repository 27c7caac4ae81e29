package httperr

import (
	"errors"
	"net/http"
)

// ===============================
// Business error codes
// ===============================

const (
	CodeNotAuthorized          = "not_authorized"
	CodeForbidden              = "forbidden"
	CodeInvalidStateTransition = "invalid_state_transition"
	CodeNotFound               = "not_found"
	CodeAppointmentNotFound    = "appointment_not_found"
	CodeOfferingNotFound       = "offering_not_found"
	CodeRescheduleDateNotFound = "reschedule_date_not_found"
	CodeRecoveryAmbiguous      = "recovery_ambiguous"
	CodeTimeConflict           = "time_conflict"
	CodeOutsideAvailability    = "outside_availability"
	CodeConcurrentModification = "concurrent_modification"
	CodeInvalidRequest         = "invalid_request"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf devolve o código de negócio, ou "" para erros de infraestrutura
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case CodeNotFound, CodeAppointmentNotFound, CodeOfferingNotFound, CodeRescheduleDateNotFound:
		return true
	}
	return false
}

// StatusFor maps a business code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeNotAuthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeAppointmentNotFound, CodeOfferingNotFound, CodeRescheduleDateNotFound:
		return http.StatusNotFound
	case CodeInvalidStateTransition, CodeTimeConflict, CodeConcurrentModification:
		return http.StatusConflict
	case CodeRecoveryAmbiguous, CodeOutsideAvailability:
		return http.StatusUnprocessableEntity
	case CodeInvalidRequest:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
