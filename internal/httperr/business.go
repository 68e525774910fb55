package httperr

import "errors"

// Error codes shared by the booking core. Handlers translate them to HTTP
// statuses; everything else is reported as a generic internal error.
const (
	CodeValidation          = "validation_error"
	CodeNotFound            = "not_found"
	CodeForbidden           = "forbidden"
	CodeDuplicateCredential = "duplicate_credential"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeServiceMismatch     = "service_mismatch"
	CodeInvalidTransition   = "invalid_transition"
	CodeTimeConflict        = "time_conflict"
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

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
