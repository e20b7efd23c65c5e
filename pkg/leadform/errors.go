package leadform

import (
	"errors"
	"fmt"

	"rentaid-waitlist/pkg/models"
)

var (
	ErrMissingRequiredField = errors.New("required fields missing")
	ErrInvalidPhoneFormat   = errors.New("invalid phone format")
	ErrInvalidEmailFormat   = errors.New("invalid email format")
	ErrMissingLocation      = errors.New("location required")

	// ErrMissingVariantField is wrapped by every variant-specific required field error
	ErrMissingVariantField = errors.New("variant field required")
	ErrMissingPropertyType = fmt.Errorf("%w: property type required", ErrMissingVariantField)
	ErrMissingActiveUnits  = fmt.Errorf("%w: active units required", ErrMissingVariantField)
	ErrMissingMoveTimeline = fmt.Errorf("%w: move timeline required", ErrMissingVariantField)

	ErrUnreachable    = errors.New("datastore unreachable")
	ErrDuplicatePhone = errors.New("phone number already submitted")
	ErrInvalidData    = errors.New("data violates a stored validation rule")
	ErrUnexpected     = errors.New("unexpected error during submission")

	// ErrSubmissionInFlight is returned when the gate is already held
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrUnknownField       = models.ErrUnknownField
)

// StoreError carries any other failure reported by the datastore
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	if e.Message == "" {
		return "datastore error"
	}
	return "datastore error: " + e.Message
}

const genericFailure = "There was an error submitting your form. Please try again."

// UserMessage translates a submission error into the text shown to the visitor
func UserMessage(err error) string {
	var storeErr *StoreError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingRequiredField):
		return "Please fill in all required fields."
	case errors.Is(err, ErrInvalidPhoneFormat):
		return "Please enter a valid 10-digit phone number."
	case errors.Is(err, ErrInvalidEmailFormat):
		return "Please enter a valid email address."
	case errors.Is(err, ErrMissingLocation):
		return "Please select a location."
	case errors.Is(err, ErrMissingPropertyType):
		return "Please select what you rent out."
	case errors.Is(err, ErrMissingActiveUnits):
		return "Please select how many active units you have."
	case errors.Is(err, ErrMissingMoveTimeline):
		return "Please select when you are hoping to move."
	case errors.Is(err, ErrSubmissionInFlight):
		return "Your form is already being submitted."
	case errors.Is(err, ErrUnreachable):
		return "Unable to connect to database. Please try again."
	case errors.Is(err, ErrDuplicatePhone):
		return "This phone number has already been submitted. Please use a different number."
	case errors.Is(err, ErrInvalidData):
		return "Please check your input data and try again."
	case errors.As(err, &storeErr):
		if storeErr.Message != "" {
			return genericFailure + " Error: " + storeErr.Message
		}
		return genericFailure
	case errors.Is(err, ErrUnexpected):
		return "An unexpected error occurred. Please try again."
	}
	return genericFailure
}

// SuccessMessage is the confirmation copy shown after a submission lands
func SuccessMessage(variant models.Variant) string {
	if variant == models.VariantLandlord {
		return "Welcome aboard. Expect a WhatsApp message with your early-access link."
	}
	return "You're on the list. We'll message you on WhatsApp with early-access steps."
}

// IsValidationError reports whether err came from the validator
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField) ||
		errors.Is(err, ErrInvalidPhoneFormat) ||
		errors.Is(err, ErrInvalidEmailFormat) ||
		errors.Is(err, ErrMissingLocation) ||
		errors.Is(err, ErrMissingVariantField)
}

// Kind is a short stable label for err, used for metrics and API responses
func Kind(err error) string {
	var storeErr *StoreError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingRequiredField):
		return "missing_required_field"
	case errors.Is(err, ErrInvalidPhoneFormat):
		return "invalid_phone_format"
	case errors.Is(err, ErrInvalidEmailFormat):
		return "invalid_email_format"
	case errors.Is(err, ErrMissingLocation):
		return "missing_location"
	case errors.Is(err, ErrMissingVariantField):
		return "missing_variant_field"
	case errors.Is(err, ErrSubmissionInFlight):
		return "in_flight"
	case errors.Is(err, ErrUnreachable):
		return "unreachable"
	case errors.Is(err, ErrDuplicatePhone):
		return "duplicate_phone"
	case errors.Is(err, ErrInvalidData):
		return "invalid_data"
	case errors.As(err, &storeErr):
		return "other"
	}
	return "unexpected"
}
