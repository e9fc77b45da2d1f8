package domain

import "errors"

// Error kinds shared by all layers. Concrete errors wrap one of them.
var (
	// ErrValidation client input violates a business rule; never retried
	ErrValidation = errors.New("validation error")

	// ErrConflict the slot was taken concurrently; caller re-fetches availability
	ErrConflict = errors.New("conflict")

	// ErrNotFound the referenced record does not exist or is not in the expected state
	ErrNotFound = errors.New("not found")

	// ErrConfiguration calendar rules hold malformed data
	ErrConfiguration = errors.New("configuration error")

	// ErrStoreUnavailable transient persistence failure; safe to retry the whole operation
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrAccessDenied the requester may not touch the record
	ErrAccessDenied = errors.New("access denied")
)

// Reason codes reported to clients
type Reason string

const (
	ReasonInvalidCategory  Reason = "InvalidCategory"
	ReasonPastBooking      Reason = "PastBooking"
	ReasonOutOfOrder       Reason = "OutOfOrder"
	ReasonSlotUnavailable  Reason = "SlotUnavailable"
	ReasonForbiddenWeekday Reason = "ForbiddenWeekday"
	ReasonHoliday          Reason = "Holiday"
	ReasonNoTemplate       Reason = "NoTemplate"
	ReasonPastDate         Reason = "PastDate"
	ReasonOutOfHorizon     Reason = "OutOfHorizon"
	ReasonInvalidInput     Reason = "InvalidInput"
	ReasonMalformedSlot    Reason = "MalformedSlot"
	ReasonBookingNotFound  Reason = "BookingNotFound"
	ReasonNotOwner         Reason = "NotOwner"
	ReasonSlotNotFound     Reason = "SlotNotFound"
	ReasonSlotExists       Reason = "SlotExists"
	ReasonHolidayNotFound  Reason = "HolidayNotFound"
	ReasonHolidayExists    Reason = "HolidayExists"
	ReasonHasBookings      Reason = "HasBookings"
)

// ReasonError an error of a given kind carrying a reason code
type ReasonError struct {
	Kind    error
	Reason  Reason
	Message string
}

// NewReasonError creates a sentinel reason error
func NewReasonError(kind error, reason Reason, message string) *ReasonError {
	return &ReasonError{Kind: kind, Reason: reason, Message: message}
}

func (e *ReasonError) Error() string {
	return e.Kind.Error() + ": " + string(e.Reason) + ": " + e.Message
}

// Unwrap exposes the kind to errors.Is
func (e *ReasonError) Unwrap() error {
	return e.Kind
}

// ReasonOf extracts the reason code from an error chain
func ReasonOf(err error) (Reason, bool) {
	var re *ReasonError
	if errors.As(err, &re) {
		return re.Reason, true
	}
	return "", false
}
