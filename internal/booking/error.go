package booking

import "errors"

var (
	// ErrUnknownHostel: the selected id is not in the catalog.
	ErrUnknownHostel = errors.New("hostel not found in catalog")
	// ErrNoSelection: the action needs a selected hostel.
	ErrNoSelection = errors.New("no hostel selected")
	// ErrAlreadyBooked: a record for this hostel exists; the only available
	// action is cancelling the existing booking.
	ErrAlreadyBooked = errors.New("hostel already has a booking")
	// ErrConfirmInFlight: a confirmation is running; the workflow cannot be
	// dismissed or restarted until it resolves.
	ErrConfirmInFlight = errors.New("confirmation in flight")
	// ErrConfirmationRequired: destructive actions need the caller's explicit
	// confirmation flag.
	ErrConfirmationRequired = errors.New("explicit confirmation required")
	// ErrRefGen: the reference code generator failed.
	ErrRefGen = errors.New("generate booking reference")
)
