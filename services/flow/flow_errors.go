package flow

import "errors"

var (
	// ErrNoReceiver guards dashboard operations fired before onboarding.
	ErrNoReceiver = errors.New("no receiver exists for this session")

	// ErrNotOnDashboard guards modal operations fired outside the existing view.
	ErrNotOnDashboard = errors.New("receiver dashboard is not active")

	// ErrModalClosed guards form submissions whose modal is not raised.
	ErrModalClosed = errors.New("the form is not open")

	// ErrConfirmationMismatch keeps the remove action disabled until the typed
	// name matches an account exactly, case included.
	ErrConfirmationMismatch = errors.New("typed name does not match a bank account")

	// ErrUnknownAccount rejects detail requests for accounts outside the
	// current server snapshot.
	ErrUnknownAccount = errors.New("bank account is not in the current list")

	// ErrReceiverNotCreated covers a transport-successful create whose body
	// carries neither a record nor a business error.
	ErrReceiverNotCreated = errors.New("error creating receiver, try again")
)
