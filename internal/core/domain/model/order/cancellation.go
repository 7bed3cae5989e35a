package order

import (
	"fmt"

	"pos/internal/pkg/errs"
)

// CancellationStatus is the state of the cancellation negotiation sub-protocol.
type CancellationStatus int

const (
	// CancellationNone means no cancellation request exists.
	CancellationNone CancellationStatus = iota

	// CancellationPending means a request is open and awaiting resolution
	// by an actor holding the direct-cancel capability.
	CancellationPending

	// CancellationApproved means the last request was approved and the
	// order was cancelled.
	CancellationApproved

	// CancellationDenied means the last request was denied; the order kept
	// its operational status and carries the denial reason for display.
	CancellationDenied
)

// String returns the human-readable name of the cancellation status.
func (s CancellationStatus) String() string {
	switch s {
	case CancellationNone:
		return "None"
	case CancellationPending:
		return "Pending"
	case CancellationApproved:
		return "Approved"
	case CancellationDenied:
		return "Denied"
	default:
		return "None"
	}
}

// Validate checks if the CancellationStatus value is valid.
func (s CancellationStatus) Validate() error {
	switch s {
	case CancellationNone, CancellationPending, CancellationApproved, CancellationDenied:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("cancellation status is invalid",
			fmt.Errorf("%d is not a valid cancellation status", s))
	}
}

// CancellationStatusFromString parses a cancellation status from its string
// representation.
func CancellationStatusFromString(str string) (CancellationStatus, error) {
	switch str {
	case "None", "":
		return CancellationNone, nil
	case "Pending":
		return CancellationPending, nil
	case "Approved":
		return CancellationApproved, nil
	case "Denied":
		return CancellationDenied, nil
	default:
		return CancellationNone, errs.NewValueIsInvalidErrorWithCause("cancellation status is invalid",
			fmt.Errorf("%q is not a valid cancellation status", str))
	}
}

// Cancellation is the negotiation sub-state carried by an Order. It is a
// sub-state of the aggregate, not a separate root: at most one request is
// outstanding at a time, and resolution clears the pending state.
//
// Lifecycle:
//
//	None ──request──> Pending ──approve──> Approved (order becomes Cancelled)
//	                     │
//	                     └────deny──────> Denied  (order status untouched)
//
// A second request while one is pending is a conflict, surfaced to callers
// as a benign no-op since the requester's intent is already recorded.
type Cancellation struct {
	status       CancellationStatus
	reason       string
	deniedReason string
}

// NewCancellation restores a cancellation sub-state from persistence.
func NewCancellation(status CancellationStatus, reason, deniedReason string) (Cancellation, error) {
	if err := status.Validate(); err != nil {
		return Cancellation{}, err
	}
	return Cancellation{status: status, reason: reason, deniedReason: deniedReason}, nil
}

// Status returns the current negotiation state.
func (c Cancellation) Status() CancellationStatus {
	return c.status
}

// Reason returns the requester's reason text.
func (c Cancellation) Reason() string {
	return c.reason
}

// DeniedReason returns the resolver's note when the request was denied.
func (c Cancellation) DeniedReason() string {
	return c.deniedReason
}

// IsPending reports whether a request is open.
func (c Cancellation) IsPending() bool {
	return c.status == CancellationPending
}

// request opens a cancellation request with the given reason.
//
// Returns:
//   - ConflictError if a request is already pending (intent already recorded)
//   - ValueIsRequiredError if the reason is empty
func (c Cancellation) request(reason string) (Cancellation, error) {
	if reason == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("cancellation reason")
	}
	if c.status == CancellationPending {
		return Cancellation{}, errs.NewConflictErrorWithCause("cancellation request",
			fmt.Errorf("a request with reason %q is already pending", c.reason))
	}

	return Cancellation{status: CancellationPending, reason: reason}, nil
}

// approve resolves the pending request positively. The requester's reason is
// retained for audit; the caller transitions the order to Cancelled.
//
// Returns ConflictError when no request is pending, so a double resolution
// is "nothing to do" rather than a fatal error.
func (c Cancellation) approve() (Cancellation, error) {
	if c.status != CancellationPending {
		return Cancellation{}, errs.NewConflictErrorWithCause("cancellation resolution",
			fmt.Errorf("no pending request to approve: status is %s", c.status))
	}

	return Cancellation{status: CancellationApproved, reason: c.reason}, nil
}

// deny resolves the pending request negatively, recording the resolver's
// note. The order's operational status is left exactly as it was.
//
// Returns:
//   - ConflictError when no request is pending (double resolution)
//   - ValueIsRequiredError if the denial note is empty
func (c Cancellation) deny(note string) (Cancellation, error) {
	if note == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("denial reason")
	}
	if c.status != CancellationPending {
		return Cancellation{}, errs.NewConflictErrorWithCause("cancellation resolution",
			fmt.Errorf("no pending request to deny: status is %s", c.status))
	}

	return Cancellation{status: CancellationDenied, reason: c.reason, deniedReason: note}, nil
}
