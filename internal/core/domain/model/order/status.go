package order

import (
	"fmt"

	"moveline/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	created ──> in_progress ──> delivered ──> completed
//	   │             │              │
//	   └─────────────┴──────────────┴──> cancelled
//
// Placement commits orders directly as in_progress (the created state never
// persists observably). in_progress orders hold resource reservations;
// completed and cancelled are terminal and release them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the transient initial status before resources are assigned.
	Created

	// InProgress indicates resources are reserved and the move is underway.
	InProgress

	// Delivered indicates the tracking feed reported the vehicle at the
	// dropoff point. Resources are still held until release.
	Delivered

	// Completed indicates the order was released: resources freed, terminal.
	Completed

	// Cancelled indicates the order was cancelled before completion, terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Created:    "created",
		InProgress: "in_progress",
		Delivered:  "delivered",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "created",
		InProgress: "in_progress",
		Delivered:  "delivered",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// ParseStatus converts a stored string to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status rejects further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Assign transitions the status to InProgress.
//
// Valid transitions:
//   - Created -> InProgress (resources reserved at placement)
func (s Status) Assign() (Status, error) {
	if s != Created {
		return 0, errs.NewConflictErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to assign resources", s),
		)
	}

	return InProgress, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InProgress -> Delivered (dropoff reached)
//   - Delivered  -> Delivered (idempotent no-op, changed=false)
//
// Terminal statuses reject the transition with a conflict error.
func (s Status) Deliver() (next Status, changed bool, err error) {
	switch {
	case s == Delivered:
		return Delivered, false, nil
	case s == InProgress || s == Created:
		return Delivered, true, nil
	default:
		return 0, false, errs.NewConflictErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - InProgress -> Completed (released before delivery report)
//   - Delivered  -> Completed (normal release)
//
// Completing an already completed or cancelled order is a conflict, never a
// silent success: resource flags must not be double-flipped.
func (s Status) Complete() (Status, error) {
	if s != InProgress && s != Delivered {
		return 0, errs.NewConflictErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
// Allowed from any non-terminal state.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewConflictErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}

	return Cancelled, nil
}
