package order

import (
	"errors"
	"fmt"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/errs"
	"moveline/internal/pkg/guard"
)

// ErrWorkerAssignmentIsNotConstructed is returned when using an improperly
// initialized WorkerAssignment.
var ErrWorkerAssignmentIsNotConstructed = errors.New(
	"WorkerAssignment must be created via NewWorkerAssignment constructor")

// AssignmentStatus is the per-worker sub-status of an order assignment.
// Each assigned worker progresses independently:
//
//	assigned ──> accepted ──> in_progress ──> completed
//	    │
//	    └──> declined
type AssignmentStatus string

const (
	// AssignmentAssigned is the initial state set at placement.
	AssignmentAssigned AssignmentStatus = "assigned"
	// AssignmentAccepted means the worker confirmed the job.
	AssignmentAccepted AssignmentStatus = "accepted"
	// AssignmentInProgress means the worker started the job.
	AssignmentInProgress AssignmentStatus = "in_progress"
	// AssignmentCompleted means the worker finished the job.
	AssignmentCompleted AssignmentStatus = "completed"
	// AssignmentDeclined means the worker declined the job.
	AssignmentDeclined AssignmentStatus = "declined"
)

// ParseAssignmentStatus converts a stored string to an AssignmentStatus.
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	switch status := AssignmentStatus(s); status {
	case AssignmentAssigned, AssignmentAccepted, AssignmentInProgress, AssignmentCompleted, AssignmentDeclined:
		return status, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"assignment status", fmt.Errorf("%q is not a valid assignment status", s))
	}
}

// String implements fmt.Stringer.
func (s AssignmentStatus) String() string {
	return string(s)
}

// WorkerAssignment is the join entity between an Order and a Worker.
// It lives inside the Order aggregate and carries its own status so each
// worker can accept, progress and complete independently.
type WorkerAssignment struct {
	id              kernel.UUID
	workerID        kernel.UUID
	status          AssignmentStatus
	roleDescription string
	assignedAt      time.Time
	startedAt       *time.Time
	completedAt     *time.Time

	guard guard.ConstructorGuard
}

// NewWorkerAssignment creates an assignment in the assigned state.
func NewWorkerAssignment(id, workerID kernel.UUID, assignedAt time.Time) (*WorkerAssignment, error) {
	assignment := &WorkerAssignment{
		status:     AssignmentAssigned,
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignment.setID(id),
		assignment.setWorkerID(workerID),
	); err != nil {
		return nil, err
	}

	return assignment, nil
}

// RestoreWorkerAssignment reconstructs an assignment from persistent storage.
func RestoreWorkerAssignment(
	id, workerID kernel.UUID,
	status AssignmentStatus,
	roleDescription string,
	assignedAt time.Time,
	startedAt, completedAt *time.Time,
) (*WorkerAssignment, error) {
	assignment, err := NewWorkerAssignment(id, workerID, assignedAt)
	if err != nil {
		return nil, err
	}

	if _, err = ParseAssignmentStatus(string(status)); err != nil {
		return nil, err
	}

	assignment.status = status
	assignment.roleDescription = roleDescription
	assignment.startedAt = startedAt
	assignment.completedAt = completedAt
	return assignment, nil
}

// Validate checks that the assignment was created via a constructor.
func (a *WorkerAssignment) Validate() error {
	if a == nil {
		return ErrWorkerAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrWorkerAssignmentIsNotConstructed)
}

// ID returns the assignment identifier.
func (a *WorkerAssignment) ID() kernel.UUID {
	return a.id
}

// WorkerID returns the assigned worker's identifier.
func (a *WorkerAssignment) WorkerID() kernel.UUID {
	return a.workerID
}

// Status returns the current assignment sub-status.
func (a *WorkerAssignment) Status() AssignmentStatus {
	return a.status
}

// RoleDescription returns the free-form role note.
func (a *WorkerAssignment) RoleDescription() string {
	return a.roleDescription
}

// AssignedAt returns when the worker was attached to the order.
func (a *WorkerAssignment) AssignedAt() time.Time {
	return a.assignedAt
}

// StartedAt returns when the worker started, nil if not started.
func (a *WorkerAssignment) StartedAt() *time.Time {
	return a.startedAt
}

// CompletedAt returns when the worker finished, nil if not finished.
func (a *WorkerAssignment) CompletedAt() *time.Time {
	return a.completedAt
}

// Accept moves assigned -> accepted.
func (a *WorkerAssignment) Accept() error {
	if a.status != AssignmentAssigned {
		return a.transitionConflict("accept")
	}
	a.status = AssignmentAccepted
	return nil
}

// Decline moves assigned -> declined.
func (a *WorkerAssignment) Decline() error {
	if a.status != AssignmentAssigned {
		return a.transitionConflict("decline")
	}
	a.status = AssignmentDeclined
	return nil
}

// Start moves accepted -> in_progress.
func (a *WorkerAssignment) Start(at time.Time) error {
	if a.status != AssignmentAccepted {
		return a.transitionConflict("start")
	}
	a.status = AssignmentInProgress
	a.startedAt = &at
	return nil
}

// Complete moves the assignment to completed. The order release action
// completes every non-declined assignment regardless of its progress, so any
// state except declined is accepted; completing twice keeps the first
// completion time.
func (a *WorkerAssignment) Complete(at time.Time) error {
	if a.status == AssignmentDeclined {
		return a.transitionConflict("complete")
	}
	if a.status == AssignmentCompleted {
		return nil
	}
	a.status = AssignmentCompleted
	a.completedAt = &at
	return nil
}

func (a *WorkerAssignment) transitionConflict(action string) error {
	return errs.NewConflictErrorWithCause(
		"worker assignment",
		fmt.Errorf("cannot %s assignment in status %s", action, a.status),
	)
}

func (a *WorkerAssignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *WorkerAssignment) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	a.workerID = workerID
	return nil
}
