package staff

import (
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/errs"
	"moveline/internal/pkg/guard"
)

var (
	// ErrWorkerIsNotConstructed is returned when using an improperly initialized Worker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")
	// ErrWorkerAlreadyReserved is returned when reserving a worker held by another order.
	ErrWorkerAlreadyReserved = errs.NewConflictError("worker is already reserved")
)

// Worker represents a moving crew member affiliated with an office.
// Orders reserve zero or more workers; the availability flag carries the same
// one-active-order-at-a-time semantics as Driver and Vehicle.
type Worker struct {
	id        kernel.UUID
	name      string
	officeID  kernel.UUID
	skills    string
	available bool

	guard guard.ConstructorGuard
}

// NewWorker creates an available Worker affiliated with an office.
func NewWorker(id kernel.UUID, name string, officeID kernel.UUID) (*Worker, error) {
	worker := &Worker{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		worker.setID(id),
		worker.setName(name),
		worker.setOfficeID(officeID),
	); err != nil {
		return nil, err
	}

	return worker, nil
}

// RestoreWorker reconstructs a Worker from persistent storage.
func RestoreWorker(id kernel.UUID, name string, officeID kernel.UUID, skills string, available bool) (*Worker, error) {
	worker, err := NewWorker(id, name, officeID)
	if err != nil {
		return nil, err
	}

	worker.skills = skills
	worker.available = available
	return worker, nil
}

// Validate checks that the Worker was created via a constructor.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// IsEqual compares two workers by identifier.
func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// ID returns the worker identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Name returns the worker's display name.
func (w *Worker) Name() string {
	return w.name
}

// OfficeID returns the affiliated office identifier.
func (w *Worker) OfficeID() kernel.UUID {
	return w.officeID
}

// Skills returns the free-form skills description.
func (w *Worker) Skills() string {
	return w.skills
}

// IsAvailable reports whether the worker is free to be assigned.
func (w *Worker) IsAvailable() bool {
	return w.available
}

// Reserve marks the worker as held by an order.
// Returns ErrWorkerAlreadyReserved if the worker is already held.
func (w *Worker) Reserve() error {
	if !w.available {
		return ErrWorkerAlreadyReserved
	}
	w.available = false
	return nil
}

// Release returns the worker to the available pool.
func (w *Worker) Release() {
	w.available = true
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}

func (w *Worker) setOfficeID(officeID kernel.UUID) error {
	if err := officeID.Validate(); err != nil {
		return err
	}
	w.officeID = officeID
	return nil
}
