package staffrepo

import (
	"context"
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/staff"
	"moveline/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver to the database.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *staff.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := driverFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists changes to an existing driver. Only the mutable columns are
// written; availability is not touched here because the conditional Reserve
// and Release writes own that flag.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *staff.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := driverFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "current_lat", "current_lon", "position_updated_at").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a driver by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, err
	}

	return driverToDomain(dto)
}

// FindAvailableByOffice lists available drivers at an office in identifier order.
func (r *GormDriverRepository) FindAvailableByOffice(ctx context.Context, officeID kernel.UUID) ([]*staff.Driver, error) {
	if err := officeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Where("office_id = ? AND is_available = ?", officeID.String(), true).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	drivers := make([]*staff.Driver, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := driverToDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, aggregate)
	}

	return drivers, nil
}

// Reserve flips the driver to unavailable, conditional on the driver still
// being available. A lost race returns staff.ErrDriverAlreadyReserved.
func (r *GormDriverRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ? AND is_available = ?", id.String(), true).
		Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return staff.ErrDriverAlreadyReserved
	}

	return nil
}

// Release returns the driver to the available pool.
func (r *GormDriverRepository) Release(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ?", id.String()).
		Update("is_available", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", id.String())
	}

	return nil
}

// GormWorkerRepository implements ports.WorkerRepository using GORM.
type GormWorkerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new worker to the database.
func (r *GormWorkerRepository) Add(ctx context.Context, aggregate *staff.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := workerFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a worker by ID.
func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, err
	}

	return workerToDomain(dto)
}

// FindAvailableByOffice lists up to limit available workers at an office in
// identifier order. A non-positive limit means no cap.
func (r *GormWorkerRepository) FindAvailableByOffice(ctx context.Context, officeID kernel.UUID, limit int) ([]*staff.Worker, error) {
	if err := officeID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("office_id = ? AND is_available = ?", officeID.String(), true).
		Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []WorkerDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	workers := make([]*staff.Worker, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := workerToDomain(dto)
		if err != nil {
			return nil, err
		}
		workers = append(workers, aggregate)
	}

	return workers, nil
}

// Reserve flips the worker to unavailable, conditional on the worker still
// being available. A lost race returns staff.ErrWorkerAlreadyReserved.
func (r *GormWorkerRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("id = ? AND is_available = ?", id.String(), true).
		Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return staff.ErrWorkerAlreadyReserved
	}

	return nil
}

// Release returns the worker to the available pool.
func (r *GormWorkerRepository) Release(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("id = ?", id.String()).
		Update("is_available", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("worker", id.String())
	}

	return nil
}
