package vehiclerepo

import (
	"context"
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/vehicle"
	"moveline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVehicleRepository implements ports.VehicleRepository using GORM.
type GormVehicleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormVehicleRepository creates a new GORM vehicle repository.
func NewGormVehicleRepository(db *gorm.DB, tracker aggregateTracker) *GormVehicleRepository {
	return &GormVehicleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new vehicle to the database.
func (r *GormVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a vehicle by ID.
func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindAvailableByOfficeAndClass lists available vehicles of a class at an
// office, in identifier order for deterministic selection.
func (r *GormVehicleRepository) FindAvailableByOfficeAndClass(
	ctx context.Context,
	officeID kernel.UUID,
	class vehicle.Class,
) ([]*vehicle.Vehicle, error) {
	if err := errors.Join(officeID.Validate(), class.Validate()); err != nil {
		return nil, err
	}

	var dtos []VehicleDTO
	err := r.db.WithContext(ctx).
		Where("office_id = ? AND class = ? AND is_available = ?", officeID.String(), class.String(), true).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	vehicles := make([]*vehicle.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, aggregate)
	}

	return vehicles, nil
}

// Reserve flips the vehicle to unavailable. The write is conditioned on the
// flag still being set, so two concurrent placements cannot both win: the
// loser sees zero affected rows and gets vehicle.ErrAlreadyReserved.
func (r *GormVehicleRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("id = ? AND is_available = ?", id.String(), true).
		Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return vehicle.ErrAlreadyReserved
	}

	return nil
}

// Release returns the vehicle to the available pool.
func (r *GormVehicleRepository) Release(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("id = ?", id.String()).
		Update("is_available", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", id.String())
	}

	return nil
}
